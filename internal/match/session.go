package match

import (
	"unicode/utf8"

	"github.com/verte-zerg/tuirace/internal/segment"
)

// Span locates a unit in the joined passage, in runes.
type Span struct {
	UnitIndex int
	Start     int
	Length    int
}

// View is what a renderer needs after a keystroke.
type View struct {
	Mode      segment.Mode
	UnitIndex int
	Input     string
	HasError  bool
	Complete  bool
	Failed    bool
	Active    Span
}

// Tick describes the effect of a single key action.
type Tick struct {
	// NewChar is true only for a printable keystroke that was applied.
	NewChar bool
	// HasError is true when the input no longer prefixes the attempted unit.
	HasError bool
	// Slot is the accuracy slot of the keystroke. Valid when NewChar is set.
	Slot int
	// Attempt is the unit the keystroke was applied to, before any advance.
	Attempt     Span
	AttemptUnit string

	UnitCompleted bool
	RoundComplete bool
	View          View
}

// Session carries the typing state of one round.
type Session struct {
	mode      segment.Mode
	units     []string
	unitIndex int
	input     string
	complete  bool
	failed    bool
}

// NewSession segments text and starts a round on it.
func NewSession(text string) *Session {
	mode := segment.ModeOf(text)
	return NewSessionUnits(mode, segment.ToUnitsFor(mode, text))
}

// NewSessionUnits starts a round on pre-segmented units.
func NewSessionUnits(mode segment.Mode, units []string) *Session {
	s := &Session{mode: mode, units: units}
	s.complete = DecideRoundEnd(mode, 0, units, "")
	return s
}

// Mode returns the script mode of the round.
func (s *Session) Mode() segment.Mode { return s.mode }

// Units returns the typing units of the round.
func (s *Session) Units() []string { return s.units }

// UnitIndex returns the index of the active unit.
func (s *Session) UnitIndex() int { return s.unitIndex }

// Input returns the accumulated input for the active unit.
func (s *Session) Input() string { return s.input }

// Complete reports whether the round has ended, successfully or not.
func (s *Session) Complete() bool { return s.complete }

// Failed reports whether the round ended in the failed state.
func (s *Session) Failed() bool { return s.failed }

// ActiveUnit returns the unit being typed, or false once the round is over.
func (s *Session) ActiveUnit() (string, bool) {
	if s.complete || s.unitIndex >= len(s.units) {
		return "", false
	}
	return s.units[s.unitIndex], true
}

// HasError reports whether the current input diverges from the active unit.
func (s *Session) HasError() bool {
	unit, ok := s.ActiveUnit()
	if !ok {
		return s.failed
	}
	return !CheckLikeWord(unit, s.input)
}

// Type applies a printable keystroke.
func (s *Session) Type(r rune) Tick {
	unit, ok := s.ActiveUnit()
	if !ok || r == '\n' || r == '\t' {
		return s.idle()
	}
	attempt := s.span(s.unitIndex)
	tick := Tick{NewChar: true, Attempt: attempt, AttemptUnit: unit}

	if UnitCompleted(s.mode, r, unit, s.input) {
		if s.mode == segment.Narrow {
			// The space lands on the separator slot after the unit.
			tick.Slot = attempt.Start + attempt.Length
		} else {
			tick.Slot = AttemptedSlot(s.mode, s.units, s.unitIndex, s.input+string(r))
		}
		tick.UnitCompleted = true
		s.unitIndex++
		s.input = ""
	} else {
		s.input += string(r)
		tick.HasError = !CheckLikeWord(unit, s.input)
		tick.Slot = AttemptedSlot(s.mode, s.units, s.unitIndex, s.input)
	}

	if !tick.HasError && DecideRoundEnd(s.mode, s.unitIndex, s.units, s.input) {
		if s.unitIndex < len(s.units) {
			s.unitIndex++
		}
		s.input = ""
		s.complete = true
		tick.RoundComplete = true
	}
	tick.View = s.View()
	return tick
}

// Backspace removes the last typed character of the active unit.
func (s *Session) Backspace() Tick {
	if s.complete || s.input == "" {
		return s.idle()
	}
	_, size := utf8.DecodeLastRuneInString(s.input)
	s.input = s.input[:len(s.input)-size]
	return s.edited()
}

// ClearInput drops everything typed for the active unit.
func (s *Session) ClearInput() Tick {
	if s.complete {
		return s.idle()
	}
	s.input = ""
	return s.edited()
}

// DeleteWord removes the last word of the input.
func (s *Session) DeleteWord() Tick {
	if s.complete {
		return s.idle()
	}
	s.input = TrimLastWord(s.input)
	return s.edited()
}

// Fail ends the round in the failed state.
func (s *Session) Fail() View {
	s.complete = true
	s.failed = true
	return s.View()
}

// View returns the render state of the round.
func (s *Session) View() View {
	return View{
		Mode:      s.mode,
		UnitIndex: s.unitIndex,
		Input:     s.input,
		HasError:  s.HasError(),
		Complete:  s.complete,
		Failed:    s.failed,
		Active:    s.span(s.unitIndex),
	}
}

// JoinedLength returns the rune length of the joined passage.
func (s *Session) JoinedLength() int {
	return utf8.RuneCountInString(segment.JoinUnits(s.mode, s.units))
}

func (s *Session) span(unitIndex int) Span {
	sp := Span{UnitIndex: unitIndex, Start: StartingOffset(s.mode, s.units, unitIndex)}
	if unitIndex >= 0 && unitIndex < len(s.units) {
		sp.Length = utf8.RuneCountInString(s.units[unitIndex])
	}
	return sp
}

func (s *Session) edited() Tick {
	unit, _ := s.ActiveUnit()
	return Tick{
		HasError:    !CheckLikeWord(unit, s.input),
		Attempt:     s.span(s.unitIndex),
		AttemptUnit: unit,
		View:        s.View(),
	}
}

func (s *Session) idle() Tick {
	v := s.View()
	return Tick{HasError: v.HasError, Attempt: v.Active, View: v}
}
