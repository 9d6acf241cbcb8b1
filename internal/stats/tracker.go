package stats

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/tuirace/internal/segment"
)

// Tracker keeps the live score of a round: speed, streak and accuracy.
// Accuracy is kept per character slot and is sticky: once a slot was
// mistyped it stays wrong for the rest of the round.
type Tracker struct {
	legacyWPM bool
	now       func() time.Time

	wpm          int
	errors       int
	combo        int
	highestCombo int

	started   bool
	startTime time.Time

	marks     []bool
	slotIndex map[int]int
}

// NewTracker returns a Tracker using the wall clock.
func NewTracker(legacyWPM bool) *Tracker {
	return NewTrackerWithClock(legacyWPM, time.Now)
}

// NewTrackerWithClock returns a Tracker reading time from now.
func NewTrackerWithClock(legacyWPM bool, now func() time.Time) *Tracker {
	return &Tracker{
		legacyWPM: legacyWPM,
		now:       now,
		slotIndex: map[int]int{},
	}
}

// Start records the start of the round on the first real keystroke.
// The start is backdated by a second so the first character does not
// produce a divide-by-zero spike.
func (t *Tracker) Start() {
	if t.started {
		return
	}
	t.started = true
	t.startTime = t.now().Add(-time.Second)
}

// Started reports whether the round has received a keystroke.
func (t *Tracker) Started() bool {
	return t.started
}

// UpdateWPM recomputes words per minute for the units typed so far.
// The default formula counts five characters as a word; the legacy formula
// counts typed units.
func (t *Tracker) UpdateWPM(mode segment.Mode, unitIndex int, units []string) {
	if !t.started {
		return
	}
	minutes := t.now().Sub(t.startTime).Seconds() / 60.0
	if minutes <= 0 {
		return
	}
	if unitIndex > len(units) {
		unitIndex = len(units)
	}
	var words float64
	if t.legacyWPM {
		words = float64(unitIndex)
	} else {
		sep := utf8.RuneCountInString(mode.Separator())
		chars := 0
		for _, unit := range units[:unitIndex] {
			chars += utf8.RuneCountInString(unit) + sep
		}
		words = float64(chars) / 5.0
	}
	t.wpm = int(math.Ceil(words / minutes))
}

// IncrementErrors records a mistyped character on slot.
func (t *Tracker) IncrementErrors(slot int) {
	t.errors++
	t.combo = 0
	t.mark(slot, false)
}

// IncrementCombo records a correctly typed character on slot.
func (t *Tracker) IncrementCombo(slot int) {
	t.combo++
	t.highestCombo = max(t.highestCombo, t.combo)
	t.mark(slot, true)
}

func (t *Tracker) mark(slot int, right bool) {
	idx, ok := t.slotIndex[slot]
	if !ok {
		t.slotIndex[slot] = len(t.marks)
		t.marks = append(t.marks, right)
		return
	}
	if t.marks[idx] {
		t.marks[idx] = right
	}
}

// Accuracy returns the percentage of visited slots never mistyped.
func (t *Tracker) Accuracy() float64 {
	if len(t.marks) == 0 {
		return 0
	}
	right := 0
	for _, ok := range t.marks {
		if ok {
			right++
		}
	}
	return float64(right) / float64(len(t.marks)) * 100
}

// Marks returns the accuracy bitmap in visiting order; true means never mistyped.
func (t *Tracker) Marks() []bool {
	out := make([]bool, len(t.marks))
	copy(out, t.marks)
	return out
}

// WPM returns the last computed words per minute.
func (t *Tracker) WPM() int { return t.wpm }

// Errors returns the number of mistyped keystrokes.
func (t *Tracker) Errors() int { return t.errors }

// Combo returns the current streak of correct keystrokes.
func (t *Tracker) Combo() int { return t.combo }

// HighestCombo returns the best streak of the round.
func (t *Tracker) HighestCombo() int { return t.highestCombo }

// LegacyWPM reports which formula is in use.
func (t *Tracker) LegacyWPM() bool { return t.legacyWPM }

// StartTime returns when the round started, zero if it has not.
func (t *Tracker) StartTime() time.Time { return t.startTime }

// Reset clears the round state. The WPM formula is a process setting and is kept.
func (t *Tracker) Reset() {
	t.wpm = 0
	t.errors = 0
	t.combo = 0
	t.highestCombo = 0
	t.started = false
	t.startTime = time.Time{}
	t.marks = nil
	t.slotIndex = map[int]int{}
}
