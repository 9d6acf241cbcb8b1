// Package game plays one round: it feeds keystrokes to the match session,
// keeps score, and produces the result and mistaken-word changes when the
// round ends.
package game

import (
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuirace/internal/match"
	"github.com/verte-zerg/tuirace/internal/mistakes"
	"github.com/verte-zerg/tuirace/internal/model"
	"github.com/verte-zerg/tuirace/internal/stats"
)

// Round is a single play of a passage.
type Round struct {
	id       string
	passage  model.Passage
	mode     model.GameMode
	session  *match.Session
	tracker  *stats.Tracker
	mistyped *mistakes.Set
	now      func() time.Time
	finished bool
}

// NewRound starts a round on p. The tracker is reset and reused across rounds.
func NewRound(p model.Passage, mode model.GameMode, tracker *stats.Tracker) *Round {
	return NewRoundWithClock(p, mode, tracker, time.Now)
}

// NewRoundWithClock starts a round stamping results with now.
func NewRoundWithClock(p model.Passage, mode model.GameMode, tracker *stats.Tracker, now func() time.Time) *Round {
	tracker.Reset()
	return &Round{
		id:       uuid.NewString(),
		passage:  p,
		mode:     mode,
		session:  match.NewSession(p.Text),
		tracker:  tracker,
		mistyped: mistakes.NewSet(),
		now:      now,
	}
}

// ID returns the round id used when the result is stored.
func (r *Round) ID() string { return r.id }

// Passage returns the passage being played.
func (r *Round) Passage() model.Passage { return r.passage }

// Mode returns the rules of the round.
func (r *Round) Mode() model.GameMode { return r.mode }

// Session exposes the typing state for rendering.
func (r *Round) Session() *match.Session { return r.session }

// Tracker exposes the live score for rendering.
func (r *Round) Tracker() *stats.Tracker { return r.tracker }

// Mistyped returns the units mistyped so far in this round.
func (r *Round) Mistyped() []string { return r.mistyped.Words() }

// Complete reports whether the round has ended.
func (r *Round) Complete() bool { return r.session.Complete() }

// Failed reports whether an instant death round was lost.
func (r *Round) Failed() bool { return r.session.Failed() }

// Type applies a printable keystroke and scores it.
func (r *Round) Type(ch rune) match.Tick {
	tick := r.session.Type(ch)
	if !tick.NewChar {
		return tick
	}
	r.tracker.Start()
	if tick.HasError {
		r.tracker.IncrementErrors(tick.Slot)
		r.mistyped.Add(tick.AttemptUnit)
		if r.mode == model.ModeInstantDeath {
			tick.View = r.session.Fail()
			tick.RoundComplete = true
		}
	} else {
		r.tracker.IncrementCombo(tick.Slot)
	}
	r.Refresh()
	return tick
}

// Backspace removes the last typed character.
func (r *Round) Backspace() match.Tick { return r.session.Backspace() }

// ClearInput drops the input of the active unit.
func (r *Round) ClearInput() match.Tick { return r.session.ClearInput() }

// DeleteWord removes the last word of the input.
func (r *Round) DeleteWord() match.Tick { return r.session.DeleteWord() }

// Refresh recomputes WPM for the time elapsed since the last keystroke.
func (r *Round) Refresh() {
	if r.session.Failed() {
		return
	}
	r.tracker.UpdateWPM(r.session.Mode(), r.session.UnitIndex(), r.session.Units())
}

// Outcome is what a finished round hands to persistence.
type Outcome struct {
	Result model.RoundResult
	Delta  model.MistakenDelta
}

// Finish folds the round into the player's mistaken words and returns the
// result. Words mistyped in default and training rounds are added; after a
// training round, words typed cleanly get a chance to leave the set.
// It returns false if the round is not over or was already finished.
func (r *Round) Finish(words *mistakes.Set, rnd *rand.Rand) (Outcome, bool) {
	if !r.session.Complete() || r.finished {
		return Outcome{}, false
	}
	r.finished = true

	var delta model.MistakenDelta
	if r.mode != model.ModeInstantDeath {
		for _, w := range r.mistyped.Words() {
			if words.Add(w) {
				delta.Added = append(delta.Added, w)
			}
		}
	}
	if r.mode == model.ModeTraining {
		delta.Removed = words.Prune(r.session.Units(), r.mistyped, rnd)
	}

	return Outcome{
		Result: model.RoundResult{
			ID:           r.id,
			PassageID:    r.passage.SourceID,
			PassageLen:   utf8.RuneCountInString(r.passage.Text),
			WPM:          r.tracker.WPM(),
			Accuracy:     r.tracker.Accuracy(),
			HighestCombo: r.tracker.HighestCombo(),
			Mode:         r.mode,
			Failed:       r.session.Failed(),
			PlayedAt:     r.now(),
		},
		Delta: delta,
	}, true
}
