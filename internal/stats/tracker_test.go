package stats

import (
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/tuirace/internal/segment"
)

type fakeClock struct {
	at time.Time
}

func (c *fakeClock) now() time.Time { return c.at }

func startedTracker(legacy bool, clock *fakeClock, start int64) *Tracker {
	tr := NewTrackerWithClock(legacy, clock.now)
	tr.started = true
	tr.startTime = time.Unix(start, 0)
	return tr
}

func TestUpdateWPM(t *testing.T) {
	units := []string{"There's", "a", "time", "when", "the", "operation"}
	clock := &fakeClock{at: time.Unix(501, 0)}
	tr := startedTracker(false, clock, 500)

	// Ten characters in one second.
	tr.UpdateWPM(segment.Narrow, 2, units)
	if tr.WPM() != 120 {
		t.Fatalf("expected 120 wpm, got %d", tr.WPM())
	}

	// Twenty characters in ten seconds.
	clock.at = time.Unix(510, 0)
	tr.UpdateWPM(segment.Narrow, 4, units)
	if tr.WPM() != 24 {
		t.Fatalf("expected 24 wpm, got %d", tr.WPM())
	}
}

func TestUpdateLegacyWPM(t *testing.T) {
	clock := &fakeClock{at: time.Unix(501, 0)}
	tr := startedTracker(true, clock, 500)
	units := []string{"a", "b", "c", "d", "e"}

	tr.UpdateWPM(segment.Narrow, 2, units)
	if tr.WPM() != 120 {
		t.Fatalf("expected 120 wpm, got %d", tr.WPM())
	}
	clock.at = time.Unix(510, 0)
	tr.UpdateWPM(segment.Narrow, 4, units)
	if tr.WPM() != 24 {
		t.Fatalf("expected 24 wpm, got %d", tr.WPM())
	}
}

func TestUpdateWPMNotStarted(t *testing.T) {
	tr := NewTrackerWithClock(false, (&fakeClock{at: time.Unix(10, 0)}).now)
	tr.UpdateWPM(segment.Narrow, 1, []string{"word"})
	if tr.WPM() != 0 {
		t.Fatalf("expected 0 wpm before start, got %d", tr.WPM())
	}
}

func TestStartBackdatesOneSecond(t *testing.T) {
	clock := &fakeClock{at: time.Unix(100, 0)}
	tr := NewTrackerWithClock(false, clock.now)
	tr.Start()
	if !tr.StartTime().Equal(time.Unix(99, 0)) {
		t.Fatalf("expected start at 99, got %v", tr.StartTime())
	}
	clock.at = time.Unix(200, 0)
	tr.Start()
	if !tr.StartTime().Equal(time.Unix(99, 0)) {
		t.Fatalf("expected start to be set once, got %v", tr.StartTime())
	}
}

func TestErrorsResetCombo(t *testing.T) {
	tr := NewTracker(false)
	tr.IncrementCombo(0)
	tr.IncrementCombo(1)
	tr.IncrementCombo(2)
	if tr.Combo() != 3 || tr.HighestCombo() != 3 {
		t.Fatalf("unexpected combo %d/%d", tr.Combo(), tr.HighestCombo())
	}
	tr.IncrementErrors(3)
	if tr.Combo() != 0 || tr.Errors() != 1 {
		t.Fatalf("expected combo reset and one error, got %d/%d", tr.Combo(), tr.Errors())
	}
	tr.IncrementCombo(3)
	if tr.HighestCombo() != 3 {
		t.Fatalf("expected highest combo to stay 3, got %d", tr.HighestCombo())
	}
}

func TestAccuracyAllCorrect(t *testing.T) {
	tr := NewTracker(false)
	for i := 0; i < 5; i++ {
		tr.IncrementCombo(i)
	}
	assertMarks(t, tr.Marks(), []bool{true, true, true, true, true})
	assertFloat(t, tr.Accuracy(), 100)
}

func TestAccuracyAllWrong(t *testing.T) {
	tr := NewTracker(false)
	for i := 0; i < 5; i++ {
		tr.IncrementErrors(i)
	}
	assertMarks(t, tr.Marks(), []bool{false, false, false, false, false})
	assertFloat(t, tr.Accuracy(), 0)
}

func TestAccuracyWrongIsSticky(t *testing.T) {
	tr := NewTracker(false)
	tr.IncrementErrors(0)
	tr.IncrementErrors(1)
	tr.IncrementCombo(1)
	tr.IncrementCombo(2)
	tr.IncrementErrors(2)
	tr.IncrementCombo(1)
	tr.IncrementCombo(2)
	assertMarks(t, tr.Marks(), []bool{false, false, false})
	assertFloat(t, tr.Accuracy(), 0)
}

func TestAccuracyPartial(t *testing.T) {
	tr := NewTracker(false)
	tr.IncrementCombo(0)
	tr.IncrementErrors(1)
	tr.IncrementCombo(1)
	tr.IncrementCombo(2)
	tr.IncrementCombo(3)
	assertFloat(t, tr.Accuracy(), 75)
	if tr.Accuracy() != 75 {
		t.Fatalf("expected 75, got %f", tr.Accuracy())
	}
}

func TestAccuracyEmpty(t *testing.T) {
	if acc := NewTracker(false).Accuracy(); acc != 0 {
		t.Fatalf("expected 0 accuracy without input, got %f", acc)
	}
}

func TestResetKeepsLegacyFlag(t *testing.T) {
	clock := &fakeClock{at: time.Unix(100, 0)}
	tr := NewTrackerWithClock(true, clock.now)
	tr.Start()
	tr.IncrementCombo(0)
	tr.IncrementErrors(1)
	tr.Reset()
	if !tr.LegacyWPM() {
		t.Fatalf("expected legacy flag to survive reset")
	}
	if tr.Started() || tr.Combo() != 0 || tr.HighestCombo() != 0 || tr.Errors() != 0 || len(tr.Marks()) != 0 || tr.WPM() != 0 {
		t.Fatalf("expected cleared tracker after reset")
	}
}

func assertMarks(t *testing.T, got, want []bool) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func assertFloat(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}
