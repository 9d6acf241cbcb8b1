package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/tuirace/internal/model"
	"github.com/verte-zerg/tuirace/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuirace.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	modes := []model.GameMode{model.ModeDefault, model.ModeInstantDeath, model.ModeDefault}
	for i, mode := range modes {
		res := model.RoundResult{
			ID:           string(rune('a' + i)),
			PassageID:    "/default/1",
			PassageLen:   43,
			WPM:          50 + i*10,
			Accuracy:     90,
			HighestCombo: 20,
			Mode:         mode,
			Failed:       mode == model.ModeInstantDeath,
			PlayedAt:     time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
		}
		if _, err := st.InsertRound(ctx, res); err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2, CurveWindow: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(report.Rounds))
	}
	if report.Rounds[0].RoundID != "b" || report.Rounds[1].RoundID != "c" {
		t.Fatalf("unexpected rounds: %+v", report.Rounds)
	}

	mode := model.ModeDefault
	report, err = BuildReport(ctx, st, model.StatsConfig{Mode: &mode})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Rounds) != 2 {
		t.Fatalf("expected 2 default rounds, got %d", len(report.Rounds))
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rounds: 2", "Best WPM: 70", "Per Mode", "Learning Curves", "Most Played Passages"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No rounds found.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderCurvesFitsWidth(t *testing.T) {
	rounds := make([]model.ResultAggregate, 200)
	for i := range rounds {
		rounds[i] = model.ResultAggregate{WPM: i, Accuracy: float64(i % 100), HighestCombo: i}
	}
	var buf bytes.Buffer
	if err := RenderCurvesWithSize(&buf, rounds, 1, 70, 6, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Learning Curves", "WPM: min=", "Accuracy: min=", "Combo: min=", "Legend:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in curves:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if n := utf8.RuneCountInString(line); n > 70 {
			t.Fatalf("line wider than 70 (%d): %q", n, line)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
