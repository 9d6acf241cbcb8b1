package statsui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuirace/internal/model"
	"github.com/verte-zerg/tuirace/internal/stats"
)

func TestParseFilter(t *testing.T) {
	cfg, err := parseFilter("instant-death", "2026-01-02", "10", "5")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cfg.Mode == nil || *cfg.Mode != model.ModeInstantDeath {
		t.Fatalf("expected instant death mode, got %v", cfg.Mode)
	}
	want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)
	if cfg.Since == nil || !cfg.Since.Equal(want) {
		t.Fatalf("expected since %v, got %v", want, cfg.Since)
	}
	if cfg.Last != 10 || cfg.CurveWindow != 5 {
		t.Fatalf("unexpected last/window: %d/%d", cfg.Last, cfg.CurveWindow)
	}
}

func TestParseFilterRoundTripsModeName(t *testing.T) {
	cfg, err := parseFilter(model.ModeInstantDeath.String(), "", "", "")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cfg.Mode == nil || *cfg.Mode != model.ModeInstantDeath {
		t.Fatalf("expected displayed mode name to parse back")
	}
	if cfg.CurveWindow != 1 {
		t.Fatalf("expected default window 1, got %d", cfg.CurveWindow)
	}
}

func TestParseFilterErrors(t *testing.T) {
	cases := [][4]string{
		{"sprint", "", "", ""},
		{"", "02/01/2026", "", ""},
		{"", "", "-1", ""},
		{"", "", "", "0"},
	}
	for _, c := range cases {
		if _, err := parseFilter(c[0], c[1], c[2], c[3]); err == nil {
			t.Fatalf("expected error for %v", c)
		}
	}
}

func TestCurveWindowSteps(t *testing.T) {
	if got := nextCurveWindow(1); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := nextCurveWindow(7); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := prevCurveWindow(10); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := prevCurveWindow(5); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := prevCurveWindow(12); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestPassageRows(t *testing.T) {
	rows := passageRows([]stats.PassageSummary{{PassageID: "/default/1", Plays: 3, AvgWPM: 52.5, BestWPM: 61}})
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	want := []string{"/default/1", "3", "52.5", "61"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Fatalf("cell %d: expected %q, got %q", i, cell, rows[0][i])
		}
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("ab\ncd\nef", 4, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || lines[0] != "ab  " || lines[1] != "cd  " {
		t.Fatalf("unexpected fit: %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}

func TestRenderOverviewEmpty(t *testing.T) {
	if got := renderOverview(nil, 5, 80); got != "No rounds found." {
		t.Fatalf("unexpected empty overview %q", got)
	}
	if got := renderModes(nil); got != "No rounds found." {
		t.Fatalf("unexpected empty modes %q", got)
	}
}
