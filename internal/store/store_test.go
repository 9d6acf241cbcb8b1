package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuirace/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "tuirace.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestShouldPersist(t *testing.T) {
	if ShouldPersist(model.UserInputSourceID) {
		t.Fatalf("expected user input to be skipped")
	}
	if ShouldPersist(model.FallbackSourceID) {
		t.Fatalf("expected fallback passage to be skipped")
	}
	if !ShouldPersist("/default/1") {
		t.Fatalf("expected lang pack passage to be persisted")
	}
	if !ShouldPersist(model.TrainingSourceID) {
		t.Fatalf("expected training rounds to be persisted")
	}
}

func TestLocalPassagePath(t *testing.T) {
	root := filepath.Join("/home", "u", ".local", "share", "tuirace", "lang-packs")
	cases := map[string]string{
		filepath.Join(root, "default", "b7448c1c"):                  "/default/b7448c1c",
		filepath.Join(root, "default", "itsnotover", "extrapaths"): "/default/itsnotover/extrapaths",
		"/elsewhere/quote":                                          "/elsewhere/quote",
	}
	for in, want := range cases {
		if got := LocalPassagePath(root, in); got != want {
			t.Fatalf("LocalPassagePath(%q): expected %q, got %q", in, want, got)
		}
	}
	if got := LocalPassagePath("", "/a/b"); got != "/a/b" {
		t.Fatalf("expected unchanged path without root, got %q", got)
	}
}

func TestInsertAndListRounds(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(1_700_000_000, 0)
	rounds := []model.RoundResult{
		{ID: "r1", PassageID: "/default/1", PassageLen: 40, WPM: 60, Accuracy: 97.5, HighestCombo: 30, Mode: model.ModeDefault, PlayedAt: base},
		{ID: "r2", PassageID: "/default/2", PassageLen: 50, WPM: 40, Accuracy: 50, HighestCombo: 5, Mode: model.ModeInstantDeath, Failed: true, PlayedAt: base.Add(time.Minute)},
		{ID: "r3", PassageID: "/default/1", PassageLen: 40, WPM: 70, Accuracy: 100, HighestCombo: 40, Mode: model.ModeDefault, PlayedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range rounds {
		stored, err := st.InsertRound(ctx, r)
		if err != nil {
			t.Fatalf("insert round: %v", err)
		}
		if !stored {
			t.Fatalf("expected round %s to be stored", r.ID)
		}
	}
	stored, err := st.InsertRound(ctx, model.RoundResult{ID: "skip", PassageID: model.UserInputSourceID, PlayedAt: base})
	if err != nil {
		t.Fatalf("insert user round: %v", err)
	}
	if stored {
		t.Fatalf("expected user input round to be skipped")
	}

	all, err := st.ListResults(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 results, got %d", len(all))
	}
	if all[0].RoundID != "r1" || all[2].RoundID != "r3" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if !all[1].Failed || all[1].Mode != model.ModeInstantDeath {
		t.Fatalf("expected failed instant death round, got %+v", all[1])
	}
	if all[0].Accuracy != 97.5 || all[0].HighestCombo != 30 || !all[0].PlayedAt.Equal(base) {
		t.Fatalf("unexpected round fields: %+v", all[0])
	}

	mode := model.ModeDefault
	since := base.Add(30 * time.Second)
	filtered, err := st.ListResults(ctx, model.StatsConfig{Mode: &mode, Since: &since})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].RoundID != "r3" {
		t.Fatalf("expected only r3, got %+v", filtered)
	}
}

func TestMistakenWordsDelta(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.ApplyMistakenDelta(ctx, model.MistakenDelta{Added: []string{"quick", "fox", "quick"}}); err != nil {
		t.Fatalf("apply delta: %v", err)
	}
	words, err := st.LoadMistakenWords(ctx)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 || words[0] != "fox" || words[1] != "quick" {
		t.Fatalf("unexpected words: %v", words)
	}

	if err := st.ApplyMistakenDelta(ctx, model.MistakenDelta{Added: []string{"lazy"}, Removed: []string{"fox"}}); err != nil {
		t.Fatalf("apply delta: %v", err)
	}
	words, err = st.LoadMistakenWords(ctx)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 || words[0] != "lazy" || words[1] != "quick" {
		t.Fatalf("unexpected words after removal: %v", words)
	}

	if err := st.ApplyMistakenDelta(ctx, model.MistakenDelta{}); err != nil {
		t.Fatalf("empty delta: %v", err)
	}
}
