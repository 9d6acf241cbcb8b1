package mistakes

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

func TestSetBasics(t *testing.T) {
	s := NewSet("fox", "dog", "fox")
	if s.Len() != 2 {
		t.Fatalf("expected 2 words, got %d", s.Len())
	}
	if !s.Contains("fox") || s.Contains("cat") {
		t.Fatalf("unexpected membership")
	}
	if s.Add("dog") {
		t.Fatalf("expected duplicate add to report false")
	}
	if !s.Add("cat") {
		t.Fatalf("expected new add to report true")
	}
	words := s.Words()
	if len(words) != 3 || words[0] != "cat" || words[2] != "fox" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestSample(t *testing.T) {
	s := NewSet()
	for i := 0; i < 40; i++ {
		s.Add(fmt.Sprintf("w%d", i))
	}
	rng := rand.New(rand.NewSource(1))
	got := s.Sample(25, rng)
	if len(got) != 25 {
		t.Fatalf("expected 25 words, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, w := range got {
		if seen[w] || !s.Contains(w) {
			t.Fatalf("unexpected sample %v", got)
		}
		seen[w] = true
	}
	if small := NewSet("a", "b").Sample(25, rng); len(small) != 2 {
		t.Fatalf("expected whole set when smaller than n, got %v", small)
	}
}

func TestPruneKeepsRoundMistakes(t *testing.T) {
	s := NewSet("quick", "fox")
	round := NewSet("quick", "fox")
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if removed := s.Prune([]string{"quick", "fox"}, round, rng); len(removed) != 0 {
			t.Fatalf("expected words mistyped this round to stay, removed %v", removed)
		}
	}
}

func TestPruneOnlyTouchesMembers(t *testing.T) {
	s := NewSet("fox")
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		for _, w := range s.Prune([]string{"the", "lazy", "dog"}, nil, rng) {
			t.Fatalf("unexpected removal of %q", w)
		}
	}
	if !s.Contains("fox") {
		t.Fatalf("expected fox to remain")
	}
}

func TestPruneRemovesAboutOneThird(t *testing.T) {
	const trials = 30000
	rng := rand.New(rand.NewSource(42))
	removed := 0
	for i := 0; i < trials; i++ {
		s := NewSet("word")
		removed += len(s.Prune([]string{"word"}, NewSet(), rng))
	}
	ratio := float64(removed) / trials
	if math.Abs(ratio-PruneChance) > 0.02 {
		t.Fatalf("expected removal rate near 1/3, got %.3f", ratio)
	}
}
