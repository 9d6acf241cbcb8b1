// Package mistakes tracks words the player mistyped so they can be retrained.
package mistakes

import (
	"math/rand"
	"sort"
)

// PruneChance is the probability that a word typed cleanly in a training
// round leaves the set.
const PruneChance = 1.0 / 3.0

// Set is an unordered collection of mistyped words.
type Set struct {
	words map[string]struct{}
}

// NewSet returns a set holding words.
func NewSet(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts word and reports whether it was new.
func (s *Set) Add(word string) bool {
	if _, ok := s.words[word]; ok {
		return false
	}
	s.words[word] = struct{}{}
	return true
}

// Remove deletes word and reports whether it was present.
func (s *Set) Remove(word string) bool {
	if _, ok := s.words[word]; !ok {
		return false
	}
	delete(s.words, word)
	return true
}

// Contains reports whether word is in the set.
func (s *Set) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words.
func (s *Set) Len() int { return len(s.words) }

// Words returns the words in sorted order.
func (s *Set) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Sample returns up to n distinct words picked at random.
func (s *Set) Sample(n int, rng *rand.Rand) []string {
	words := s.Words()
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	if n < len(words) {
		words = words[:n]
	}
	return words
}

// Prune gives every unit of a finished training round that was not mistyped
// in it a PruneChance roll to leave the set. Words in roundMistakes always
// stay. The removed words are returned.
func (s *Set) Prune(units []string, roundMistakes *Set, rng *rand.Rand) []string {
	var removed []string
	for _, unit := range units {
		if roundMistakes != nil && roundMistakes.Contains(unit) {
			continue
		}
		if rng.Float64() >= PruneChance {
			continue
		}
		if s.Remove(unit) {
			removed = append(removed, unit)
		}
	}
	return removed
}
