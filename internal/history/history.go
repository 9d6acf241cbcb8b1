// Package history keeps a bounded ring of recently served passages.
package history

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuirace/internal/model"
)

// DefaultCapacity is the number of passages retained when none is configured.
const DefaultCapacity = 50

// Fallback is served when a passage cannot be fetched.
var Fallback = model.Passage{
	Text:     "The quick brown fox jumps over the lazy dog",
	Title:    "darrienglasser.com",
	SourceID: model.FallbackSourceID,
}

// Action is a player navigation request between rounds.
type Action int

// Navigation actions.
const (
	ActionNext Action = iota
	ActionPrevious
	ActionRestart
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionPrevious:
		return "previous"
	case ActionRestart:
		return "restart"
	case ActionQuit:
		return "quit"
	default:
		return "next"
	}
}

// Fetcher produces fresh passages.
type Fetcher interface {
	Fetch(ctx context.Context) (model.Passage, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (model.Passage, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) (model.Passage, error) {
	return f(ctx)
}

// Buffer is a fixed-capacity ring over served passages. Moving forward past
// the newest passage fetches a new one, evicting the oldest once full; moving
// forward after moving back replays what was already served.
type Buffer struct {
	fetcher Fetcher
	logger  zerolog.Logger

	slots    []model.Passage
	capacity int
	current  int
	start    int
	empty    bool
	pending  *model.Passage
}

// New returns an empty buffer. Capacities below one are raised to one.
func New(capacity int, fetcher Fetcher, logger zerolog.Logger) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		fetcher:  fetcher,
		logger:   logger,
		slots:    make([]model.Passage, 0, capacity),
		capacity: capacity,
		empty:    true,
	}
}

// Seed makes p the first passage served instead of a fetched one.
// It has no effect once the buffer holds passages.
func (b *Buffer) Seed(p model.Passage) {
	if !b.empty {
		return
	}
	b.pending = &p
}

// Capacity returns the maximum number of retained passages.
func (b *Buffer) Capacity() int { return b.capacity }

// Len returns the number of populated slots.
func (b *Buffer) Len() int { return len(b.slots) }

// Current returns the passage at the cursor, or false when nothing was served yet.
func (b *Buffer) Current() (model.Passage, bool) {
	if b.empty {
		return model.Passage{}, false
	}
	return b.slots[b.current], true
}

// Retrieve applies a navigation action and returns the passage to play.
// Only ActionNext can leave the empty state; other actions on an empty
// buffer return false.
func (b *Buffer) Retrieve(ctx context.Context, action Action) (model.Passage, bool) {
	switch action {
	case ActionNext:
		return b.Next(ctx), true
	case ActionPrevious:
		return b.Previous()
	default:
		return b.Current()
	}
}

// Next moves forward, fetching when the cursor reaches an unpopulated or
// evicted slot.
func (b *Buffer) Next(ctx context.Context) model.Passage {
	if b.empty {
		b.empty = false
		b.slots = append(b.slots, b.first(ctx))
		return b.slots[b.current]
	}

	b.current = (b.current + 1) % b.capacity
	switch {
	case b.current == b.start:
		// Full wrap: the oldest passage is dropped.
		b.start = (b.start + 1) % b.capacity
		if len(b.slots) < b.capacity {
			b.slots = append(b.slots, b.fetch(ctx))
		} else {
			b.slots[b.current] = b.fetch(ctx)
		}
	case b.current == len(b.slots) && len(b.slots) < b.capacity:
		b.slots = append(b.slots, b.fetch(ctx))
	}
	return b.slots[b.current]
}

// Previous moves back one passage, stopping at the oldest retained one.
func (b *Buffer) Previous() (model.Passage, bool) {
	if b.empty {
		return model.Passage{}, false
	}
	if b.current != b.start {
		b.current = (b.current - 1 + b.capacity) % b.capacity
	}
	return b.slots[b.current], true
}

func (b *Buffer) first(ctx context.Context) model.Passage {
	if b.pending != nil {
		p := *b.pending
		b.pending = nil
		return p
	}
	return b.fetch(ctx)
}

func (b *Buffer) fetch(ctx context.Context) model.Passage {
	if b.fetcher == nil {
		return Fallback
	}
	p, err := b.fetcher.Fetch(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("failed to fetch passage, using fallback")
		return Fallback
	}
	return p
}
