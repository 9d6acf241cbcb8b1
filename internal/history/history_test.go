package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuirace/internal/model"
)

type counter struct {
	n int
}

func (c *counter) Fetch(context.Context) (model.Passage, error) {
	c.n++
	return model.Passage{Text: fmt.Sprintf("passage %d", c.n), Title: "t", SourceID: fmt.Sprintf("/p/%d", c.n)}, nil
}

func newBuffer(capacity int) (*Buffer, *counter) {
	c := &counter{}
	return New(capacity, c, zerolog.Nop()), c
}

func TestNextFillsAtMostCapacity(t *testing.T) {
	b, _ := newBuffer(5)
	ctx := context.Background()
	for i := 0; i < 4000; i++ {
		b.Next(ctx)
	}
	if b.Len() != 5 {
		t.Fatalf("expected 5 populated slots, got %d", b.Len())
	}
}

func TestEmptyBuffer(t *testing.T) {
	b, c := newBuffer(3)
	if _, ok := b.Current(); ok {
		t.Fatalf("expected no current passage")
	}
	if _, ok := b.Previous(); ok {
		t.Fatalf("expected previous on empty buffer to report false")
	}
	if _, ok := b.Retrieve(context.Background(), ActionRestart); ok {
		t.Fatalf("expected restart on empty buffer to report false")
	}
	if c.n != 0 {
		t.Fatalf("expected no fetches, got %d", c.n)
	}
}

func TestPreviousAtOldestIsIdempotent(t *testing.T) {
	b, _ := newBuffer(5)
	ctx := context.Background()
	first := b.Next(ctx)
	for i := 0; i < 3; i++ {
		p, ok := b.Previous()
		if !ok || p != first {
			t.Fatalf("expected previous to stay on the first passage, got %+v", p)
		}
	}
}

func TestRestartReturnsCurrent(t *testing.T) {
	b, c := newBuffer(5)
	ctx := context.Background()
	b.Next(ctx)
	cur := b.Next(ctx)
	for _, action := range []Action{ActionRestart, ActionQuit} {
		p, ok := b.Retrieve(ctx, action)
		if !ok || p != cur {
			t.Fatalf("%s: expected current passage %+v, got %+v", action, cur, p)
		}
	}
	if c.n != 2 {
		t.Fatalf("expected no extra fetches, got %d", c.n)
	}
}

func TestNextAfterPreviousReplaysHistory(t *testing.T) {
	b, c := newBuffer(5)
	ctx := context.Background()
	var served []model.Passage
	for i := 0; i < 4; i++ {
		served = append(served, b.Next(ctx))
	}
	for i := 2; i >= 0; i-- {
		p, _ := b.Previous()
		if p != served[i] {
			t.Fatalf("expected %+v going back, got %+v", served[i], p)
		}
	}
	for i := 1; i < 4; i++ {
		if p := b.Next(ctx); p != served[i] {
			t.Fatalf("expected replay of %+v, got %+v", served[i], p)
		}
	}
	if c.n != 4 {
		t.Fatalf("expected replay without fetching, got %d fetches", c.n)
	}
	if p := b.Next(ctx); p == served[3] || c.n != 5 {
		t.Fatalf("expected a fresh passage past the newest one")
	}
}

func TestWrapEvictsOldest(t *testing.T) {
	b, _ := newBuffer(3)
	ctx := context.Background()
	var served []model.Passage
	for i := 0; i < 5; i++ {
		served = append(served, b.Next(ctx))
	}
	// Retained: passages 3, 4 and 5.
	var back []model.Passage
	for i := 0; i < 5; i++ {
		p, _ := b.Previous()
		back = append(back, p)
	}
	if back[0] != served[3] || back[1] != served[2] || back[2] != served[2] || back[4] != served[2] {
		t.Fatalf("unexpected history walk: %+v", back)
	}
}

func TestCapacityOne(t *testing.T) {
	b, c := newBuffer(1)
	ctx := context.Background()
	b.Next(ctx)
	p := b.Next(ctx)
	if b.Len() != 1 || c.n != 2 || p.Text != "passage 2" {
		t.Fatalf("expected a single refreshed slot, len=%d fetches=%d passage=%+v", b.Len(), c.n, p)
	}
	if prev, _ := b.Previous(); prev != p {
		t.Fatalf("expected previous to stay put with capacity one")
	}
}

func TestSeedServedFirst(t *testing.T) {
	b, c := newBuffer(3)
	user := model.Passage{Text: "my own text", Title: model.UserInputSourceID, SourceID: model.UserInputSourceID}
	b.Seed(user)
	ctx := context.Background()
	if p := b.Next(ctx); p != user {
		t.Fatalf("expected seeded passage first, got %+v", p)
	}
	if c.n != 0 {
		t.Fatalf("expected no fetch for seeded passage")
	}
	b.Next(ctx)
	if p, _ := b.Previous(); p != user {
		t.Fatalf("expected seeded passage to stay in history")
	}
	b.Seed(model.Passage{Text: "late"})
	if p, _ := b.Current(); p != user {
		t.Fatalf("expected seed to be ignored once populated")
	}
}

func TestFetchFailureFallsBack(t *testing.T) {
	failing := FetcherFunc(func(context.Context) (model.Passage, error) {
		return model.Passage{}, errors.New("no lang packs")
	})
	b := New(2, failing, zerolog.Nop())
	if p := b.Next(context.Background()); p != Fallback {
		t.Fatalf("expected fallback passage, got %+v", p)
	}
	nb := New(0, nil, zerolog.Nop())
	if nb.Capacity() != 1 {
		t.Fatalf("expected capacity clamped to 1, got %d", nb.Capacity())
	}
	if p := nb.Next(context.Background()); p != Fallback {
		t.Fatalf("expected fallback without fetcher, got %+v", p)
	}
}
