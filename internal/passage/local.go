package passage

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/tuirace/internal/model"
)

// ErrNoPassages is returned when no enabled pack holds a passage file.
var ErrNoPassages = errors.New("no passages found in enabled lang packs")

// LocalSource serves random passages from lang packs on disk.
type LocalSource struct {
	dirs        Dirs
	whitelisted []string
	blacklisted []string
	rnd         *rand.Rand
}

// NewLocalSource returns a source over dirs seeded with the current time.
func NewLocalSource(dirs Dirs, whitelisted, blacklisted []string) *LocalSource {
	return NewLocalSourceWithRand(dirs, whitelisted, blacklisted, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewLocalSourceWithRand returns a source drawing from rnd.
func NewLocalSourceWithRand(dirs Dirs, whitelisted, blacklisted []string, rnd *rand.Rand) *LocalSource {
	return &LocalSource{dirs: dirs, whitelisted: whitelisted, blacklisted: blacklisted, rnd: rnd}
}

// Packs returns the enabled packs followed by every discovered pack.
func (s *LocalSource) Packs() (enabled, all []Pack, err error) {
	all, err = Discover(s.dirs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover lang packs: %w", err)
	}
	return Filter(all, s.whitelisted, s.blacklisted), all, nil
}

// Fetch picks a passage file uniformly across enabled packs.
func (s *LocalSource) Fetch(ctx context.Context) (model.Passage, error) {
	enabled, _, err := s.Packs()
	if err != nil {
		return model.Passage{}, err
	}
	var files []string
	for _, pack := range enabled {
		if err := ctx.Err(); err != nil {
			return model.Passage{}, err
		}
		packFiles, err := pack.Files()
		if err != nil {
			return model.Passage{}, fmt.Errorf("failed to list pack %s: %w", pack.Name, err)
		}
		files = append(files, packFiles...)
	}
	if len(files) == 0 {
		return model.Passage{}, ErrNoPassages
	}
	return ReadFile(files[s.rnd.Intn(len(files))])
}
