package passage

import (
	"context"
	"math/rand"
	"strings"

	"github.com/verte-zerg/tuirace/internal/model"
)

// TrainingWords is the number of mistaken words in a training passage.
const TrainingWords = 25

// TrainingTitle is the title of every training passage.
const TrainingTitle = "Mistaken Words"

// EmptyTrainingText is served when there is nothing to retrain.
const EmptyTrainingText = "You don't have any mistaken words! Play the default game mode for a while and make some mistakes!"

// WordSampler picks distinct words at random.
type WordSampler interface {
	Len() int
	Sample(n int, rnd *rand.Rand) []string
}

// TrainingSource builds passages out of previously mistyped words.
type TrainingSource struct {
	words WordSampler
	rnd   *rand.Rand
}

// NewTrainingSourceWithRand returns a source drawing from rnd.
func NewTrainingSourceWithRand(words WordSampler, rnd *rand.Rand) *TrainingSource {
	return &TrainingSource{words: words, rnd: rnd}
}

// Fetch returns up to TrainingWords random mistaken words.
func (s *TrainingSource) Fetch(context.Context) (model.Passage, error) {
	p := model.Passage{Title: TrainingTitle, SourceID: model.TrainingSourceID}
	if s.words == nil || s.words.Len() == 0 {
		p.Text = EmptyTrainingText
		return p, nil
	}
	p.Text = strings.Join(s.words.Sample(TrainingWords, s.rnd), " ")
	return p, nil
}
