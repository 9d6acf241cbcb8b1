// Package passage loads passages from lang packs and builds training passages.
package passage

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/tuirace/internal/model"
	"github.com/verte-zerg/tuirace/internal/segment"
)

// ReadFile reads a passage file: the first line is the passage, the second its title.
func ReadFile(path string) (model.Passage, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Passage{}, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only passage file.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() && len(lines) < 2 {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return model.Passage{}, err
	}
	if len(lines) < 2 {
		return model.Passage{}, fmt.Errorf("passage file %s needs a text and a title line", path)
	}
	return model.Passage{
		Text:     segment.Normalize(strings.TrimSpace(lines[0])),
		Title:    strings.TrimSpace(lines[1]),
		SourceID: path,
	}, nil
}

// FromText builds the passage for text supplied by the player.
func FromText(words []string) model.Passage {
	return model.Passage{
		Text:     segment.Normalize(strings.Join(strings.Fields(strings.Join(words, " ")), " ")),
		Title:    model.UserInputSourceID,
		SourceID: model.UserInputSourceID,
	}
}
