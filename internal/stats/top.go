package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/tuirace/internal/model"
)

// PassageSummary aggregates the rounds played on one passage.
type PassageSummary struct {
	PassageID string
	Plays     int
	AvgWPM    float64
	BestWPM   int
}

// TopPassagesByPlays returns the n most played passages.
func TopPassagesByPlays(rounds []model.ResultAggregate, n int) []PassageSummary {
	if n <= 0 || len(rounds) == 0 {
		return nil
	}
	byPassage := map[string]*PassageSummary{}
	totals := map[string]float64{}
	for _, r := range rounds {
		ps, ok := byPassage[r.PassageID]
		if !ok {
			ps = &PassageSummary{PassageID: r.PassageID}
			byPassage[r.PassageID] = ps
		}
		ps.Plays++
		ps.BestWPM = max(ps.BestWPM, r.WPM)
		totals[r.PassageID] += float64(r.WPM)
	}
	items := make([]PassageSummary, 0, len(byPassage))
	for id, ps := range byPassage {
		ps.AvgWPM = totals[id] / float64(ps.Plays)
		items = append(items, *ps)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Plays == items[j].Plays {
			return items[i].PassageID < items[j].PassageID
		}
		return items[i].Plays > items[j].Plays
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// RenderTopPassages prints the most played passages.
func RenderTopPassages(w io.Writer, rounds []model.ResultAggregate, n int) error {
	top := TopPassagesByPlays(rounds, n)
	if len(top) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Most Played Passages"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(top))
	for _, ps := range top {
		rows = append(rows, []string{
			ps.PassageID,
			fmt.Sprintf("%d", ps.Plays),
			fmt.Sprintf("%.2f", ps.AvgWPM),
			fmt.Sprintf("%d", ps.BestWPM),
		})
	}
	lines := formatTable([]string{"Passage", "Plays", "Avg WPM", "Best WPM"}, rows, map[int]bool{1: true, 2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
