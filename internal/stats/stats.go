// Package stats contains live round scoring and history reporting.
package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/tuirace/internal/model"
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Summary holds aggregate numbers over a set of rounds.
type Summary struct {
	Rounds       int
	Failed       int
	AvgWPM       float64
	BestWPM      int
	AvgAccuracy  float64
	HighestCombo int
}

// Summarize aggregates rounds.
func Summarize(rounds []model.ResultAggregate) Summary {
	var sum Summary
	if len(rounds) == 0 {
		return sum
	}
	var totalWPM, totalAcc float64
	for _, r := range rounds {
		totalWPM += float64(r.WPM)
		totalAcc += r.Accuracy
		sum.BestWPM = max(sum.BestWPM, r.WPM)
		sum.HighestCombo = max(sum.HighestCombo, r.HighestCombo)
		if r.Failed {
			sum.Failed++
		}
	}
	sum.Rounds = len(rounds)
	sum.AvgWPM = totalWPM / float64(len(rounds))
	sum.AvgAccuracy = totalAcc / float64(len(rounds))
	return sum
}

// RenderSummary prints a summary of rounds.
func RenderSummary(w io.Writer, rounds []model.ResultAggregate) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	sum := Summarize(rounds)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", sum.Rounds),
		fmt.Sprintf("Failed: %d", sum.Failed),
		fmt.Sprintf("Avg WPM: %.2f", sum.AvgWPM),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", sum.AvgAccuracy),
		fmt.Sprintf("Highest Combo: %d", sum.HighestCombo),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderModeTable prints one summary row per game mode that has rounds.
func RenderModeTable(w io.Writer, rounds []model.ResultAggregate) error {
	if len(rounds) == 0 {
		return nil
	}
	byMode := map[model.GameMode][]model.ResultAggregate{}
	for _, r := range rounds {
		byMode[r.Mode] = append(byMode[r.Mode], r)
	}
	headers := []string{"Mode", "Rounds", "Failed", "Avg WPM", "Best WPM", "Avg Accuracy", "Best Combo"}
	var rows [][]string
	for _, mode := range []model.GameMode{model.ModeDefault, model.ModeInstantDeath, model.ModeTraining} {
		modeRounds, ok := byMode[mode]
		if !ok {
			continue
		}
		sum := Summarize(modeRounds)
		rows = append(rows, []string{
			mode.String(),
			fmt.Sprintf("%d", sum.Rounds),
			fmt.Sprintf("%d", sum.Failed),
			fmt.Sprintf("%.2f", sum.AvgWPM),
			fmt.Sprintf("%d", sum.BestWPM),
			fmt.Sprintf("%.2f%%", sum.AvgAccuracy),
			fmt.Sprintf("%d", sum.HighestCombo),
		})
	}
	if _, err := fmt.Fprintln(w, "Per Mode"); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurvesWithSize prints WPM, accuracy and combo curves smoothed over
// window. A non-positive totalWidth sizes the plot to the terminal.
func RenderCurvesWithSize(w io.Writer, rounds []model.ResultAggregate, window, totalWidth, height int, useColor bool) error {
	if len(rounds) == 0 {
		return nil
	}
	wpms := make([]float64, len(rounds))
	accs := make([]float64, len(rounds))
	combos := make([]float64, len(rounds))
	for i, r := range rounds {
		wpms[i] = float64(r.WPM)
		accs[i] = r.Accuracy
		combos[i] = float64(r.HighestCombo)
	}

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	series := []Series{
		{Name: "WPM", Values: MovingAverage(wpms, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
		{Name: "Combo", Values: MovingAverage(combos, window)},
	}
	if useColor {
		return PlotSeriesWithColor(w, "Learning Curves", series, width, height, true)
	}
	return PlotSeries(w, "Learning Curves", series, width, height)
}
