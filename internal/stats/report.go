package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/tuirace/internal/model"
	"github.com/verte-zerg/tuirace/internal/store"
)

const topPassages = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Rounds      []model.ResultAggregate
	CurveWindow int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	rounds, err := st.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list results: %w", err)
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}
	return Report{Rounds: rounds, CurveWindow: cfg.CurveWindow}, nil
}

// Render writes every report section sized to width.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderSummary(w, r.Rounds); err != nil {
		return err
	}
	if err := RenderModeTable(w, r.Rounds); err != nil {
		return err
	}
	if err := RenderCurvesWithSize(w, r.Rounds, r.CurveWindow, width, defaultPlotHeight, false); err != nil {
		return err
	}
	return RenderTopPassages(w, r.Rounds, topPassages)
}
