package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Round Curves", []Series{
		{Name: "WPM", Values: []float64{40, 55, 62, 58, 70}},
		{Name: "Combo", Values: []float64{10, 12, 30, 45, 60}},
	}, 5, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Round Curves") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, scaleNote) {
		t.Fatalf("expected scale note in output")
	}
	if !strings.Contains(out, "WPM: min=40.00 max=70.00 last=70.00") {
		t.Fatalf("expected WPM range in output:\n%s", out)
	}
	if !strings.Contains(out, "Legend:") || strings.Contains(out, "\x1b[") {
		t.Fatalf("expected uncolored legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, note, two ranges, four plot rows, legend.
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines of output, got %d", len(lines))
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", []Series{{Name: "WPM"}}, 20, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotSeriesWithColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	if err := PlotSeriesWithColor(&buf, "", []Series{{Name: "Accuracy", Values: []float64{90, 95}}}, 10, 2, true); err != nil {
		t.Fatalf("PlotSeriesWithColor failed: %v", err)
	}
	if !strings.Contains(buf.String(), colorPalette[0].code) {
		t.Fatalf("expected colored output")
	}
}

func TestPlotFlatSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "", []Series{{Name: "Accuracy", Values: []float64{100, 100, 100}}}, 10, 3); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Accuracy: min=99.00 max=101.00") {
		t.Fatalf("expected widened range for flat series:\n%s", buf.String())
	}
}

func TestResample(t *testing.T) {
	down := resample([]float64{1, 3, 5, 7}, 2)
	if down[0] != 2 || down[1] != 6 {
		t.Fatalf("unexpected downsample %v", down)
	}
	up := resample([]float64{0, 10}, 3)
	if up[0] != 0 || up[1] != 5 || up[2] != 10 {
		t.Fatalf("unexpected upsample %v", up)
	}
	single := resample([]float64{4}, 3)
	if single[0] != 4 || single[2] != 4 {
		t.Fatalf("unexpected single-value resample %v", single)
	}
}
