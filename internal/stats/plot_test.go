package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Tren", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
	}, PlotOptions{Width: 20, Height: 4, FirstLabel: "Jan 2024", LastLabel: "Mei 2024"})
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Tren") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legenda:") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title + 4 rows + x axis + legend
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "     4 │ ") {
		t.Fatalf("expected shared max label on first row, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "     0 │ ") {
		t.Fatalf("expected zero label on last row, got %q", lines[4])
	}
	if !strings.Contains(lines[5], "Jan 2024") || !strings.HasSuffix(lines[5], "Mei 2024") {
		t.Fatalf("unexpected x axis line %q", lines[5])
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Kosong", []Series{{Name: "A"}}, PlotOptions{Width: 10, Height: 4}); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := axisLabelWidth + displayWidth(axisSeparator)
	total := 80
	expected := total - axisWidth
	if got := PlotWidthFor(total); got != expected {
		t.Fatalf("expected width %d, got %d", expected, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
	if got := PlotWidthFor(12); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResampleSeries(t *testing.T) {
	got := resampleSeries([]float64{2, 4, 6, 8}, 2)
	if len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Fatalf("unexpected downsample %v", got)
	}
	got = resampleSeries([]float64{0, 10}, 3)
	if len(got) != 3 || got[0] != 0 || got[1] != 5 || got[2] != 10 {
		t.Fatalf("unexpected upsample %v", got)
	}
}
