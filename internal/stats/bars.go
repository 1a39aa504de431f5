package stats

import (
	"fmt"
	"io"
	"strings"
)

const (
	barRune     = "█"
	minBarWidth = 4
	maxLabelLen = 24
)

// RenderBars prints a horizontal bar list for groups within totalWidth
// columns. A non-positive width uses the terminal width.
func RenderBars(w io.Writer, title string, groups []Group, totalWidth int) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, "Tidak ada data.")
		return err
	}
	for _, line := range barLines(groups, totalWidth) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// SeverityGroups turns a histogram into groups labelled 1..5.
func SeverityGroups(hist [5]int) []Group {
	total := 0
	for _, n := range hist {
		total += n
	}
	out := make([]Group, len(hist))
	for i, n := range hist {
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total)
		}
		out[i] = Group{Label: fmt.Sprintf("Severity %d", i+1), Count: n, Share: share}
	}
	return out
}

func barLines(groups []Group, totalWidth int) []string {
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	maxCount := 0
	for _, g := range groups {
		if g.Count > maxCount {
			maxCount = g.Count
		}
	}
	bars := func(barWidth int) *textTable {
		t := newTextTable(
			textColumn{max: maxLabelLen},
			textColumn{min: barWidth},
			textColumn{right: true},
			textColumn{right: true},
		)
		for _, g := range groups {
			n := 0
			if barWidth > 0 && maxCount > 0 && g.Count > 0 {
				n = max(1, g.Count*barWidth/maxCount)
			}
			t.add(g.Label, strings.Repeat(barRune, n), FormatInt(g.Count), fmt.Sprintf("%.1f%%", g.Share*100))
		}
		return t
	}
	// Measure the fixed columns with an empty bar, then size bars into the rest.
	barWidth := max(minBarWidth, totalWidth-bars(0).width()-1)
	return bars(barWidth).lines()
}
