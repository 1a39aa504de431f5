package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const cellEllipsis = "…"

// textColumn describes one column of an aligned text table.
type textColumn struct {
	header string
	right  bool
	// max truncates wider cells with an ellipsis; 0 keeps cells whole.
	max int
	// min pads the column to at least this many display columns.
	min int
}

// textTable lays out cells in columns separated by one space. Widths are
// measured in display columns, so wide runes stay aligned.
type textTable struct {
	cols []textColumn
	rows [][]string
}

func newTextTable(cols ...textColumn) *textTable {
	return &textTable{cols: cols}
}

// add appends a row. Cells beyond the column count are dropped; missing cells
// render empty.
func (t *textTable) add(cells ...string) {
	row := make([]string, len(t.cols))
	for i := range row {
		if i < len(cells) {
			row[i] = t.cols[i].fit(cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

func (c textColumn) fit(cell string) string {
	if c.max <= 0 || displayWidth(cell) <= c.max {
		return cell
	}
	return runewidth.Truncate(cell, c.max, cellEllipsis)
}

func (t *textTable) hasHeader() bool {
	for _, c := range t.cols {
		if c.header != "" {
			return true
		}
	}
	return false
}

func (t *textTable) widths() []int {
	widths := make([]int, len(t.cols))
	for i, c := range t.cols {
		widths[i] = c.min
		if w := displayWidth(c.header); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// width is the display width of a full line, separators included.
func (t *textTable) width() int {
	total := 0
	for _, w := range t.widths() {
		total += w
	}
	if n := len(t.cols); n > 1 {
		total += n - 1
	}
	return total
}

// lines renders the header, when any column has one, followed by every row.
// Trailing padding is trimmed.
func (t *textTable) lines() []string {
	if len(t.cols) == 0 {
		return nil
	}
	widths := t.widths()
	out := make([]string, 0, len(t.rows)+1)
	if t.hasHeader() {
		headers := make([]string, len(t.cols))
		for i, c := range t.cols {
			headers[i] = c.header
		}
		out = append(out, t.line(headers, widths))
	}
	for _, row := range t.rows {
		out = append(out, t.line(row, widths))
	}
	return out
}

func (t *textTable) line(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		gap := strings.Repeat(" ", max(0, widths[i]-displayWidth(cell)))
		if t.cols[i].right {
			parts[i] = gap + cell
		} else {
			parts[i] = cell + gap
		}
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
