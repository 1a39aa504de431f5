package dashboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/stats"
)

var columnWidths = map[stats.Column]int{
	stats.ColDate:       10,
	stats.ColCategory:   18,
	stats.ColType:       22,
	stats.ColSector:     10,
	stats.ColProvince:   16,
	stats.ColSeverity:   8,
	stats.ColStatus:     12,
	stats.ColResponse:   12,
	stats.ColResolution: 14,
}

func buildTable(width, height int) table.Model {
	t := table.New(
		table.WithColumns(tableColumns(stats.ColDate, true)),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(tableStyles())
	return t
}

func tableColumns(sortCol stats.Column, desc bool) []table.Column {
	cols := make([]table.Column, len(stats.Columns))
	for i, c := range stats.Columns {
		title := c.Title()
		if c == sortCol {
			if desc {
				title += " ↓"
			} else {
				title += " ↑"
			}
		}
		cols[i] = table.Column{Title: title, Width: maxInt(columnWidths[c], lipgloss.Width(title))}
	}
	return cols
}

func tableRows(rows []model.Incident) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		cells := make(table.Row, len(stats.Columns))
		for j, c := range stats.Columns {
			cells[j] = c.Cell(row)
		}
		out[i] = cells
	}
	return out
}

// applyTablePage loads the current page of sorted rows into the table.
func (m *Model) applyTablePage() {
	items, page, pages := stats.Page(m.sorted, m.page, m.cfg.PageSize)
	m.page, m.pages = page, pages
	m.table.SetRows(nil)
	m.table.SetColumns(tableColumns(m.sortCol, m.sortDesc))
	m.table.SetRows(tableRows(items))
	m.table.GotoTop()
}

func (m *Model) renderTable() string {
	if len(m.report.Visible) == 0 {
		return m.emptyMessage()
	}
	footer := headerStyle.Render(fmt.Sprintf("Halaman %d/%d  %s baris  Urut: %s",
		m.page+1, m.pages, stats.FormatInt(len(m.sorted)), m.sortCol.Title()))
	return tableMutedStyle.Render(m.table.View()) + "\n" + footer
}

func (m *Model) setTableSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(maxInt(1, height-2))
	m.table.SetHeight(m.adjustTableHeight(height - 1))
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// adjustTableHeight returns the table height whose rendered view fills target lines.
func (m *Model) adjustTableHeight(target int) int {
	target = maxInt(1, target)
	height := m.table.Height()
	for i := 0; i < 2; i++ {
		viewHeight := lipgloss.Height(m.table.View())
		if viewHeight == target {
			return height
		}
		height = maxInt(1, height+target-viewHeight)
		m.table.SetHeight(height)
	}
	return height
}
