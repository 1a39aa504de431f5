package dashboard

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/insidash/internal/geo"
	"github.com/verte-zerg/insidash/internal/stats"
)

const (
	mapPointLimit     = 15
	scatterPointLimit = 15
	gridHeight        = 14
)

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	r := m.report
	renders := []func() string{
		func() string { return renderSummaryTab(r, width, m.cfg.PlotHeight) },
		func() string { return renderDistributionTab(r, width) },
		func() string { return renderMapTab(r, width) },
		func() string { return renderScatterTab(r, width) },
	}
	for i, render := range renders {
		if len(r.Visible) == 0 {
			m.viewports[i].SetContent(m.emptyMessage())
			continue
		}
		m.viewports[i].SetContent(safeRender(render))
	}
}

func (m *Model) emptyMessage() string {
	switch {
	case m.loading && len(m.rows) == 0:
		return "Memuat dataset..."
	case m.loadErr != "":
		return errorStyle.Render(m.loadErr)
	case len(m.rows) == 0:
		return "Dataset kosong."
	}
	return "Tidak ada insiden yang cocok dengan filter."
}

func renderSummaryTab(r stats.Report, width, plotHeight int) string {
	cards := []string{
		metricCard("Total insiden", stats.FormatInt(len(r.Visible))),
		metricCard("Kasus selesai", r.Completion.Percent()),
		metricCard("Kekerasan seksual", r.Sexual.Percent()),
		metricCard("Rata-rata respons", stats.FormatHours(r.AvgResponse, r.HasResponse)),
		metricCard("Cakupan", fmt.Sprintf("%.0f%%", r.Coverage*100)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	var buf bytes.Buffer
	if err := stats.RenderTrend(&buf, r.Trend, stats.RenderOptions{Width: width, PlotHeight: plotHeight, Color: true}); err != nil {
		return summary + "\n\n" + errorStyle.Render(renderFailed)
	}
	spark := stats.Sparkline(stats.TrendTotals(r.Trend))
	if spark != "" {
		spark = headerStyle.Render("Total per bulan: " + spark)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String()+spark, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderDistributionTab(r stats.Report, width int) string {
	var buf bytes.Buffer
	sections := []struct {
		title  string
		groups []stats.Group
	}{
		{"Sektor pendidikan", r.Sectors},
		{"Provinsi", stats.TopGroups(r.Provinces, 10)},
		{"Komposisi status", r.Statuses},
		{"Severity", stats.SeverityGroups(r.Severity)},
	}
	for i, s := range sections {
		if i > 0 {
			buf.WriteString("\n")
		}
		if err := stats.RenderBars(&buf, cardValueStyle.Render(s.title), s.groups, width); err != nil {
			return errorStyle.Render(renderFailed)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderMapTab(r stats.Report, width int) string {
	b := r.Bounds
	lat, lon := geo.MapCenter(r.Points, b)
	lines := []string{
		fmt.Sprintf("Titik terpetakan: %s dari %s insiden", stats.FormatInt(len(r.Points)), stats.FormatInt(len(r.Visible))),
		headerStyle.Render(fmt.Sprintf("Batas: %.2f..%.2f LS/LU, %.2f..%.2f BT  Pusat: %.2f, %.2f", b.MinLat, b.MaxLat, b.MinLon, b.MaxLon, lat, lon)),
		"",
	}
	marks := make([]gridMark, len(r.Points))
	for i, p := range r.Points {
		marks[i] = gridMark{x: p.Lon, y: p.Lat, glyph: severityGlyph(geo.SeverityTier(p.Severity))}
	}
	lines = append(lines, renderGrid(marks, minInt(width, 100), gridHeight, b.MinLon, b.MaxLon, b.MinLat, b.MaxLat)...)
	lines = append(lines, headerStyle.Render("· rendah  o severity 3  O severity 4  @ severity 5"), "")

	lines = append(lines, cardValueStyle.Render("Per provinsi"))
	for _, pc := range geo.ByProvince(r.Points) {
		lines = append(lines, fmt.Sprintf("%-28s %5s  (%.2f, %.2f)", truncateLine(pc.Province, 28), stats.FormatInt(pc.Count), pc.Lat, pc.Lon))
	}
	lines = append(lines, "", cardValueStyle.Render("Titik"))
	for i, p := range r.Points {
		if i == mapPointLimit {
			lines = append(lines, headerStyle.Render(fmt.Sprintf("... %d titik lagi", len(r.Points)-mapPointLimit)))
			break
		}
		lines = append(lines, fmt.Sprintf("%-30s %-20s r=%d %s", truncateLine(p.Label, 30), truncateLine(p.Province, 20), geo.MarkerRadius(p.Severity), p.Source))
	}
	return strings.Join(lines, "\n")
}

func renderScatterTab(r stats.Report, width int) string {
	s := r.Scatter
	if len(s.Points) == 0 {
		return "Tidak ada insiden dengan waktu respons dan penyelesaian."
	}
	lines := []string{
		fmt.Sprintf("Respons (jam) vs penyelesaian (hari): %s titik", stats.FormatInt(len(s.Points))),
		headerStyle.Render(fmt.Sprintf("Rata-rata respons %.1f jam  Rata-rata penyelesaian %.1f hari", s.MeanResponse, s.MeanResolution)),
		"",
	}
	marks := make([]gridMark, 0, len(s.Points)+2)
	for _, p := range s.Points {
		marks = append(marks, gridMark{x: p.Response, y: p.Resolution, glyph: '•'})
	}
	grid := renderGrid(marks, minInt(width, 100), gridHeight, 0, math.Max(s.MaxResponse, 1), 0, math.Max(s.MaxResolution, 1))
	lines = append(lines, grid...)
	lines = append(lines, headerStyle.Render(fmt.Sprintf("x: 0..%.0f jam  y: 0..%.0f hari", s.MaxResponse, s.MaxResolution)), "")
	for i, p := range s.Points {
		if i == scatterPointLimit {
			lines = append(lines, headerStyle.Render(fmt.Sprintf("... %d titik lagi", len(s.Points)-scatterPointLimit)))
			break
		}
		lines = append(lines, fmt.Sprintf("%-30s %8.1f jam %8.1f hari", truncateLine(p.Label, 30), p.Response, p.Resolution))
	}
	return strings.Join(lines, "\n")
}

type gridMark struct {
	x, y  float64
	glyph rune
}

// renderGrid plots marks into a bordered character grid. Later marks win
// cells they share with earlier ones, except that a heavier glyph is kept.
func renderGrid(marks []gridMark, width, height int, minX, maxX, minY, maxY float64) []string {
	inner := maxInt(10, width-2)
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", inner))
	}
	spanX, spanY := maxX-minX, maxY-minY
	for _, mk := range marks {
		if spanX <= 0 || spanY <= 0 || mk.x < minX || mk.x > maxX || mk.y < minY || mk.y > maxY {
			continue
		}
		col := int(math.Round((mk.x - minX) / spanX * float64(inner-1)))
		row := height - 1 - int(math.Round((mk.y-minY)/spanY*float64(height-1)))
		if glyphWeight(mk.glyph) >= glyphWeight(cells[row][col]) {
			cells[row][col] = mk.glyph
		}
	}
	lines := make([]string, 0, height+2)
	lines = append(lines, "┌"+strings.Repeat("─", inner)+"┐")
	for _, row := range cells {
		lines = append(lines, "│"+string(row)+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", inner)+"┘")
	return lines
}

func severityGlyph(tier int) rune {
	switch tier {
	case 5:
		return '@'
	case 4:
		return 'O'
	case 3:
		return 'o'
	}
	return '·'
}

func glyphWeight(r rune) int {
	switch r {
	case '@':
		return 4
	case 'O':
		return 3
	case 'o':
		return 2
	case '·', '•':
		return 1
	}
	return 0
}
