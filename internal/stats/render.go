package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/insidash/internal/filter"
	"github.com/verte-zerg/insidash/internal/model"
)

const topGroupLimit = 8

// RenderOptions controls text report output.
type RenderOptions struct {
	Width      int
	PlotHeight int
	Color      bool
}

// RenderSummary writes the headline metrics, distributions and trend of r.
func RenderSummary(w io.Writer, r Report, opts RenderOptions) error {
	chips := filter.Chips(r.Filter)
	filterLine := "Filter: semua data"
	if len(chips) > 0 {
		labels := make([]string, len(chips))
		for i, c := range chips {
			labels[i] = c.Label
		}
		filterLine = fmt.Sprintf("Filter (%d): %s", r.AppliedFilters, strings.Join(labels, ", "))
	}

	updated := r.LastUpdated
	if updated == "" {
		updated = "-"
	}
	header := []string{
		fmt.Sprintf("Insiden: %s dari %s baris (%.0f%%)", FormatInt(len(r.Visible)), FormatInt(r.RawCount), r.Coverage*100),
		filterLine,
		"Pembaruan terakhir: " + updated,
		"",
	}
	for _, line := range header {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	metrics := newTextTable(
		textColumn{header: "Metrik"},
		textColumn{header: "Nilai", right: true},
		textColumn{header: "Persentase", right: true},
	)
	metrics.add("Kasus selesai", FormatInt(r.Completion.Part), r.Completion.Percent())
	metrics.add("Kekerasan seksual", FormatInt(r.Sexual.Part), r.Sexual.Percent())
	metrics.add("Rata-rata respons", FormatHours(r.AvgResponse, r.HasResponse))
	for _, line := range metrics.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	sections := []struct {
		title  string
		groups []Group
	}{
		{"Sektor", r.Sectors},
		{"Provinsi", TopGroups(r.Provinces, topGroupLimit)},
		{"Status kasus", r.Statuses},
		{"Severity", SeverityGroups(r.Severity)},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := RenderBars(w, s.title, s.groups, opts.Width); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return RenderTrend(w, r.Trend, opts)
}

// RenderTrend plots monthly sexual and non-sexual counts on one scale.
func RenderTrend(w io.Writer, trend []MonthBucket, opts RenderOptions) error {
	if _, err := fmt.Fprintln(w, "Tren bulanan"); err != nil {
		return err
	}
	if len(trend) == 0 {
		_, err := fmt.Fprintln(w, "Tidak ada data.")
		return err
	}
	sexual := make([]float64, len(trend))
	nonSexual := make([]float64, len(trend))
	for i, b := range trend {
		sexual[i] = float64(b.Sexual)
		nonSexual[i] = float64(b.NonSexual)
	}
	width := 0
	if opts.Width > 0 {
		width = PlotWidthFor(opts.Width)
	}
	return PlotSeries(w, "", []Series{
		{Name: "Seksual", Values: sexual},
		{Name: "Non-seksual", Values: nonSexual},
	}, PlotOptions{
		Width:      width,
		Height:     opts.PlotHeight,
		Color:      opts.Color,
		FirstLabel: trend[0].Label,
		LastLabel:  trend[len(trend)-1].Label,
	})
}

// RenderRows writes rows as an aligned table, cells truncated to cellWidth.
func RenderRows(w io.Writer, rows []model.Incident, cellWidth int) error {
	cols := make([]textColumn, len(Columns))
	for i, c := range Columns {
		cols[i] = textColumn{header: c.Title(), right: c.Numeric(), max: cellWidth}
	}
	t := newTextTable(cols...)
	for _, row := range rows {
		cells := make([]string, len(Columns))
		for i, c := range Columns {
			cells[i] = c.Cell(row)
		}
		t.add(cells...)
	}
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
