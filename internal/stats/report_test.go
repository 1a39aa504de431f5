package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/insidash/internal/filter"
	"github.com/verte-zerg/insidash/internal/model"
)

func reportRows() []model.Incident {
	return []model.Incident{
		{ID: "1", IncidentDate: "2024-03-01", Year: intPtr(2024), Province: "Aceh", Sector: "SMA", MajorCategory: "Kekerasan seksual", IncidentType: "Pelecehan", Severity: floatPtr(4), CaseStatus: "Selesai", ResponseHours: floatPtr(6), ResolutionDays: floatPtr(3)},
		{ID: "2", IncidentDate: "2024-03-15", Year: intPtr(2024), Province: "Bali", Sector: "SD", MajorCategory: "Perundungan", IncidentType: "Perundungan verbal", Severity: floatPtr(2), CaseStatus: "Proses", ResponseHours: floatPtr(10)},
		{ID: "3", IncidentDate: "2024-06-20", Year: intPtr(2024), Province: "Aceh", Sector: "SMA", MajorCategory: "Kekerasan fisik", IncidentType: "Pemukulan", CaseStatus: "Selesai"},
	}
}

func TestBuildReport(t *testing.T) {
	rows := reportRows()
	f := filter.Merge(filter.Default(), model.FilterPatch{Province: &[]string{"Aceh"}})
	report := BuildReport(rows, f)

	if len(report.Visible) != 2 || report.RawCount != 3 {
		t.Fatalf("unexpected counts visible=%d raw=%d", len(report.Visible), report.RawCount)
	}
	if report.AppliedFilters != 1 {
		t.Fatalf("expected 1 applied filter, got %d", report.AppliedFilters)
	}
	if report.LastUpdated != "2024-06-20" {
		t.Fatalf("unexpected last updated %q", report.LastUpdated)
	}
	if report.Completion.Part != 2 || report.Sexual.Part != 1 {
		t.Fatalf("unexpected ratios %+v %+v", report.Completion, report.Sexual)
	}
	if !report.HasResponse || report.AvgResponse != 6 {
		t.Fatalf("unexpected response %v %v", report.AvgResponse, report.HasResponse)
	}
	if len(report.Trend) != 2 || report.Trend[0].Sexual != 1 || report.Trend[1].NonSexual != 1 {
		t.Fatalf("unexpected trend %+v", report.Trend)
	}
	if len(report.Points) != 2 {
		t.Fatalf("expected centroid points for both rows, got %d", len(report.Points))
	}
	if report.Coverage < 0.66 || report.Coverage > 0.67 {
		t.Fatalf("unexpected coverage %v", report.Coverage)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil, filter.Default())
	if len(report.Visible) != 0 || report.Coverage != 0 || report.HasResponse {
		t.Fatalf("unexpected empty report %+v", report)
	}
	s := report.Summary()
	if s.AvgResponse != nil || s.CompletedPct != "0%" {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestReportSummary(t *testing.T) {
	s := BuildReport(reportRows(), filter.Default()).Summary()
	if s.VisibleRows != 3 || s.AppliedFilters != 0 {
		t.Fatalf("unexpected summary counts %+v", s)
	}
	if s.AvgResponse == nil || *s.AvgResponse != 8 {
		t.Fatalf("unexpected average %v", s.AvgResponse)
	}
	if len(s.Trend) != 2 || s.Trend[0].Month != "2024-03" {
		t.Fatalf("unexpected trend %+v", s.Trend)
	}
	if s.Severity != ([5]int{0, 1, 0, 1, 0}) {
		t.Fatalf("unexpected histogram %v", s.Severity)
	}
}

func TestRenderSummary(t *testing.T) {
	rows := reportRows()
	f := filter.Merge(filter.Default(), model.FilterPatch{Sector: &[]string{"SMA"}})
	var buf bytes.Buffer
	if err := RenderSummary(&buf, BuildReport(rows, f), RenderOptions{Width: 60, PlotHeight: 4}); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Insiden: 2 dari 3 baris",
		"Filter (1): Sektor: SMA",
		"Pembaruan terakhir: 2024-06-20",
		"Kasus selesai",
		"Provinsi",
		"Status kasus",
		"Tren bulanan",
		"Legenda:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderRows(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderRows(&buf, reportRows()[:1], 12); err != nil {
		t.Fatalf("RenderRows failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Tanggal") || !strings.HasPrefix(lines[1], "2024-03-01") {
		t.Fatalf("unexpected table %q", buf.String())
	}
}
