package stats

import (
	"math"
	"testing"

	"github.com/verte-zerg/insidash/internal/model"
)

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func TestClassify(t *testing.T) {
	cases := map[string]Class{
		"Kekerasan seksual":  Sexual,
		" KEKERASAN-SEKSUAL": Sexual,
		"seksual":            Sexual,
		"Non-seksual":        NonSexual,
		"Perundungan":        Unclassified,
		"":                   Unclassified,
	}
	for in, want := range cases {
		if got := Classify(in); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMonthlyTrendCountsUnclassifiedAsNonSexual(t *testing.T) {
	rows := []model.Incident{
		{ID: "a", IncidentDate: "2024-03-01", MajorCategory: "Kekerasan seksual"},
		{ID: "b", IncidentDate: "2024-03-15", MajorCategory: ""},
	}
	trend := MonthlyTrend(rows)
	if len(trend) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(trend))
	}
	b := trend[0]
	if b.Key != "2024-03" || b.Label != "Mar 2024" {
		t.Fatalf("unexpected bucket key %q label %q", b.Key, b.Label)
	}
	if b.Sexual != 1 || b.NonSexual != 1 {
		t.Fatalf("expected 1/1, got %d/%d", b.Sexual, b.NonSexual)
	}
}

func TestMonthlyTrendOrderAndSkips(t *testing.T) {
	rows := []model.Incident{
		{IncidentDate: "2024-05-02"},
		{IncidentDate: "bukan tanggal"},
		{IncidentDate: "2023-12-31"},
		{IncidentDate: "2024-05-20", MajorCategory: "Seksual"},
	}
	trend := MonthlyTrend(rows)
	if len(trend) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(trend))
	}
	if trend[0].Key != "2023-12" || trend[1].Key != "2024-05" {
		t.Fatalf("unexpected order %v", trend)
	}
	if trend[1].Total() != 2 || trend[1].Sexual != 1 {
		t.Fatalf("unexpected bucket %+v", trend[1])
	}
	var total int
	for _, b := range trend {
		total += b.Total()
	}
	if total != 3 {
		t.Fatalf("expected bucket totals to match dated rows, got %d", total)
	}
}

func TestCompletionAndSexualShare(t *testing.T) {
	rows := []model.Incident{
		{CaseStatus: "Selesai", MajorCategory: "Kekerasan seksual"},
		{CaseStatus: " selesai ", MajorCategory: "Perundungan"},
		{CaseStatus: "Proses"},
		{},
	}
	if c := Completion(rows); c.Part != 2 || c.Total != 4 || c.Percent() != "50.0%" {
		t.Fatalf("unexpected completion %+v %s", c, c.Percent())
	}
	if s := SexualShare(rows); s.Part != 1 || s.Percent() != "25.0%" {
		t.Fatalf("unexpected sexual share %+v", s)
	}
	if got := (Ratio{}).Percent(); got != "0%" {
		t.Fatalf("expected 0%% for empty ratio, got %q", got)
	}
}

func TestAverageResponse(t *testing.T) {
	rows := []model.Incident{
		{ResponseHours: floatPtr(2)},
		{ResponseHours: floatPtr(4)},
		{ResponseHours: floatPtr(math.NaN())},
		{},
	}
	avg, ok := AverageResponse(rows)
	if !ok || avg != 3 {
		t.Fatalf("expected 3, got %v %v", avg, ok)
	}
	if _, ok := AverageResponse([]model.Incident{{}}); ok {
		t.Fatalf("expected no average without values")
	}
}

func TestSeverityHistogram(t *testing.T) {
	rows := []model.Incident{
		{Severity: floatPtr(1)},
		{Severity: floatPtr(3)},
		{Severity: floatPtr(3.4)},
		{Severity: floatPtr(5)},
		{Severity: floatPtr(7)},
		{},
	}
	hist := SeverityHistogram(rows)
	want := [5]int{1, 0, 2, 0, 1}
	if hist != want {
		t.Fatalf("expected %v, got %v", want, hist)
	}
}

func TestDistribution(t *testing.T) {
	rows := []model.Incident{
		{Sector: "SMA"}, {Sector: "SD"}, {Sector: "SMA"}, {Sector: ""},
	}
	groups := SectorDistribution(rows)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Label != "SMA" || groups[0].Count != 2 || groups[0].Share != 0.5 {
		t.Fatalf("unexpected first group %+v", groups[0])
	}
	if groups[1].Label != "SD" || groups[2].Label != NotRecorded {
		t.Fatalf("unexpected tie order %v", groups)
	}
}

func TestStatusCompositionFoldsSmallGroups(t *testing.T) {
	var rows []model.Incident
	for i := 0; i < 40; i++ {
		rows = append(rows, model.Incident{CaseStatus: "Selesai"})
	}
	rows = append(rows, model.Incident{CaseStatus: "Banding"})
	groups := StatusComposition(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", groups)
	}
	if groups[1].Label != OtherLabel || groups[1].Count != 1 {
		t.Fatalf("unexpected folded group %+v", groups[1])
	}
}

func TestScatter(t *testing.T) {
	rows := []model.Incident{
		{ID: "a", IncidentType: "Perundungan", ResponseHours: floatPtr(10), ResolutionDays: floatPtr(2)},
		{ID: "b", ResponseHours: floatPtr(19), ResolutionDays: floatPtr(4)},
		{ID: "c", ResponseHours: floatPtr(5)},
	}
	s := Scatter(rows)
	if len(s.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(s.Points))
	}
	if s.Points[1].Label != "b" {
		t.Fatalf("expected id fallback label, got %q", s.Points[1].Label)
	}
	if s.MeanResponse != 14.5 || s.MeanResolution != 3 {
		t.Fatalf("unexpected means %v %v", s.MeanResponse, s.MeanResolution)
	}
	if s.MaxResponse != 20 || s.MaxResolution != 5 {
		t.Fatalf("unexpected maxima %v %v", s.MaxResponse, s.MaxResolution)
	}
}

func TestCoverageAndLastUpdated(t *testing.T) {
	if got := Coverage(3, 0); got != 0 {
		t.Fatalf("expected 0 coverage, got %v", got)
	}
	if got := Coverage(5, 4); got != 1 {
		t.Fatalf("expected clamped coverage, got %v", got)
	}
	rows := []model.Incident{
		{IncidentDate: "2024-01-05"},
		{IncidentDate: "2024-02-10T08:00:00"},
		{IncidentDate: "kosong"},
	}
	if got := LastUpdated(rows); got != "2024-02-10" {
		t.Fatalf("unexpected last updated %q", got)
	}
	if got := LastUpdated(nil); got != "" {
		t.Fatalf("expected empty last updated, got %q", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{2, 2}); got != "++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
}
