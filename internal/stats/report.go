package stats

import (
	"github.com/verte-zerg/insidash/internal/filter"
	"github.com/verte-zerg/insidash/internal/geo"
	"github.com/verte-zerg/insidash/internal/model"
)

// Report contains precomputed data for rendering one filter view.
type Report struct {
	Filter         model.FilterState
	Visible        []model.Incident
	RawCount       int
	AppliedFilters int
	LastUpdated    string

	Completion  Ratio
	Sexual      Ratio
	AvgResponse float64
	HasResponse bool
	Coverage    float64
	Severity    [5]int
	Sectors     []Group
	Provinces   []Group
	Statuses    []Group
	Trend       []MonthBucket
	Scatter     ScatterSummary
	Points      []geo.Point
	Bounds      geo.Bounds
}

// BuildReport filters all rows with f and derives every aggregate from the
// visible subset. LastUpdated always reflects the full row set.
func BuildReport(all []model.Incident, f model.FilterState) Report {
	visible := filter.Apply(all, f)
	avg, ok := AverageResponse(visible)
	points := geo.Points(visible)
	return Report{
		Filter:         filter.Clone(f),
		Visible:        visible,
		RawCount:       len(all),
		AppliedFilters: filter.AppliedCount(f),
		LastUpdated:    LastUpdated(all),
		Completion:     Completion(visible),
		Sexual:         SexualShare(visible),
		AvgResponse:    avg,
		HasResponse:    ok,
		Coverage:       Coverage(len(visible), len(all)),
		Severity:       SeverityHistogram(visible),
		Sectors:        SectorDistribution(visible),
		Provinces:      ProvinceDistribution(visible),
		Statuses:       StatusComposition(visible),
		Trend:          MonthlyTrend(visible),
		Scatter:        Scatter(visible),
		Points:         points,
		Bounds:         geo.ComputeBounds(points),
	}
}

// Summary is the serializable form of a report.
type Summary struct {
	VisibleRows    int            `json:"visibleRows" yaml:"visibleRows"`
	RawRowCount    int            `json:"rawRowCount" yaml:"rawRowCount"`
	AppliedFilters int            `json:"appliedFilterCount" yaml:"appliedFilterCount"`
	LastUpdated    string         `json:"lastUpdatedDate,omitempty" yaml:"lastUpdatedDate,omitempty"`
	Completed      int            `json:"completed" yaml:"completed"`
	CompletedPct   string         `json:"completedPct" yaml:"completedPct"`
	Sexual         int            `json:"sexual" yaml:"sexual"`
	SexualPct      string         `json:"sexualPct" yaml:"sexualPct"`
	AvgResponse    *float64       `json:"avgResponseHours" yaml:"avgResponseHours"`
	Coverage       float64        `json:"coverage" yaml:"coverage"`
	Severity       [5]int         `json:"severityHistogram" yaml:"severityHistogram"`
	Sectors        []SummaryGroup `json:"sectors" yaml:"sectors"`
	Provinces      []SummaryGroup `json:"provinces" yaml:"provinces"`
	Statuses       []SummaryGroup `json:"statuses" yaml:"statuses"`
	Trend          []SummaryMonth `json:"trend" yaml:"trend"`
	MeanResponse   float64        `json:"meanResponseHours" yaml:"meanResponseHours"`
	MeanResolution float64        `json:"meanResolutionDays" yaml:"meanResolutionDays"`
	MappedPoints   int            `json:"mappedPoints" yaml:"mappedPoints"`
}

// SummaryGroup is a serializable Group.
type SummaryGroup struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// SummaryMonth is a serializable MonthBucket.
type SummaryMonth struct {
	Month     string `json:"month" yaml:"month"`
	Sexual    int    `json:"sexual" yaml:"sexual"`
	NonSexual int    `json:"nonSexual" yaml:"nonSexual"`
}

// Summary converts r into its serializable form.
func (r Report) Summary() Summary {
	s := Summary{
		VisibleRows:    len(r.Visible),
		RawRowCount:    r.RawCount,
		AppliedFilters: r.AppliedFilters,
		LastUpdated:    r.LastUpdated,
		Completed:      r.Completion.Part,
		CompletedPct:   r.Completion.Percent(),
		Sexual:         r.Sexual.Part,
		SexualPct:      r.Sexual.Percent(),
		Coverage:       r.Coverage,
		Severity:       r.Severity,
		Sectors:        summaryGroups(r.Sectors),
		Provinces:      summaryGroups(r.Provinces),
		Statuses:       summaryGroups(r.Statuses),
		MeanResponse:   r.Scatter.MeanResponse,
		MeanResolution: r.Scatter.MeanResolution,
		MappedPoints:   len(r.Points),
	}
	if r.HasResponse {
		avg := r.AvgResponse
		s.AvgResponse = &avg
	}
	s.Trend = make([]SummaryMonth, len(r.Trend))
	for i, b := range r.Trend {
		s.Trend[i] = SummaryMonth{Month: b.Key, Sexual: b.Sexual, NonSexual: b.NonSexual}
	}
	return s
}

func summaryGroups(groups []Group) []SummaryGroup {
	out := make([]SummaryGroup, len(groups))
	for i, g := range groups {
		out[i] = SummaryGroup{Label: g.Label, Count: g.Count}
	}
	return out
}
