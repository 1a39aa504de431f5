// Package model defines shared data structures.
package model

import "time"

// Incident is one parsed incident record. Nil numeric fields are absent.
type Incident struct {
	ID              string
	IncidentDate    string
	Year            *int
	AcademicYear    string
	Semester        string
	Province        string
	Latitude        *float64
	Longitude       *float64
	Sector          string
	MajorCategory   string
	IncidentType    string
	Location        string
	PerpetratorRole string
	Severity        *float64
	CaseStatus      string
	ResponseHours   *float64
	ResolutionDays  *float64
	Notes           string

	// Extra holds trimmed values of columns outside the known schema, keyed by
	// lower-cased header.
	Extra map[string]string
}

// SeverityValue returns the severity when it lies within [1,5].
func (r Incident) SeverityValue() (float64, bool) {
	if r.Severity == nil {
		return 0, false
	}
	s := *r.Severity
	if s < 1 || s > 5 {
		return 0, false
	}
	return s, true
}

// FilterState fully determines the visible subset of incidents.
type FilterState struct {
	Sector      []string
	Province    []string
	Year        []int
	Category    []string
	Status      []string
	SeverityMin int
	SeverityMax int
	Search      string
}

// FilterPatch is a partial filter update. Nil fields keep the current value.
type FilterPatch struct {
	Sector      *[]string
	Province    *[]string
	Year        *[]int
	Category    *[]string
	Status      *[]string
	SeverityMin *int
	SeverityMax *int
	Search      *string
}

// DashboardConfig defines dashboard settings.
type DashboardConfig struct {
	Source     string
	PageSize   int
	Debounce   time.Duration
	PlotHeight int
	Watch      bool
	ExportPath string
}

// SummaryConfig defines output options for the summary command.
type SummaryConfig struct {
	Source string
	Format string
	Filter FilterState
}

// ExportConfig defines options for the export command.
type ExportConfig struct {
	Source string
	Path   string
	Filter FilterState
}

// LoadRecord captures one dataset load attempt.
type LoadRecord struct {
	ID           string
	Source       string
	StartedAt    time.Time
	FinishedAt   time.Time
	RowCount     int
	WarningCount int
	Error        string
	// ExportCount is filled by history queries.
	ExportCount int
}

// ExportRecord captures one CSV export.
type ExportRecord struct {
	ID        string
	LoadID    string
	Path      string
	RowCount  int
	CreatedAt time.Time
}
