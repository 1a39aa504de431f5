package filter

import (
	"strings"

	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/textnorm"
)

// IsVisible reports whether row passes every active constraint in f.
func IsVisible(row model.Incident, f model.FilterState) bool {
	return newMatcher(f).match(row)
}

// Apply returns the rows visible under f, in their original order.
func Apply(rows []model.Incident, f model.FilterState) []model.Incident {
	m := newMatcher(f)
	out := make([]model.Incident, 0, len(rows))
	for _, row := range rows {
		if m.match(row) {
			out = append(out, row)
		}
	}
	return out
}

type matcher struct {
	f        model.FilterState
	narrowed bool
	needle   string
}

func newMatcher(f model.FilterState) matcher {
	return matcher{
		f:        f,
		narrowed: SeverityNarrowed(f),
		needle:   textnorm.Fold(f.Search),
	}
}

func (m matcher) match(row model.Incident) bool {
	if !Sector.Match(m.f, row) ||
		!Province.Match(m.f, row) ||
		!Category.Match(m.f, row) ||
		!Status.Match(m.f, row) ||
		!Year.Match(m.f, row) {
		return false
	}
	if s, ok := row.SeverityValue(); ok {
		if s < float64(m.f.SeverityMin) || s > float64(m.f.SeverityMax) {
			return false
		}
	} else if m.narrowed {
		return false
	}
	if m.needle != "" && !strings.Contains(searchHaystack(row), m.needle) {
		return false
	}
	return true
}

func searchHaystack(row model.Incident) string {
	return textnorm.Fold(row.IncidentType + " " + row.PerpetratorRole + " " + row.Location)
}
