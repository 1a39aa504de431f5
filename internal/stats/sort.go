package stats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/insidash/internal/dataset"
	"github.com/verte-zerg/insidash/internal/model"
)

// Column identifies a table column.
type Column int

const (
	ColDate Column = iota
	ColCategory
	ColType
	ColSector
	ColProvince
	ColSeverity
	ColStatus
	ColResponse
	ColResolution
)

// Columns lists table columns in display order.
var Columns = []Column{ColDate, ColCategory, ColType, ColSector, ColProvince, ColSeverity, ColStatus, ColResponse, ColResolution}

// Title returns the column header.
func (c Column) Title() string {
	if int(c) < 0 || int(c) >= len(dataset.ExportHeaders) {
		return ""
	}
	return dataset.ExportHeaders[c]
}

// Numeric reports whether the column holds numbers.
func (c Column) Numeric() bool {
	return c == ColSeverity || c == ColResponse || c == ColResolution
}

// Cell returns the display value of row in column c. An empty incident type
// shows the row id instead.
func (c Column) Cell(row model.Incident) string {
	if c == ColType && row.IncidentType == "" {
		return row.ID
	}
	return dataset.ExportRecord(row)[c]
}

type sortKey struct {
	present bool
	num     float64
	str     string
}

func keyFor(row model.Incident, c Column) sortKey {
	switch c {
	case ColDate:
		t, ok := dataset.ParseDate(row.IncidentDate)
		if !ok {
			return sortKey{}
		}
		return sortKey{present: true, num: float64(t.Unix())}
	case ColSeverity:
		return numKey(row.Severity)
	case ColResponse:
		return numKey(row.ResponseHours)
	case ColResolution:
		return numKey(row.ResolutionDays)
	}
	s := strings.ToLower(c.Cell(row))
	return sortKey{present: s != "", str: s}
}

func numKey(v *float64) sortKey {
	if v == nil {
		return sortKey{}
	}
	return sortKey{present: true, num: *v}
}

// SortRows returns a sorted copy of rows. Missing values sort last in either
// direction; ties keep their original order.
func SortRows(rows []model.Incident, c Column, desc bool) []model.Incident {
	out := append([]model.Incident(nil), rows...)
	keys := make([]sortKey, len(out))
	order := make([]int, len(out))
	for i := range out {
		order[i] = i
		keys[i] = keyFor(out[i], c)
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := keys[order[i]], keys[order[j]]
		if a.present != b.present {
			return a.present
		}
		if !a.present {
			return false
		}
		var less, greater bool
		if c == ColDate || c.Numeric() {
			less, greater = a.num < b.num, a.num > b.num
		} else {
			less, greater = a.str < b.str, a.str > b.str
		}
		if desc {
			return greater
		}
		return less
	})
	sorted := make([]model.Incident, len(out))
	for i, idx := range order {
		sorted[i] = out[idx]
	}
	return sorted
}

// Page returns the rows of page (0-based) together with the page count. The
// page index is clamped into range.
func Page(rows []model.Incident, page, size int) (items []model.Incident, current, pages int) {
	if size <= 0 {
		size = len(rows)
		if size == 0 {
			size = 1
		}
	}
	pages = (len(rows) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= pages {
		page = pages - 1
	}
	start := page * size
	end := start + size
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], page, pages
}

// ParseColumn maps a header title or short name onto a Column.
func ParseColumn(name string) (Column, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < len(Columns) {
		return Column(n), true
	}
	short := map[string]Column{
		"date":       ColDate,
		"category":   ColCategory,
		"type":       ColType,
		"sector":     ColSector,
		"province":   ColProvince,
		"severity":   ColSeverity,
		"status":     ColStatus,
		"response":   ColResponse,
		"resolution": ColResolution,
	}
	if c, ok := short[name]; ok {
		return c, true
	}
	for _, c := range Columns {
		if strings.ToLower(c.Title()) == name {
			return c, true
		}
	}
	return 0, false
}
