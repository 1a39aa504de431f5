// Package options derives filter choice lists from the full dataset.
package options

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/textnorm"
)

// Field names a string column that options can be derived from.
type Field string

const (
	FieldSector       Field = "sector"
	FieldProvince     Field = "province"
	FieldStatus       Field = "status"
	FieldCategory     Field = "category"
	FieldIncidentType Field = "type"
)

// Fixed category choices, offered whether or not the dataset contains them.
const (
	CategorySexual    = "Kekerasan seksual"
	CategoryNonSexual = "Non-seksual"
)

// Set bundles every option list used by the filter panel.
type Set struct {
	Sector   []string
	Province []string
	Status   []string
	Category []string
	Years    []int
}

// Build derives all option lists from rows. Pass the unfiltered row set so
// choices stay stable while other filters change.
func Build(rows []model.Incident) Set {
	return Set{
		Sector:   For(rows, FieldSector),
		Province: For(rows, FieldProvince),
		Status:   For(rows, FieldStatus),
		Category: Categories(),
		Years:    Years(rows),
	}
}

// ParseField maps a CLI name onto a Field.
func ParseField(name string) (Field, bool) {
	switch Field(strings.ToLower(strings.TrimSpace(name))) {
	case FieldSector:
		return FieldSector, true
	case FieldProvince:
		return FieldProvince, true
	case FieldStatus:
		return FieldStatus, true
	case FieldCategory:
		return FieldCategory, true
	case FieldIncidentType:
		return FieldIncidentType, true
	}
	return "", false
}

// For returns the distinct non-empty values of field, collated for Indonesian.
func For(rows []model.Incident, field Field) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, row := range rows {
		v := strings.TrimSpace(value(row, field))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	Sort(out)
	return out
}

// Years returns the distinct years present in rows, ascending.
func Years(rows []model.Incident) []int {
	seen := map[int]struct{}{}
	out := []int{}
	for _, row := range rows {
		if row.Year == nil {
			continue
		}
		if _, ok := seen[*row.Year]; ok {
			continue
		}
		seen[*row.Year] = struct{}{}
		out = append(out, *row.Year)
	}
	sort.Ints(out)
	return out
}

// Categories returns the fixed category choices.
func Categories() []string {
	return []string{CategorySexual, CategoryNonSexual}
}

// Sort orders values by base letters, ignoring case and diacritics. Values
// that collate equal fall back to byte order.
func Sort(values []string) {
	c := collate.New(language.Indonesian, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(values, func(i, j int) bool {
		if r := c.CompareString(values[i], values[j]); r != 0 {
			return r < 0
		}
		return values[i] < values[j]
	})
}

// Search narrows an option list to entries containing query, ignoring case
// and diacritics.
func Search(values []string, query string) []string {
	if textnorm.Fold(query) == "" {
		return append([]string(nil), values...)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if textnorm.Contains(v, query) {
			out = append(out, v)
		}
	}
	return out
}

func value(row model.Incident, field Field) string {
	switch field {
	case FieldSector:
		return row.Sector
	case FieldProvince:
		return row.Province
	case FieldStatus:
		return row.CaseStatus
	case FieldCategory:
		return row.MajorCategory
	case FieldIncidentType:
		return row.IncidentType
	}
	return ""
}
