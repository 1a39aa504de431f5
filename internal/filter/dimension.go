package filter

import (
	"fmt"

	"github.com/verte-zerg/insidash/internal/model"
)

// Dimension is a multi-select filter over one row field. An empty selection
// places no constraint on rows.
type Dimension[T comparable] struct {
	Name  string
	Label string

	get   func(model.FilterState) []T
	patch func([]T) model.FilterPatch
	value func(model.Incident) (T, bool)
}

// Sector filters on the education sector.
var Sector = Dimension[string]{
	Name:  "sector",
	Label: "Sektor",
	get:   func(f model.FilterState) []string { return f.Sector },
	patch: func(v []string) model.FilterPatch { return model.FilterPatch{Sector: &v} },
	value: func(r model.Incident) (string, bool) { return r.Sector, true },
}

// Province filters on the province name.
var Province = Dimension[string]{
	Name:  "province",
	Label: "Provinsi",
	get:   func(f model.FilterState) []string { return f.Province },
	patch: func(v []string) model.FilterPatch { return model.FilterPatch{Province: &v} },
	value: func(r model.Incident) (string, bool) { return r.Province, true },
}

// Year filters on the incident year. Rows without a year never match an
// active selection.
var Year = Dimension[int]{
	Name:  "year",
	Label: "Tahun",
	get:   func(f model.FilterState) []int { return f.Year },
	patch: func(v []int) model.FilterPatch { return model.FilterPatch{Year: &v} },
	value: func(r model.Incident) (int, bool) {
		if r.Year == nil {
			return 0, false
		}
		return *r.Year, true
	},
}

// Category filters on the major category. Its chips show the bare value.
var Category = Dimension[string]{
	Name:  "category",
	get:   func(f model.FilterState) []string { return f.Category },
	patch: func(v []string) model.FilterPatch { return model.FilterPatch{Category: &v} },
	value: func(r model.Incident) (string, bool) { return r.MajorCategory, true },
}

// Status filters on the case status.
var Status = Dimension[string]{
	Name:  "status",
	Label: "Status",
	get:   func(f model.FilterState) []string { return f.Status },
	patch: func(v []string) model.FilterPatch { return model.FilterPatch{Status: &v} },
	value: func(r model.Incident) (string, bool) { return r.CaseStatus, true },
}

// Selected returns a copy of the current selection.
func (d Dimension[T]) Selected(f model.FilterState) []T {
	return cloneSlice(d.get(f))
}

// Has reports whether v is selected.
func (d Dimension[T]) Has(f model.FilterState, v T) bool {
	return contains(d.get(f), v)
}

// Toggle removes v when selected and appends it otherwise.
func (d Dimension[T]) Toggle(f model.FilterState, v T) model.FilterState {
	cur := d.get(f)
	next := make([]T, 0, len(cur)+1)
	found := false
	for _, c := range cur {
		if c == v {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		next = append(next, v)
	}
	return Merge(f, d.patch(next))
}

// SelectAll selects every option.
func (d Dimension[T]) SelectAll(f model.FilterState, options []T) model.FilterState {
	return Merge(f, d.patch(dedupe(options)))
}

// Clear empties the selection.
func (d Dimension[T]) Clear(f model.FilterState) model.FilterState {
	return Merge(f, d.patch([]T{}))
}

// IsAllSelected reports whether every option is selected.
func (d Dimension[T]) IsAllSelected(f model.FilterState, options []T) bool {
	if len(options) == 0 {
		return false
	}
	sel := d.get(f)
	for _, o := range options {
		if !contains(sel, o) {
			return false
		}
	}
	return true
}

// Match reports whether row satisfies this dimension.
func (d Dimension[T]) Match(f model.FilterState, row model.Incident) bool {
	sel := d.get(f)
	if len(sel) == 0 {
		return true
	}
	v, ok := d.value(row)
	if !ok {
		return false
	}
	return contains(sel, v)
}

func (d Dimension[T]) chips(f model.FilterState) []Chip {
	sel := d.get(f)
	out := make([]Chip, 0, len(sel))
	for _, v := range sel {
		label := fmt.Sprint(v)
		if d.Label != "" {
			label = d.Label + ": " + label
		}
		rest := make([]T, 0, len(sel)-1)
		for _, other := range sel {
			if other != v {
				rest = append(rest, other)
			}
		}
		out = append(out, Chip{Label: label, Remove: d.patch(rest)})
	}
	return out
}

func contains[T comparable](values []T, v T) bool {
	for _, c := range values {
		if c == v {
			return true
		}
	}
	return false
}

func dedupe[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
