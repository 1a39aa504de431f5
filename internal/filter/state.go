// Package filter holds filter state updates and row visibility rules.
package filter

import (
	"strings"

	"github.com/verte-zerg/insidash/internal/model"
)

const (
	// SeverityFloor is the lowest severity level.
	SeverityFloor = 1
	// SeverityCeil is the highest severity level.
	SeverityCeil = 5
)

// Default returns the unconstrained filter state.
func Default() model.FilterState {
	return model.FilterState{
		Sector:      []string{},
		Province:    []string{},
		Year:        []int{},
		Category:    []string{},
		Status:      []string{},
		SeverityMin: SeverityFloor,
		SeverityMax: SeverityCeil,
		Search:      "",
	}
}

// Merge overwrites the fields present in patch and re-establishes the severity
// invariant. When the range crosses, the handle moved by patch wins.
func Merge(current model.FilterState, patch model.FilterPatch) model.FilterState {
	next := Clone(current)
	if patch.Sector != nil {
		next.Sector = cloneSlice(*patch.Sector)
	}
	if patch.Province != nil {
		next.Province = cloneSlice(*patch.Province)
	}
	if patch.Year != nil {
		next.Year = cloneSlice(*patch.Year)
	}
	if patch.Category != nil {
		next.Category = cloneSlice(*patch.Category)
	}
	if patch.Status != nil {
		next.Status = cloneSlice(*patch.Status)
	}
	if patch.SeverityMin != nil {
		next.SeverityMin = *patch.SeverityMin
	}
	if patch.SeverityMax != nil {
		next.SeverityMax = *patch.SeverityMax
	}
	if patch.Search != nil {
		next.Search = *patch.Search
	}
	next.Search = strings.TrimSpace(next.Search)

	next.SeverityMin = clamp(next.SeverityMin, SeverityFloor, SeverityCeil)
	next.SeverityMax = clamp(next.SeverityMax, SeverityFloor, SeverityCeil)
	if next.SeverityMin > next.SeverityMax {
		switch {
		case patch.SeverityMin != nil:
			next.SeverityMax = next.SeverityMin
		case patch.SeverityMax != nil:
			next.SeverityMin = next.SeverityMax
		default:
			next.SeverityMin, next.SeverityMax = next.SeverityMax, next.SeverityMin
		}
	}
	return next
}

// Clone returns a deep copy of f.
func Clone(f model.FilterState) model.FilterState {
	out := f
	out.Sector = cloneSlice(f.Sector)
	out.Province = cloneSlice(f.Province)
	out.Year = cloneSlice(f.Year)
	out.Category = cloneSlice(f.Category)
	out.Status = cloneSlice(f.Status)
	return out
}

// SeverityNarrowed reports whether the severity range differs from [1,5].
func SeverityNarrowed(f model.FilterState) bool {
	return f.SeverityMin != SeverityFloor || f.SeverityMax != SeverityCeil
}

// AppliedCount counts active constraints: one per non-empty set dimension,
// one for a narrowed severity range and one for a search term.
func AppliedCount(f model.FilterState) int {
	count := 0
	for _, n := range []int{len(f.Sector), len(f.Province), len(f.Year), len(f.Category), len(f.Status)} {
		if n > 0 {
			count++
		}
	}
	if SeverityNarrowed(f) {
		count++
	}
	if strings.TrimSpace(f.Search) != "" {
		count++
	}
	return count
}

// IsDefault reports whether f places no constraint on rows.
func IsDefault(f model.FilterState) bool {
	return AppliedCount(f) == 0
}

// WithSearch returns a patch that sets the search text.
func WithSearch(q string) model.FilterPatch {
	return model.FilterPatch{Search: &q}
}

// WithSeverityMin returns a patch that moves the lower severity handle.
func WithSeverityMin(level int) model.FilterPatch {
	return model.FilterPatch{SeverityMin: &level}
}

// WithSeverityMax returns a patch that moves the upper severity handle.
func WithSeverityMax(level int) model.FilterPatch {
	return model.FilterPatch{SeverityMax: &level}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
