package filter

import (
	"fmt"

	"github.com/verte-zerg/insidash/internal/model"
)

// Chip is one active constraint with the patch that lifts it.
type Chip struct {
	Label  string
	Remove model.FilterPatch
}

// Chips lists active constraints in display order.
func Chips(f model.FilterState) []Chip {
	var out []Chip
	out = append(out, Sector.chips(f)...)
	out = append(out, Province.chips(f)...)
	out = append(out, Year.chips(f)...)
	out = append(out, Category.chips(f)...)
	out = append(out, Status.chips(f)...)
	if SeverityNarrowed(f) {
		lo, hi := SeverityFloor, SeverityCeil
		out = append(out, Chip{
			Label:  fmt.Sprintf("Severity %d-%d", f.SeverityMin, f.SeverityMax),
			Remove: model.FilterPatch{SeverityMin: &lo, SeverityMax: &hi},
		})
	}
	if f.Search != "" {
		empty := ""
		out = append(out, Chip{Label: "Cari: " + f.Search, Remove: model.FilterPatch{Search: &empty}})
	}
	return out
}
