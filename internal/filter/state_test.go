package filter

import (
	"testing"

	"github.com/verte-zerg/insidash/internal/model"
)

func TestMergeKeepsAbsentFields(t *testing.T) {
	cur := Sector.Toggle(Default(), "SD")
	q := "  kampus "
	next := Merge(cur, model.FilterPatch{Search: &q})
	if len(next.Sector) != 1 || next.Sector[0] != "SD" {
		t.Fatalf("expected sector kept, got %v", next.Sector)
	}
	if next.Search != "kampus" {
		t.Fatalf("expected trimmed search, got %q", next.Search)
	}
}

func TestMergeDoesNotAliasPatch(t *testing.T) {
	sel := []string{"Bali"}
	next := Merge(Default(), model.FilterPatch{Province: &sel})
	sel[0] = "Aceh"
	if next.Province[0] != "Bali" {
		t.Fatalf("merge result aliases patch slice")
	}
}

func TestMergeSeverityClamp(t *testing.T) {
	f := Merge(Default(), WithSeverityMin(4))
	f = Merge(f, WithSeverityMax(2))
	if f.SeverityMin != 2 || f.SeverityMax != 2 {
		t.Fatalf("expected moved max handle to win, got %d-%d", f.SeverityMin, f.SeverityMax)
	}
	f = Merge(f, WithSeverityMin(9))
	if f.SeverityMin != 5 || f.SeverityMax != 5 {
		t.Fatalf("expected min clamped to 5 and max raised, got %d-%d", f.SeverityMin, f.SeverityMax)
	}
	f = Merge(f, WithSeverityMax(-3))
	if f.SeverityMin != 1 || f.SeverityMax != 1 {
		t.Fatalf("expected max clamped to 1 and min lowered, got %d-%d", f.SeverityMin, f.SeverityMax)
	}
}

func TestMergeSeverityInvariantOverSequence(t *testing.T) {
	f := Default()
	moves := []int{3, -1, 7, 2, 5, 0, 4, 6, 1}
	for i, v := range moves {
		if i%2 == 0 {
			f = Merge(f, WithSeverityMin(v))
		} else {
			f = Merge(f, WithSeverityMax(v))
		}
		if f.SeverityMin > f.SeverityMax || f.SeverityMin < 1 || f.SeverityMax > 5 {
			t.Fatalf("invariant broken after move %d: %d-%d", i, f.SeverityMin, f.SeverityMax)
		}
	}
}

func TestAppliedCount(t *testing.T) {
	f := Default()
	if AppliedCount(f) != 0 || !IsDefault(f) {
		t.Fatalf("default filters must have no applied constraints")
	}
	f = Sector.SelectAll(f, []string{"SD", "SMP", "SMA"})
	f = Year.Toggle(f, 2023)
	f = Merge(f, WithSeverityMin(2))
	f = Merge(f, WithSearch("kampus"))
	if got := AppliedCount(f); got != 4 {
		t.Fatalf("expected 4 applied filters, got %d", got)
	}
}

func TestChips(t *testing.T) {
	f := Sector.Toggle(Default(), "SD")
	f = Category.Toggle(f, "Kekerasan seksual")
	f = Year.Toggle(f, 2024)
	f = Merge(f, WithSeverityMax(3))
	f = Merge(f, WithSearch("guru"))
	chips := Chips(f)
	want := []string{"Sektor: SD", "Tahun: 2024", "Kekerasan seksual", "Severity 1-3", "Cari: guru"}
	if len(chips) != len(want) {
		t.Fatalf("expected %d chips, got %d", len(want), len(chips))
	}
	for i, c := range chips {
		if c.Label != want[i] {
			t.Fatalf("chip %d: expected %q, got %q", i, want[i], c.Label)
		}
	}
	f = Merge(f, chips[0].Remove)
	if len(f.Sector) != 0 {
		t.Fatalf("expected sector chip removal, got %v", f.Sector)
	}
	f = Merge(f, chips[3].Remove)
	if SeverityNarrowed(f) {
		t.Fatalf("expected severity reset")
	}
}
