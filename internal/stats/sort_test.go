package stats

import (
	"testing"

	"github.com/verte-zerg/insidash/internal/model"
)

func rowIDs(rows []model.Incident) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func equalIDs(got []model.Incident, want ...string) bool {
	ids := rowIDs(got)
	if len(ids) != len(want) {
		return false
	}
	for i := range ids {
		if ids[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSortRowsNumericMissingLast(t *testing.T) {
	rows := []model.Incident{
		{ID: "a", Severity: floatPtr(3)},
		{ID: "b"},
		{ID: "c", Severity: floatPtr(1)},
		{ID: "d", Severity: floatPtr(5)},
	}
	if got := SortRows(rows, ColSeverity, false); !equalIDs(got, "c", "a", "d", "b") {
		t.Fatalf("unexpected ascending order %v", rowIDs(got))
	}
	if got := SortRows(rows, ColSeverity, true); !equalIDs(got, "d", "a", "c", "b") {
		t.Fatalf("unexpected descending order %v", rowIDs(got))
	}
	if rows[0].ID != "a" || rows[1].ID != "b" {
		t.Fatalf("input mutated: %v", rowIDs(rows))
	}
}

func TestSortRowsDateAndText(t *testing.T) {
	rows := []model.Incident{
		{ID: "a", IncidentDate: "2024-05-01", Province: "bali"},
		{ID: "b", IncidentDate: "2023-01-01", Province: "Aceh"},
		{ID: "c", IncidentDate: "", Province: "Aceh"},
	}
	if got := SortRows(rows, ColDate, false); !equalIDs(got, "b", "a", "c") {
		t.Fatalf("unexpected date order %v", rowIDs(got))
	}
	if got := SortRows(rows, ColProvince, false); !equalIDs(got, "b", "c", "a") {
		t.Fatalf("unexpected stable text order %v", rowIDs(got))
	}
}

func TestPage(t *testing.T) {
	rows := make([]model.Incident, 7)
	items, current, pages := Page(rows, 1, 3)
	if len(items) != 3 || current != 1 || pages != 3 {
		t.Fatalf("unexpected page %d/%d len %d", current, pages, len(items))
	}
	items, current, _ = Page(rows, 9, 3)
	if len(items) != 1 || current != 2 {
		t.Fatalf("expected clamped last page, got %d len %d", current, len(items))
	}
	items, current, pages = Page(nil, 0, 3)
	if len(items) != 0 || current != 0 || pages != 1 {
		t.Fatalf("unexpected empty page %d/%d", current, pages)
	}
}

func TestParseColumn(t *testing.T) {
	cases := map[string]Column{
		"severity":     ColSeverity,
		"Provinsi":     ColProvince,
		"respon (jam)": ColResponse,
		"0":            ColDate,
	}
	for in, want := range cases {
		got, ok := ParseColumn(in)
		if !ok || got != want {
			t.Fatalf("ParseColumn(%q) = %v %v", in, got, ok)
		}
	}
	if _, ok := ParseColumn("bogus"); ok {
		t.Fatalf("expected unknown column")
	}
}

func TestCellShowsIDForEmptyType(t *testing.T) {
	row := model.Incident{ID: "X-1", Province: "Bali"}
	if got := ColType.Cell(row); got != "X-1" {
		t.Fatalf("expected id in type column, got %q", got)
	}
	if got := ColProvince.Cell(row); got != "Bali" {
		t.Fatalf("unexpected province cell %q", got)
	}
	row.IncidentType = "Pemukulan"
	if got := ColType.Cell(row); got != "Pemukulan" {
		t.Fatalf("unexpected type cell %q", got)
	}
}
