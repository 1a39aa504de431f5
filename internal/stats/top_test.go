package stats

import "testing"

func TestTopGroupsFoldsRemainder(t *testing.T) {
	groups := []Group{
		{Label: "Aceh", Count: 5, Share: 0.5},
		{Label: "Bali", Count: 3, Share: 0.3},
		{Label: "Papua", Count: 1, Share: 0.1},
		{Label: "Riau", Count: 1, Share: 0.1},
	}
	top := TopGroups(groups, 2)
	if len(top) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(top))
	}
	if top[0].Label != "Aceh" || top[1].Label != "Bali" {
		t.Fatalf("unexpected order: %v", top)
	}
	if top[2].Label != OtherLabel || top[2].Count != 2 {
		t.Fatalf("unexpected remainder: %+v", top[2])
	}
}

func TestTopGroupsShortList(t *testing.T) {
	groups := []Group{{Label: "Aceh", Count: 1}}
	top := TopGroups(groups, 5)
	if len(top) != 1 || top[0].Label != "Aceh" {
		t.Fatalf("unexpected groups: %v", top)
	}
	top[0].Label = "x"
	if groups[0].Label != "Aceh" {
		t.Fatalf("expected a copy")
	}
}
