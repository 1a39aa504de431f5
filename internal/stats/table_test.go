package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestTextTableAlignsColumns(t *testing.T) {
	tbl := newTextTable(
		textColumn{header: "Provinsi"},
		textColumn{header: "Jumlah", right: true},
		textColumn{header: "Porsi", right: true},
	)
	tbl.add("Aceh", "1.204", "12.5%")
	tbl.add("Jawa Barat", "87", "0.9%")

	lines := tbl.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Provinsi   Jumlah Porsi" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Aceh        1.204 12.5%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Jawa Barat     87  0.9%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if got := tbl.width(); got != displayWidth(lines[0]) {
		t.Fatalf("expected width %d, got %d", displayWidth(lines[0]), got)
	}
}

func TestTextTableTrimsTrailingSpace(t *testing.T) {
	tbl := newTextTable(textColumn{header: "A"}, textColumn{header: "B"})
	tbl.add("panjang")
	if lines := tbl.lines(); lines[1] != "panjang" {
		t.Fatalf("expected trailing padding trimmed, got %q", lines[1])
	}
}

func TestTextTableTruncatesAndPads(t *testing.T) {
	tbl := newTextTable(textColumn{max: 8}, textColumn{min: 6}, textColumn{right: true})
	tbl.add("Kekerasan seksual", "ab", "1")
	tbl.add("Aceh", "", "20")
	lines := tbl.lines()
	if len(lines) != 2 {
		t.Fatalf("expected rows without header, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "Kekeras…") {
		t.Fatalf("unexpected truncation %q", lines[0])
	}
	if lines[0] != "Kekeras… ab      1" || lines[1] != "Aceh            20" {
		t.Fatalf("unexpected padding %q", lines)
	}
}

func TestRenderBars(t *testing.T) {
	var buf bytes.Buffer
	groups := []Group{
		{Label: "SMA", Count: 4, Share: 0.8},
		{Label: "SD", Count: 1, Share: 0.2},
	}
	if err := RenderBars(&buf, "Sektor", groups, 40); err != nil {
		t.Fatalf("RenderBars failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 || lines[0] != "Sektor" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	long := strings.Count(lines[1], barRune)
	short := strings.Count(lines[2], barRune)
	if long <= short || short < 1 {
		t.Fatalf("expected proportional bars, got %d and %d", long, short)
	}
	for _, line := range lines[1:] {
		if displayWidth(line) > 40 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if !strings.HasSuffix(lines[1], "80.0%") {
		t.Fatalf("expected share column, got %q", lines[1])
	}
}

func TestRenderBarsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBars(&buf, "", nil, 40); err != nil {
		t.Fatalf("RenderBars failed: %v", err)
	}
	if buf.String() != "Tidak ada data.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
