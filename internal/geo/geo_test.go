package geo

import (
	"math"
	"testing"

	"github.com/verte-zerg/insidash/internal/model"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestChainPrefersExplicit(t *testing.T) {
	row := model.Incident{
		ID:        "a",
		Province:  "Bali",
		Latitude:  floatPtr(-7.1),
		Longitude: floatPtr(110.2),
		Extra:     map[string]string{"koordinat": "1.0, 2.0"},
	}
	lat, lon, source, ok := DefaultChain().Resolve(row)
	if !ok || lat != -7.1 || lon != 110.2 || source != SourceExplicit {
		t.Fatalf("unexpected resolution: %v %v %s %v", lat, lon, source, ok)
	}
}

func TestExplicitLenientColumns(t *testing.T) {
	row := model.Incident{Extra: map[string]string{"lat": "(-6,214)", "lng": "106.8"}}
	lat, lon, ok := ExplicitResolver{}.Resolve(row)
	if !ok || lat != -6.214 || lon != 106.8 {
		t.Fatalf("unexpected explicit resolution: %v %v %v", lat, lon, ok)
	}
}

func TestCombinedResolver(t *testing.T) {
	cases := map[string][2]float64{
		"-6.2, 106.8":       {-6.2, 106.8},
		"(-6.2;106.8)":      {-6.2, 106.8},
		"-6,25 ; 106,75":    {-6.25, 106.75},
		"-6,2, 106.8":       {-6.2, 106.8},
		"(-6,214, 106,816)": {-6.214, 106.816},
		"-6.2,106.8":        {-6.2, 106.8},
	}
	for raw, want := range cases {
		row := model.Incident{Extra: map[string]string{"koordinat": raw}}
		lat, lon, ok := CombinedResolver{}.Resolve(row)
		if !ok || lat != want[0] || lon != want[1] {
			t.Fatalf("parse %q: got %v %v %v", raw, lat, lon, ok)
		}
	}
	if _, _, ok := (CombinedResolver{}).Resolve(model.Incident{Extra: map[string]string{"coord": "n/a"}}); ok {
		t.Fatalf("expected unparsable combined value")
	}
}

func TestCentroidAliases(t *testing.T) {
	for _, name := range []string{"DKI Jakarta", "Daerah Khusus Ibukota Jakarta", "jakarta"} {
		lat, lon, ok := Centroid(name)
		if !ok || lat != -6.2 || lon != 106.816 {
			t.Fatalf("centroid %q: %v %v %v", name, lat, lon, ok)
		}
	}
	if key := ProvinceKey("D.I. Yogyakarta"); key != "yogyakarta" {
		t.Fatalf("unexpected alias key %q", key)
	}
	if key := ProvinceKey("Kep. Riau"); key != "kepri" {
		t.Fatalf("unexpected alias key %q", key)
	}
	if _, _, ok := Centroid("Atlantis"); ok {
		t.Fatalf("unknown province must not resolve")
	}
}

func TestPointsDropsUnresolved(t *testing.T) {
	rows := []model.Incident{
		{ID: "a", Province: "Bali", IncidentType: "Perundungan"},
		{ID: "b", Province: "Atlantis"},
		{ID: "c", Latitude: floatPtr(120), Longitude: floatPtr(10)},
		{ID: "d", Extra: map[string]string{"coords": "1.5, 120.5"}},
	}
	points := Points(rows)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %+v", points)
	}
	if points[0].Source != SourceCentroid || points[0].Label != "Perundungan" {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
	if points[1].Source != SourceCombined || points[1].Label != "d" || points[1].Province != "Tidak diketahui" {
		t.Fatalf("unexpected second point: %+v", points[1])
	}
}

func TestComputeBounds(t *testing.T) {
	if b := ComputeBounds(nil); b != DefaultBounds {
		t.Fatalf("expected default bounds, got %+v", b)
	}
	b := ComputeBounds([]Point{{Lat: -6, Lon: 106}, {Lat: 2, Lon: 99}})
	want := Bounds{MinLat: -6.5, MinLon: 98.5, MaxLat: 2.5, MaxLon: 106.5}
	if b != want {
		t.Fatalf("unexpected bounds: %+v", b)
	}
	lat, lon := b.Center()
	if math.Abs(lat+2) > 1e-9 || math.Abs(lon-102.5) > 1e-9 {
		t.Fatalf("unexpected center: %v %v", lat, lon)
	}
}

func TestMapCenter(t *testing.T) {
	lat, lon := MapCenter(nil, DefaultBounds)
	if lat != DefaultCenter[0] || lon != DefaultCenter[1] {
		t.Fatalf("expected default center, got %v %v", lat, lon)
	}
	points := []Point{{Lat: -6, Lon: 106}, {Lat: 2, Lon: 99}}
	lat, lon = MapCenter(points, ComputeBounds(points))
	if math.Abs(lat+2) > 1e-9 || math.Abs(lon-102.5) > 1e-9 {
		t.Fatalf("unexpected center: %v %v", lat, lon)
	}
}

func TestMarkerRadius(t *testing.T) {
	if r := MarkerRadius(nil); r != 7 {
		t.Fatalf("expected 7 for absent severity, got %d", r)
	}
	if r := MarkerRadius(floatPtr(4.6)); r != 11 {
		t.Fatalf("expected 11, got %d", r)
	}
	if r := MarkerRadius(floatPtr(-2)); r != 7 {
		t.Fatalf("expected clamped 7, got %d", r)
	}
}

func TestByProvince(t *testing.T) {
	groups := ByProvince([]Point{
		{Province: "Bali", Lat: -8, Lon: 115},
		{Province: "Aceh", Lat: 4, Lon: 96},
		{Province: "Bali", Lat: -9, Lon: 116},
	})
	if len(groups) != 2 || groups[0].Province != "Bali" || groups[0].Count != 2 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	if groups[0].Lat != -8.5 || groups[0].Lon != 115.5 {
		t.Fatalf("unexpected mean coordinate: %+v", groups[0])
	}
}
