// Package geo resolves incident coordinates and map extents.
package geo

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/insidash/internal/model"
)

// Resolution sources.
const (
	SourceExplicit = "explicit"
	SourceCombined = "combined"
	SourceCentroid = "centroid"
)

const boundsPadding = 0.5

// DefaultBounds covers Indonesia and is used when no point resolves.
var DefaultBounds = Bounds{MinLat: -12, MinLon: 94, MaxLat: 6, MaxLon: 141}

// DefaultCenter is the fallback map center.
var DefaultCenter = [2]float64{-2.5489, 118.0149}

var (
	latKeys   = []string{"lat", "latitude", "lat_dd", "koordinat_lat", "koord_lat", "y"}
	lonKeys   = []string{"lon", "lng", "long", "longitude", "lon_dd", "koordinat_lon", "koord_lon", "x"}
	comboKeys = []string{"coord", "coords", "koordinat", "coordinate", "coordinates"}
	pairRe    = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*[,;]\s*(-?\d+(?:\.\d+)?)`)
)

// Point is a resolved incident location.
type Point struct {
	ID       string
	Label    string
	Province string
	Category string
	Lat      float64
	Lon      float64
	Severity *float64
	Source   string
}

// Resolver produces a coordinate for a row or reports that it cannot.
type Resolver interface {
	Name() string
	Resolve(row model.Incident) (lat, lon float64, ok bool)
}

// Chain tries resolvers in order; the first success wins.
type Chain []Resolver

// DefaultChain resolves explicit columns, then combined strings, then the
// province centroid.
func DefaultChain() Chain {
	return Chain{ExplicitResolver{}, CombinedResolver{}, CentroidResolver{}}
}

// Resolve returns the first valid coordinate and the resolver that produced it.
func (c Chain) Resolve(row model.Incident) (lat, lon float64, source string, ok bool) {
	for _, r := range c {
		lat, lon, ok := r.Resolve(row)
		if ok && valid(lat, lon) {
			return lat, lon, r.Name(), true
		}
	}
	return 0, 0, "", false
}

// ExplicitResolver reads separate latitude and longitude columns.
type ExplicitResolver struct{}

// Name implements Resolver.
func (ExplicitResolver) Name() string { return SourceExplicit }

// Resolve implements Resolver.
func (ExplicitResolver) Resolve(row model.Incident) (float64, float64, bool) {
	if row.Latitude != nil && row.Longitude != nil {
		return *row.Latitude, *row.Longitude, true
	}
	for _, latKey := range latKeys {
		lat, ok := coordValue(row, latKey)
		if !ok {
			continue
		}
		for _, lonKey := range lonKeys {
			if lon, ok := coordValue(row, lonKey); ok {
				return lat, lon, true
			}
		}
	}
	return 0, 0, false
}

// CombinedResolver parses a "lat, lon" or "lat; lon" string column.
type CombinedResolver struct{}

// Name implements Resolver.
func (CombinedResolver) Name() string { return SourceCombined }

// Resolve implements Resolver.
func (CombinedResolver) Resolve(row model.Incident) (float64, float64, bool) {
	for _, key := range comboKeys {
		raw := strings.TrimSpace(row.Extra[key])
		if raw == "" {
			continue
		}
		lat, lon, ok := ParsePair(raw)
		if ok {
			return lat, lon, true
		}
	}
	return 0, 0, false
}

// CentroidResolver falls back to the province centroid.
type CentroidResolver struct{}

// Name implements Resolver.
func (CentroidResolver) Name() string { return SourceCentroid }

// Resolve implements Resolver.
func (CentroidResolver) Resolve(row model.Incident) (float64, float64, bool) {
	name := row.Province
	if name == "" {
		name = row.Extra["province"]
	}
	if name == "" {
		name = row.Extra["prov"]
	}
	return Centroid(name)
}

// ParseCoord parses one coordinate, tolerating parentheses and a comma as the
// decimal separator.
func ParseCoord(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer("(", "", ")", "").Replace(s)
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParsePair parses a combined coordinate string. When the halves are split by
// ';' or ", ", each half may use a decimal comma.
func ParsePair(raw string) (lat, lon float64, ok bool) {
	s := strings.NewReplacer("(", "", ")", "").Replace(raw)
	for _, sep := range []string{";", ", "} {
		a, b, found := strings.Cut(s, sep)
		if !found {
			continue
		}
		lat, okLat := ParseCoord(a)
		lon, okLon := ParseCoord(b)
		if okLat && okLon {
			return lat, lon, true
		}
		break
	}
	m := pairRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// Points resolves every row through the default chain. Rows without a
// coordinate are dropped.
func Points(rows []model.Incident) []Point {
	return DefaultChain().Points(rows)
}

// Points resolves every row through c.
func (c Chain) Points(rows []model.Incident) []Point {
	out := make([]Point, 0, len(rows))
	for _, row := range rows {
		lat, lon, source, ok := c.Resolve(row)
		if !ok {
			continue
		}
		label := row.IncidentType
		if label == "" {
			label = row.ID
		}
		province := row.Province
		if province == "" {
			province = "Tidak diketahui"
		}
		out = append(out, Point{
			ID:       row.ID,
			Label:    label,
			Province: province,
			Category: row.MajorCategory,
			Lat:      lat,
			Lon:      lon,
			Severity: row.Severity,
			Source:   source,
		})
	}
	return out
}

// Bounds is a lat/lon rectangle.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Center returns the midpoint of b.
func (b Bounds) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// MapCenter returns the center of b, or DefaultCenter when no point resolved.
func MapCenter(points []Point, b Bounds) (lat, lon float64) {
	if len(points) == 0 {
		return DefaultCenter[0], DefaultCenter[1]
	}
	return b.Center()
}

// ComputeBounds returns the padded extent of points, or DefaultBounds.
func ComputeBounds(points []Point) Bounds {
	if len(points) == 0 {
		return DefaultBounds
	}
	b := Bounds{
		MinLat: math.Inf(1),
		MinLon: math.Inf(1),
		MaxLat: math.Inf(-1),
		MaxLon: math.Inf(-1),
	}
	for _, p := range points {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
	}
	b.MinLat -= boundsPadding
	b.MinLon -= boundsPadding
	b.MaxLat += boundsPadding
	b.MaxLon += boundsPadding
	return b
}

// MarkerRadius sizes a marker by severity: 7..11, 7 when absent.
func MarkerRadius(severity *float64) int {
	if severity == nil || math.IsNaN(*severity) || math.IsInf(*severity, 0) {
		return 7
	}
	s := int(math.Round(*severity))
	if s < 1 {
		s = 1
	}
	if s > 5 {
		s = 5
	}
	return 6 + s
}

// SeverityTier buckets a severity for coloring: 0 (low/absent), 3, 4 or 5.
func SeverityTier(severity *float64) int {
	if severity == nil {
		return 0
	}
	switch s := *severity; {
	case s >= 5:
		return 5
	case s >= 4:
		return 4
	case s >= 3:
		return 3
	}
	return 0
}

// ProvinceCount is the number of points per province.
type ProvinceCount struct {
	Province string
	Count    int
	Lat      float64
	Lon      float64
}

// ByProvince groups points by province, largest first. The coordinate is the
// mean of the grouped points.
func ByProvince(points []Point) []ProvinceCount {
	idx := map[string]int{}
	var out []ProvinceCount
	for _, p := range points {
		i, ok := idx[p.Province]
		if !ok {
			i = len(out)
			idx[p.Province] = i
			out = append(out, ProvinceCount{Province: p.Province})
		}
		out[i].Count++
		out[i].Lat += p.Lat
		out[i].Lon += p.Lon
	}
	for i := range out {
		out[i].Lat /= float64(out[i].Count)
		out[i].Lon /= float64(out[i].Count)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Province < out[j].Province
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func coordValue(row model.Incident, key string) (float64, bool) {
	switch key {
	case "lat":
		if row.Latitude != nil {
			return *row.Latitude, true
		}
	case "lon":
		if row.Longitude != nil {
			return *row.Longitude, true
		}
	}
	raw, ok := row.Extra[key]
	if !ok {
		return 0, false
	}
	return ParseCoord(raw)
}

func valid(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
