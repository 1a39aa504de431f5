// Package stats contains incident aggregations and text reporting.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/insidash/internal/dataset"
	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/textnorm"
)

const (
	// NotRecorded labels groups whose value is empty.
	NotRecorded = "Tidak tercatat"
	// OtherLabel collects small status groups.
	OtherLabel = "Lainnya"
	// MinStatusShare is the share below which a status is folded into OtherLabel.
	MinStatusShare = 0.03
)

const sparkChars = " .:-=+*#%@"

// Class is the category classification of an incident.
type Class int

const (
	Unclassified Class = iota
	Sexual
	NonSexual
)

// Classify maps a major category onto a Class using normalized comparison.
func Classify(category string) Class {
	n := textnorm.Normalize(category)
	switch {
	case n == "kekerasan seksual" || n == "seksual":
		return Sexual
	case n == "non seksual" || n == "nonseksual" || strings.HasPrefix(n, "non"):
		return NonSexual
	}
	return Unclassified
}

// IsSexual reports whether category is classified as sexual violence. Every
// other value, including unclassified ones, counts toward the complement.
func IsSexual(category string) bool {
	return Classify(category) == Sexual
}

// Ratio is a part of a whole.
type Ratio struct {
	Part  int
	Total int
}

// Percent formats the ratio with one decimal, "0%" for an empty whole.
func (r Ratio) Percent() string {
	return FormatPct(r.Part, r.Total, 1)
}

// Fraction returns Part/Total clamped to [0,1].
func (r Ratio) Fraction() float64 {
	if r.Total <= 0 {
		return 0
	}
	return clamp01(float64(r.Part) / float64(r.Total))
}

// Group is a labelled count within a distribution.
type Group struct {
	Label string
	Count int
	Share float64
}

// MonthBucket counts incidents per calendar month.
type MonthBucket struct {
	Key       string
	Label     string
	Sexual    int
	NonSexual int
}

// Total returns the bucket size.
func (b MonthBucket) Total() int {
	return b.Sexual + b.NonSexual
}

// ScatterPoint pairs response hours with resolution days.
type ScatterPoint struct {
	ID         string
	Label      string
	Response   float64
	Resolution float64
}

// ScatterSummary holds scatter points with reference means and axis maxima.
type ScatterSummary struct {
	Points         []ScatterPoint
	MeanResponse   float64
	MeanResolution float64
	MaxResponse    float64
	MaxResolution  float64
}

// Completion counts rows whose normalized status is "selesai".
func Completion(rows []model.Incident) Ratio {
	done := 0
	for _, row := range rows {
		if textnorm.Normalize(row.CaseStatus) == "selesai" {
			done++
		}
	}
	return Ratio{Part: done, Total: len(rows)}
}

// SexualShare counts rows classified as sexual violence.
func SexualShare(rows []model.Incident) Ratio {
	n := 0
	for _, row := range rows {
		if IsSexual(row.MajorCategory) {
			n++
		}
	}
	return Ratio{Part: n, Total: len(rows)}
}

// AverageResponse returns the mean response time. ok is false when no row
// carries a finite value.
func AverageResponse(rows []model.Incident) (avg float64, ok bool) {
	var sum float64
	n := 0
	for _, row := range rows {
		if row.ResponseHours == nil || !finite(*row.ResponseHours) {
			continue
		}
		sum += *row.ResponseHours
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// SeverityHistogram counts rows per severity level 1..5 (index 0 is level 1).
func SeverityHistogram(rows []model.Incident) [5]int {
	var out [5]int
	for _, row := range rows {
		s, ok := row.SeverityValue()
		if !ok {
			continue
		}
		level := int(math.Round(s))
		if level < 1 || level > 5 {
			continue
		}
		out[level-1]++
	}
	return out
}

// Distribution groups rows by key, largest group first.
func Distribution(rows []model.Incident, key func(model.Incident) string) []Group {
	idx := map[string]int{}
	var out []Group
	for _, row := range rows {
		label := strings.TrimSpace(key(row))
		if label == "" {
			label = NotRecorded
		}
		i, ok := idx[label]
		if !ok {
			i = len(out)
			idx[label] = i
			out = append(out, Group{Label: label})
		}
		out[i].Count++
	}
	for i := range out {
		out[i].Share = float64(out[i].Count) / float64(len(rows))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Label < out[j].Label
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// SectorDistribution groups rows by education sector.
func SectorDistribution(rows []model.Incident) []Group {
	return Distribution(rows, func(r model.Incident) string { return r.Sector })
}

// ProvinceDistribution groups rows by province.
func ProvinceDistribution(rows []model.Incident) []Group {
	return Distribution(rows, func(r model.Incident) string { return r.Province })
}

// StatusComposition groups rows by case status and folds groups under
// MinStatusShare into a trailing OtherLabel group.
func StatusComposition(rows []model.Incident) []Group {
	groups := Distribution(rows, func(r model.Incident) string { return r.CaseStatus })
	out := make([]Group, 0, len(groups))
	others := 0
	for _, g := range groups {
		if g.Share < MinStatusShare {
			others += g.Count
			continue
		}
		out = append(out, g)
	}
	if others > 0 {
		out = append(out, Group{Label: OtherLabel, Count: others, Share: float64(others) / float64(len(rows))})
	}
	return out
}

// MonthlyTrend buckets rows by incident month, ascending. Rows with an
// unparseable date are skipped; rows not classified as sexual count as
// non-sexual.
func MonthlyTrend(rows []model.Incident) []MonthBucket {
	idx := map[string]int{}
	var out []MonthBucket
	for _, row := range rows {
		t, ok := dataset.ParseDate(row.IncidentDate)
		if !ok {
			continue
		}
		key := t.Format("2006-01")
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, MonthBucket{Key: key, Label: MonthLabel(key)})
		}
		if IsSexual(row.MajorCategory) {
			out[i].Sexual++
		} else {
			out[i].NonSexual++
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Scatter pairs response and resolution times for rows carrying both.
func Scatter(rows []model.Incident) ScatterSummary {
	var s ScatterSummary
	var sumX, sumY, maxX, maxY float64
	for _, row := range rows {
		if row.ResponseHours == nil || row.ResolutionDays == nil {
			continue
		}
		x, y := *row.ResponseHours, *row.ResolutionDays
		if !finite(x) || !finite(y) {
			continue
		}
		label := row.IncidentType
		if label == "" {
			label = row.ID
		}
		s.Points = append(s.Points, ScatterPoint{ID: row.ID, Label: label, Response: x, Resolution: y})
		sumX += x
		sumY += y
		if len(s.Points) == 1 || x > maxX {
			maxX = x
		}
		if len(s.Points) == 1 || y > maxY {
			maxY = y
		}
	}
	if len(s.Points) == 0 {
		return s
	}
	n := float64(len(s.Points))
	s.MeanResponse = sumX / n
	s.MeanResolution = sumY / n
	s.MaxResponse = math.Ceil(maxX * 1.05)
	s.MaxResolution = math.Ceil(maxY * 1.05)
	return s
}

// Coverage returns visible/raw clamped to [0,1].
func Coverage(visible, raw int) float64 {
	if raw <= 0 {
		return 0
	}
	return clamp01(float64(visible) / float64(raw))
}

// LastUpdated returns the latest parseable incident date as YYYY-MM-DD, or ""
// when no row has one.
func LastUpdated(rows []model.Incident) string {
	var latest string
	for _, row := range rows {
		t, ok := dataset.ParseDate(row.IncidentDate)
		if !ok {
			continue
		}
		if d := t.Format("2006-01-02"); d > latest {
			latest = d
		}
	}
	return latest
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TrendTotals returns per-month totals for sparklines.
func TrendTotals(buckets []MonthBucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = float64(b.Total())
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
