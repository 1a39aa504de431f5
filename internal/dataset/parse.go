// Package dataset parses, loads and exports incident datasets.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/insidash/internal/model"
)

type field int

const (
	fieldID field = iota
	fieldDate
	fieldYear
	fieldAcademicYear
	fieldSemester
	fieldProvince
	fieldLat
	fieldLon
	fieldSector
	fieldCategory
	fieldType
	fieldLocation
	fieldRole
	fieldSeverity
	fieldStatus
	fieldResponse
	fieldResolution
	fieldNotes
)

// Source column names plus the export header labels, lower-cased.
var headerFields = map[string]field{
	"id_insiden":         fieldID,
	"id":                 fieldID,
	"tanggal_insiden":    fieldDate,
	"tanggal":            fieldDate,
	"tahun":              fieldYear,
	"tahun_akademik":     fieldAcademicYear,
	"semester":           fieldSemester,
	"provinsi":           fieldProvince,
	"lat":                fieldLat,
	"lon":                fieldLon,
	"sektor_pendidikan":  fieldSector,
	"sektor":             fieldSector,
	"kategori_besar":     fieldCategory,
	"kategori":           fieldCategory,
	"jenis_insiden":      fieldType,
	"jenis insiden":      fieldType,
	"lokasi":             fieldLocation,
	"peran_pelaku":       fieldRole,
	"tingkat_keparahan":  fieldSeverity,
	"severity":           fieldSeverity,
	"status_kasus":       fieldStatus,
	"status":             fieldStatus,
	"waktu_respon_jam":   fieldResponse,
	"respon (jam)":       fieldResponse,
	"hari_penyelesaian":  fieldResolution,
	"selesai (hari)":     fieldResolution,
	"catatan":            fieldNotes,
}

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
}

// Parse reads delimited text and maps every record to an Incident.
// Structural problems are returned as warnings; parsing continues.
func Parse(r io.Reader) ([]model.Incident, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return ParseText(string(data))
}

// ParseText parses dataset text. Blank input yields an empty slice.
func ParseText(text string) ([]model.Incident, []string, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	rows := []model.Incident{}
	if strings.TrimSpace(text) == "" {
		return rows, nil, nil
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var warnings []string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				warnings = append(warnings, fmt.Sprintf("row %d: %v", perr.StartLine, perr.Err))
				continue
			}
			return nil, warnings, fmt.Errorf("failed to read record: %w", err)
		}
		if blankRecord(rec) {
			continue
		}
		if len(rec) != len(columns) {
			start, _ := reader.FieldPos(0)
			warnings = append(warnings, fmt.Sprintf("row %d: expected %d fields, got %d", start, len(columns), len(rec)))
		}
		rows = append(rows, mapRecord(columns, rec, len(rows)+1))
	}
	return rows, warnings, nil
}

func mapRecord(columns, rec []string, position int) model.Incident {
	var row model.Incident
	for i, name := range columns {
		value := ""
		if i < len(rec) {
			value = strings.TrimSpace(rec[i])
		}
		key := strings.ToLower(name)
		f, known := headerFields[key]
		if !known {
			if key == "" {
				continue
			}
			if row.Extra == nil {
				row.Extra = map[string]string{}
			}
			row.Extra[key] = value
			continue
		}
		switch f {
		case fieldID:
			row.ID = value
		case fieldDate:
			row.IncidentDate = value
		case fieldYear:
			row.Year = parseInt(value)
		case fieldAcademicYear:
			row.AcademicYear = value
		case fieldSemester:
			row.Semester = value
		case fieldProvince:
			row.Province = value
		case fieldLat:
			row.Latitude = parseFloat(value)
			keepRaw(&row, key, value, row.Latitude)
		case fieldLon:
			row.Longitude = parseFloat(value)
			keepRaw(&row, key, value, row.Longitude)
		case fieldSector:
			row.Sector = value
		case fieldCategory:
			row.MajorCategory = value
		case fieldType:
			row.IncidentType = value
		case fieldLocation:
			row.Location = value
		case fieldRole:
			row.PerpetratorRole = value
		case fieldSeverity:
			row.Severity = parseFloat(value)
		case fieldStatus:
			row.CaseStatus = value
		case fieldResponse:
			row.ResponseHours = parseFloat(value)
		case fieldResolution:
			row.ResolutionDays = parseFloat(value)
		case fieldNotes:
			row.Notes = value
		}
	}
	if row.ID == "" {
		row.ID = fmt.Sprintf("incident-%d", position)
	}
	return row
}

// keepRaw stores an unparsable coordinate so lenient resolvers can retry it.
func keepRaw(row *model.Incident, key, value string, parsed *float64) {
	if parsed != nil || value == "" {
		return
	}
	if row.Extra == nil {
		row.Extra = map[string]string{}
	}
	row.Extra[key] = value
}

func parseInt(value string) *int {
	m := leadingInt.FindString(value)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseDate parses the free-form incident date.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sniffDelimiter(text string) rune {
	header := text
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		header = text[:idx]
	}
	best := ','
	bestCount := strings.Count(header, ",")
	for _, d := range []rune{';', '\t'} {
		if c := strings.Count(header, string(d)); c > bestCount {
			best = d
			bestCount = c
		}
	}
	return best
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
