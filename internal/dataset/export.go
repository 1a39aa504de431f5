package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/insidash/internal/model"
)

// DefaultExportName is the file name used when no export path is configured.
const DefaultExportName = "dataset-terfilter.csv"

// ExportHeaders lists the export columns in order.
var ExportHeaders = []string{
	"Tanggal",
	"Kategori",
	"Jenis Insiden",
	"Sektor",
	"Provinsi",
	"Severity",
	"Status",
	"Respon (jam)",
	"Selesai (hari)",
}

// ExportRecord returns the export cells for one row.
func ExportRecord(row model.Incident) []string {
	date := row.IncidentDate
	if t, ok := ParseDate(row.IncidentDate); ok {
		date = t.Format("2006-01-02")
	}
	return []string{
		date,
		row.MajorCategory,
		row.IncidentType,
		row.Sector,
		row.Province,
		formatNumber(row.Severity),
		row.CaseStatus,
		formatNumber(row.ResponseHours),
		formatNumber(row.ResolutionDays),
	}
}

// WriteCSV writes rows as delimited text with the export header.
func WriteCSV(w io.Writer, rows []model.Incident) error {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinCells(ExportHeaders))
	for _, row := range rows {
		lines = append(lines, joinCells(ExportRecord(row)))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// WriteFileAtomic writes the export to path via a temp file and rename.
func WriteFileAtomic(path string, rows []model.Incident) error {
	if path == "" {
		path = DefaultExportName
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "export-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := WriteCSV(writer, rows); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func joinCells(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = quoteCell(c)
	}
	return strings.Join(quoted, ",")
}

func quoteCell(value string) string {
	if !strings.ContainsAny(value, ",\"\n\r") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
