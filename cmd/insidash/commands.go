package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/insidash/internal/config"
	"github.com/verte-zerg/insidash/internal/dataset"
	"github.com/verte-zerg/insidash/internal/filter"
	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/options"
	"github.com/verte-zerg/insidash/internal/stats"
	"github.com/verte-zerg/insidash/internal/store"
)

// filterFlags holds the filter flags shared by summary and export.
type filterFlags struct {
	sector      []string
	province    []string
	year        []int
	category    []string
	status      []string
	severityMin int
	severityMax int
	search      string
}

var (
	summaryFilter filterFlags
	summaryFormat string
	summaryWidth  int

	exportFilter filterFlags
	exportOut    string

	optionsSearch string

	rowsFilter    filterFlags
	rowsSort      string
	rowsAsc       bool
	rowsPage      int
	rowsPageSize  int
	rowsCellWidth int

	historyLimit   int
	historyExports bool
)

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	cmd.Flags().StringSliceVar(&f.sector, "sector", nil, "education sector (repeatable)")
	cmd.Flags().StringSliceVar(&f.province, "province", nil, "province (repeatable)")
	cmd.Flags().IntSliceVar(&f.year, "year", nil, "incident year (repeatable)")
	cmd.Flags().StringSliceVar(&f.category, "category", nil, "major category (repeatable)")
	cmd.Flags().StringSliceVar(&f.status, "status", nil, "case status (repeatable)")
	cmd.Flags().IntVar(&f.severityMin, "severity-min", filter.SeverityFloor, "minimum severity (1-5)")
	cmd.Flags().IntVar(&f.severityMax, "severity-max", filter.SeverityCeil, "maximum severity (1-5)")
	cmd.Flags().StringVar(&f.search, "search", "", "text search over incident type, perpetrator role and location")
}

// state builds a filter state from the flags the user actually set.
func (f filterFlags) state(cmd *cobra.Command) model.FilterState {
	var patch model.FilterPatch
	changed := cmd.Flags().Changed
	if changed("sector") {
		patch.Sector = &f.sector
	}
	if changed("province") {
		patch.Province = &f.province
	}
	if changed("year") {
		patch.Year = &f.year
	}
	if changed("category") {
		patch.Category = &f.category
	}
	if changed("status") {
		patch.Status = &f.status
	}
	if changed("severity-min") {
		patch.SeverityMin = &f.severityMin
	}
	if changed("severity-max") {
		patch.SeverityMax = &f.severityMax
	}
	if changed("search") {
		patch.Search = &f.search
	}
	return filter.Merge(filter.Default(), patch)
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print headline metrics for a filtered view",
		Args:  cobra.NoArgs,
		RunE:  runSummaryCmd,
	}
	addFilterFlags(cmd, &summaryFilter)
	cmd.Flags().StringVar(&summaryFormat, "format", "text", "output format: text, json or yaml")
	cmd.Flags().IntVar(&summaryWidth, "width", 0, "text output width (default: terminal width)")
	return cmd
}

func runSummaryCmd(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(strings.TrimSpace(summaryFormat))
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("--format must be text, json or yaml")
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	source, err := resolveSource(cmd, fileCfg)
	if err != nil {
		return err
	}
	plotHeight := defaultPlotHeight
	if fileCfg.Dashboard.PlotHeight != nil && *fileCfg.Dashboard.PlotHeight > 0 {
		plotHeight = *fileCfg.Dashboard.PlotHeight
	}

	ctx, cancel := signalContext()
	defer cancel()
	st := openStore()
	if st != nil {
		defer closeStore(st)
	}
	cfg := model.SummaryConfig{Source: source, Format: format, Filter: summaryFilter.state(cmd)}
	res, _, err := loadDataset(ctx, st, cfg.Source)
	if err != nil {
		return err
	}

	report := stats.BuildReport(res.Rows, cfg.Filter)
	return writeSummary(cmd.OutOrStdout(), report, cfg.Format, stats.RenderOptions{Width: summaryWidth, PlotHeight: plotHeight})
}

func writeSummary(w io.Writer, report stats.Report, format string, opts stats.RenderOptions) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report.Summary(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report.Summary()); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return enc.Close()
	}
	if err := stats.RenderSummary(w, report, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows as CSV",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	addFilterFlags(cmd, &exportFilter)
	cmd.Flags().StringVar(&exportOut, "out", dataset.DefaultExportName, "output file")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	source, err := resolveSource(cmd, fileCfg)
	if err != nil {
		return err
	}
	out := exportOut
	applyStringConfig(cmd, "out", &out, fileCfg.Export.Path)
	if strings.TrimSpace(out) == "" {
		return fmt.Errorf("--out must not be empty")
	}

	ctx, cancel := signalContext()
	defer cancel()
	st := openStore()
	if st != nil {
		defer closeStore(st)
	}
	cfg := model.ExportConfig{Source: source, Path: out, Filter: exportFilter.state(cmd)}
	res, loadID, err := loadDataset(ctx, st, cfg.Source)
	if err != nil {
		return err
	}

	visible := filter.Apply(res.Rows, cfg.Filter)
	if err := dataset.WriteFileAtomic(cfg.Path, visible); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	recordExport(ctx, st, model.ExportRecord{LoadID: loadID, Path: cfg.Path, RowCount: len(visible)})
	logErrf("Wrote %d rows to %s\n", len(visible), cfg.Path)
	return nil
}

func recordExport(ctx context.Context, st *store.Store, rec model.ExportRecord) {
	if st == nil {
		return
	}
	if _, err := st.RecordExport(ctx, rec); err != nil {
		logErrf("failed to record export: %v\n", err)
	}
}

func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options <sector|province|status|category|type|year>",
		Short: "List filter choices for a dimension",
		Args:  cobra.ExactArgs(1),
		RunE:  runOptionsCmd,
	}
	cmd.Flags().StringVar(&optionsSearch, "search", "", "only list choices containing this text")
	return cmd
}

func runOptionsCmd(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(strings.TrimSpace(args[0]))
	field, ok := options.ParseField(name)
	if !ok && name != "year" {
		return fmt.Errorf("unknown dimension %q (use sector, province, status, category, type or year)", args[0])
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	source, err := resolveSource(cmd, fileCfg)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	res, _, err := loadDataset(ctx, nil, source)
	if err != nil {
		return err
	}

	var values []string
	switch {
	case name == "year":
		for _, y := range options.Years(res.Rows) {
			values = append(values, strconv.Itoa(y))
		}
	case field == options.FieldCategory:
		values = options.Categories()
	default:
		values = options.For(res.Rows, field)
	}
	values = options.Search(values, optionsSearch)
	if len(values) == 0 {
		logErrln("No choices found.")
		return nil
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), v); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newRowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print one page of the filtered rows as a table",
		Args:  cobra.NoArgs,
		RunE:  runRowsCmd,
	}
	addFilterFlags(cmd, &rowsFilter)
	cmd.Flags().StringVar(&rowsSort, "sort", "date", "sort column (date, category, type, sector, province, severity, status, response, resolution)")
	cmd.Flags().BoolVar(&rowsAsc, "asc", false, "sort ascending instead of descending")
	cmd.Flags().IntVar(&rowsPage, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&rowsPageSize, "page-size", defaultPageSize, "rows per page")
	cmd.Flags().IntVar(&rowsCellWidth, "cell-width", defaultCellWidth, "maximum cell width")
	return cmd
}

func runRowsCmd(cmd *cobra.Command, _ []string) error {
	column, ok := stats.ParseColumn(rowsSort)
	if !ok {
		return fmt.Errorf("unknown sort column %q", rowsSort)
	}
	if rowsPage < 1 {
		return fmt.Errorf("--page must be >= 1")
	}
	if rowsPageSize <= 0 {
		return fmt.Errorf("--page-size must be > 0")
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	source, err := resolveSource(cmd, fileCfg)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "page-size", &rowsPageSize, fileCfg.Dashboard.PageSize)

	ctx, cancel := signalContext()
	defer cancel()
	res, _, err := loadDataset(ctx, nil, source)
	if err != nil {
		return err
	}

	visible := filter.Apply(res.Rows, rowsFilter.state(cmd))
	sorted := stats.SortRows(visible, column, !rowsAsc)
	items, current, pages := stats.Page(sorted, rowsPage-1, rowsPageSize)
	w := cmd.OutOrStdout()
	if err := stats.RenderRows(w, items, rowsCellWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Halaman %d/%d  %s baris\n", current+1, pages, stats.FormatInt(len(visible))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded dataset loads",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistory, "number of loads to show (0 for all)")
	cmd.Flags().BoolVar(&historyExports, "exports", false, "list the exports made from each load")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	loads, err := st.ListLoads(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list loads: %w", err)
	}
	if len(loads) == 0 {
		logErrln("No loads recorded yet.")
		return nil
	}
	w := cmd.OutOrStdout()
	for _, l := range loads {
		status := fmt.Sprintf("%d rows, %d warnings, %d exports", l.RowCount, l.WarningCount, l.ExportCount)
		if l.Error != "" {
			status = "error: " + l.Error
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %s  %s\n", l.StartedAt.Local().Format(historyTimeLayout), shortID(l.ID), l.Source, status); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if !historyExports || l.ExportCount == 0 {
			continue
		}
		exports, err := st.ListExports(cmd.Context(), l.ID)
		if err != nil {
			return fmt.Errorf("failed to list exports: %w", err)
		}
		for _, e := range exports {
			if _, err := fmt.Fprintf(w, "    %s  %s  %d rows\n", e.CreatedAt.Local().Format(historyTimeLayout), e.Path, e.RowCount); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
