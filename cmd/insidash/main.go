// Package main provides the CLI entrypoint for insidash.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/insidash/internal/config"
	"github.com/verte-zerg/insidash/internal/dashboard"
	"github.com/verte-zerg/insidash/internal/dataset"
	"github.com/verte-zerg/insidash/internal/filter"
	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/store"
)

const (
	defaultPageSize   = 20
	defaultPlotHeight = 10
	defaultHistory    = 20
	defaultCellWidth  = 18

	historyTimeLayout = "2006-01-02 15:04:05"
)

var (
	sourceFlag string

	dashPageSize   int
	dashPlotHeight int
	dashWatch      bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "insidash",
		Short:         "Terminal dashboard for school violence incident data",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "dataset file path or http(s) URL")
	rootCmd.Flags().IntVar(&dashPageSize, "page-size", defaultPageSize, "table rows per page")
	rootCmd.Flags().IntVar(&dashPlotHeight, "plot-height", defaultPlotHeight, "trend plot height in rows")
	rootCmd.Flags().BoolVar(&dashWatch, "watch", false, "reload when the dataset file changes")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newRowsCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	source, err := resolveSource(cmd, fileCfg)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "page-size", &dashPageSize, fileCfg.Dashboard.PageSize)
	applyIntConfig(cmd, "plot-height", &dashPlotHeight, fileCfg.Dashboard.PlotHeight)
	applyBoolConfig(cmd, "watch", &dashWatch, fileCfg.Dashboard.Watch)

	cfg := model.DashboardConfig{
		Source:     source,
		PageSize:   dashPageSize,
		Debounce:   fileCfg.Dashboard.Debounce(),
		PlotHeight: dashPlotHeight,
		Watch:      dashWatch,
	}
	if fileCfg.Export.Path != nil {
		cfg.ExportPath = *fileCfg.Export.Path
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st := openStore()
	if st != nil {
		defer closeStore(st)
	}

	m := dashboard.NewModel(st, cfg)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveSource picks the dataset source from --source or the config file.
func resolveSource(cmd *cobra.Command, fileCfg config.FileConfig) (string, error) {
	source := sourceFlag
	applyStringConfig(cmd, "source", &source, fileCfg.Dataset.Source)
	source = strings.TrimSpace(source)
	if source == "" {
		return "", fmt.Errorf("no dataset source: pass --source or set [dataset] source in %s", config.DefaultConfigPath())
	}
	return source, nil
}

// loadDataset loads source for a one-shot command, logging parse warnings and
// recording the attempt in history when st is non-nil.
func loadDataset(ctx context.Context, st *store.Store, source string) (dataset.Result, string, error) {
	started := time.Now()
	res, err := dataset.Load(ctx, source)
	rec := model.LoadRecord{Source: source, StartedAt: started, FinishedAt: time.Now()}
	if err != nil {
		rec.Error = err.Error()
	} else {
		rec.RowCount = len(res.Rows)
		rec.WarningCount = len(res.Warnings)
		for _, w := range res.Warnings {
			logErrf("warning: %s\n", w)
		}
	}
	loadID := ""
	if st != nil {
		saved, rerr := st.RecordLoad(ctx, rec)
		if rerr != nil {
			logErrf("failed to record load: %v\n", rerr)
		} else {
			loadID = saved.ID
		}
	}
	if err != nil {
		return dataset.Result{}, loadID, err
	}
	return res, loadID, nil
}

// openStore opens the history database. History is optional, so failures are
// logged and nil is returned.
func openStore() *store.Store {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return nil
	}
	return st
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# insidash configuration
# Uncomment a value to enable it. CLI flags override config values.

[dataset]
# source = "data/insiden.csv"   # Dataset file path or http(s) URL

[dashboard]
# page-size = %d               # Table rows per page
# debounce-ms = %d            # Search quiet period in milliseconds
# plot-height = %d             # Trend plot height in rows
# watch = false                # Reload when the dataset file changes

[export]
# path = %q    # Export file for the dashboard "e" key
`,
		defaultPageSize,
		filter.DefaultDelay.Milliseconds(),
		defaultPlotHeight,
		dataset.DefaultExportName,
	)
}

func validateConfig(cfg model.DashboardConfig) error {
	if cfg.PageSize <= 0 {
		return fmt.Errorf("--page-size must be > 0")
	}
	if cfg.PlotHeight <= 0 {
		return fmt.Errorf("--plot-height must be > 0")
	}
	if cfg.Debounce < 0 {
		return fmt.Errorf("debounce-ms must be >= 0")
	}
	if cfg.Watch && dataset.IsURL(cfg.Source) {
		return fmt.Errorf("--watch requires a local dataset file")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
