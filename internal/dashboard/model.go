// Package dashboard provides the Bubble Tea incident dashboard.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/insidash/internal/dataset"
	"github.com/verte-zerg/insidash/internal/filter"
	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/options"
	"github.com/verte-zerg/insidash/internal/stats"
	"github.com/verte-zerg/insidash/internal/store"
)

const (
	tabSummary = iota
	tabDistribution
	tabMap
	tabScatter
	tabTable
)

const (
	defaultPageSize   = 20
	defaultPlotHeight = 10
	renderFailed      = "Gagal menampilkan tampilan"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB77E"))
	chipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
)

// LoadFunc loads a dataset from a source.
type LoadFunc func(ctx context.Context, source string) (dataset.Result, error)

// Model implements the Bubble Tea dashboard.
type Model struct {
	store  *store.Store
	cfg    model.DashboardConfig
	loadFn LoadFunc

	ctx    context.Context
	cancel context.CancelFunc

	loader   *dataset.Loader
	loading  bool
	loadID   string
	rows     []model.Incident
	warnings []string
	loadErr  string
	status   string
	statusOK bool

	filter    model.FilterState
	opts      options.Set
	report    stats.Report
	debouncer *filter.Debouncer
	// chipCursor selects the header chip that x removes.
	chipCursor int

	tabs      []string
	activeTab int
	viewports []viewport.Model

	table    table.Model
	sorted   []model.Incident
	sortCol  stats.Column
	sortDesc bool
	page     int
	pages    int

	searchMode  bool
	searchInput textinput.Model

	panel filterPanel

	watchCh  chan struct{}
	watchErr chan error

	width  int
	height int
}

type loadedMsg struct {
	gen     uint64
	started time.Time
	result  dataset.Result
	err     error
}

type searchTickMsg struct {
	token uint64
}

type exportedMsg struct {
	path  string
	count int
	err   error
}

type fileChangedMsg struct{}

// watchErrMsg reports a watcher error. stopped is set when the watcher never
// started, so there is nothing left to wait on.
type watchErrMsg struct {
	err     error
	stopped bool
}

// NewModel constructs a dashboard model. st may be nil to skip history.
func NewModel(st *store.Store, cfg model.DashboardConfig) *Model {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = filter.DefaultDelay
	}
	if cfg.PlotHeight <= 0 {
		cfg.PlotHeight = defaultPlotHeight
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		store:     st,
		cfg:       cfg,
		loadFn:    dataset.Load,
		ctx:       ctx,
		cancel:    cancel,
		loader:    &dataset.Loader{},
		filter:    filter.Default(),
		debouncer: filter.NewDebouncer(""),
		tabs:      []string{"Ringkasan", "Distribusi", "Peta", "Sebaran", "Tabel"},
		sortCol:   stats.ColDate,
		sortDesc:  true,
	}
	if cfg.Watch && !dataset.IsURL(cfg.Source) {
		m.watchCh = make(chan struct{}, 1)
		m.watchErr = make(chan error, 1)
	}
	m.searchInput = newInput("Cari: ")
	m.searchInput.Placeholder = "jenis insiden, pelaku, lokasi"
	m.panel = newFilterPanel()
	m.initViewports()
	m.table = buildTable(0, 1)
	m.refresh()
	return m
}

// Close stops background watchers.
func (m *Model) Close() {
	m.cancel()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	load := m.startLoad()
	if m.watchCh == nil {
		return load
	}
	return tea.Batch(load, m.startWatch())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case loadedMsg:
		m.applyLoad(msg)
		return m, nil
	case searchTickMsg:
		if value, ok := m.debouncer.Fire(msg.token); ok {
			m.setFilter(filter.Merge(m.filter, filter.WithSearch(value)))
		}
		return m, nil
	case exportedMsg:
		m.applyExport(msg)
		return m, nil
	case fileChangedMsg:
		return m, tea.Batch(m.startLoad(), m.waitChange())
	case watchErrMsg:
		m.setStatus(fmt.Sprintf("Pemantauan berkas gagal: %v", msg.err), false)
		if msg.stopped || m.watchCh == nil {
			return m, nil
		}
		return m, m.waitChange()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if m.panel.open {
			return m.updatePanel(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeTab == tabTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "1", "2", "3", "4", "5":
		m.activeTab = int(msg.String()[0] - '1')
		return m, tea.ClearScreen
	case "/":
		m.searchMode = true
		m.searchInput.SetValue(m.filter.Search)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()
	case "f":
		m.panel.open = true
		m.panel.clampCursor(m.opts)
		return m, nil
	case "R":
		m.resetFilters()
		return m, nil
	case "c":
		if n := len(filter.Chips(m.filter)); n > 0 {
			m.chipCursor = (m.chipCursor + 1) % n
		}
		return m, nil
	case "x":
		m.removeChip()
		return m, nil
	case "r":
		return m, m.startLoad()
	case "e":
		return m, m.exportCmd()
	case "esc":
		if m.status != "" {
			m.status = ""
		}
		return m, nil
	}
	if m.activeTab == tabTable {
		switch msg.String() {
		case "s":
			m.sortCol = stats.Columns[(int(m.sortCol)+1)%len(stats.Columns)]
			m.page = 0
			m.resort()
			return m, nil
		case "S":
			m.sortDesc = !m.sortDesc
			m.page = 0
			m.resort()
			return m, nil
		case "n":
			m.movePage(1)
			return m, nil
		case "p":
			m.movePage(-1)
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "g", "home":
		m.viewports[m.activeTab].GotoTop()
		return m, nil
	case "G", "end":
		m.viewports[m.activeTab].GotoBottom()
		return m, nil
	}
	vp := m.viewports[m.activeTab]
	var cmd tea.Cmd
	vp, cmd = vp.Update(msg)
	m.viewports[m.activeTab] = vp
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		value := m.searchInput.Value()
		m.debouncer.Reset(value)
		m.setFilter(filter.Merge(m.filter, filter.WithSearch(value)))
		return m, nil
	}
	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != before {
		token := m.debouncer.Push(value)
		return m, tea.Batch(cmd, tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
			return searchTickMsg{token: token}
		}))
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, tabTable)
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 2
	footerHeight = 1
	if m.searchMode || m.loadErr != "" {
		footerHeight++
	}
	if m.status != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.setTableSize(m.width, bodyHeight)
	promptWidth := lipgloss.Width(m.searchInput.Prompt)
	m.searchInput.Width = maxInt(10, m.width-promptWidth-2)
	m.panel.query.Width = maxInt(10, m.width/2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) setFilter(f model.FilterState) {
	m.filter = f
	m.page = 0
	if n := len(filter.Chips(f)); m.chipCursor >= n {
		m.chipCursor = maxInt(0, n-1)
	}
	m.refresh()
}

// removeChip lifts the constraint behind the selected header chip.
func (m *Model) removeChip() {
	chips := filter.Chips(m.filter)
	if len(chips) == 0 {
		return
	}
	chip := chips[minInt(m.chipCursor, len(chips)-1)]
	if chip.Remove.Search != nil {
		m.debouncer.Reset("")
		m.searchInput.SetValue("")
	}
	m.setFilter(filter.Merge(m.filter, chip.Remove))
}

func (m *Model) resetFilters() {
	m.debouncer.Reset("")
	m.searchInput.SetValue("")
	m.setFilter(filter.Default())
}

func (m *Model) setStatus(text string, ok bool) {
	m.status = text
	m.statusOK = ok
	m.updateLayout()
}

// refresh recomputes the report from the loaded rows and the current filter.
func (m *Model) refresh() {
	m.report = stats.BuildReport(m.rows, m.filter)
	m.resort()
	m.renderTabContents()
}

func (m *Model) resort() {
	m.sorted = stats.SortRows(m.report.Visible, m.sortCol, m.sortDesc)
	m.applyTablePage()
}

func (m *Model) movePage(delta int) {
	m.page += delta
	m.applyTablePage()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + padLines(m.renderInfoLine(), m.width) + "\n" + padLines(m.renderChips(), m.width)
}

func (m *Model) renderInfoLine() string {
	updated := m.report.LastUpdated
	if updated == "" {
		updated = "-"
	}
	info := fmt.Sprintf("Filter aktif: %d  Baris: %s/%s  Pembaruan terakhir: %s",
		m.report.AppliedFilters,
		stats.FormatInt(len(m.report.Visible)),
		stats.FormatInt(m.report.RawCount),
		updated,
	)
	if m.loading {
		info += "  Memuat..."
	}
	if n := len(m.warnings); n > 0 {
		info += fmt.Sprintf("  Peringatan: %d", n)
	}
	return headerStyle.Render(truncateLine(info, m.width))
}

func (m *Model) renderChips() string {
	if filter.IsDefault(m.filter) {
		return headerStyle.Render("Tanpa filter")
	}
	chips := filter.Chips(m.filter)
	labels := make([]string, len(chips))
	for i, c := range chips {
		labels[i] = "[" + c.Label + "]"
		if i == m.chipCursor {
			labels[i] = ">" + labels[i]
		}
	}
	return chipStyle.Render(truncateLine(strings.Join(labels, " "), m.width))
}

func (m *Model) renderHelp() string {
	help := "Tab: left/right  Filter: f  Cari: /  Chip: c/x  Reset: R  Muat ulang: r  Ekspor: e  Keluar: q"
	if m.activeTab == tabTable {
		help = "Urut: s/S  Halaman: n/p  Filter: f  Cari: /  Reset: R  Ekspor: e  Keluar: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	lines := []string{}
	if m.searchMode {
		lines = append(lines, m.searchInput.View())
		hint := "enter: terapkan  esc: tutup"
		if strings.TrimSpace(m.searchInput.Value()) != m.debouncer.Committed() {
			hint += "  (menunggu...)"
		}
		lines = append(lines, headerStyle.Render(hint))
	} else {
		lines = append(lines, m.renderHelp())
		if m.loadErr != "" {
			lines = append(lines, errorStyle.Render(m.loadErr))
		}
	}
	if m.status != "" {
		style := errorStyle
		if m.statusOK {
			style = statusStyle
		}
		lines = append(lines, style.Render(truncateLine(m.status, m.width)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.panel.open {
		return fitLines(safeRender(func() string { return m.panel.view(m.filter, m.opts, m.width) }), m.width, height)
	}
	if m.activeTab == tabTable {
		return fitLines(safeRender(m.renderTable), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

// safeRender runs render and replaces a panic with a fallback message.
func safeRender(render func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = errorStyle.Render(renderFailed)
		}
	}()
	return render()
}
