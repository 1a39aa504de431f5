package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/insidash/internal/filter"
	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/options"
)

const panelListHeight = 12

// panelDim adapts one multi-select dimension to string options.
type panelDim struct {
	title     string
	options   func(options.Set) []string
	has       func(model.FilterState, string) bool
	toggle    func(model.FilterState, string) model.FilterState
	selectAll func(model.FilterState, []string) model.FilterState
	all       func(model.FilterState, []string) bool
	clear     func(model.FilterState) model.FilterState
	selected  func(model.FilterState) int
}

func stringDim(title string, d filter.Dimension[string], list func(options.Set) []string) panelDim {
	return panelDim{
		title:     title,
		options:   list,
		has:       d.Has,
		toggle:    d.Toggle,
		selectAll: d.SelectAll,
		all:       d.IsAllSelected,
		clear:     d.Clear,
		selected:  func(f model.FilterState) int { return len(d.Selected(f)) },
	}
}

func yearDim() panelDim {
	d := filter.Year
	return panelDim{
		title: "Tahun",
		options: func(o options.Set) []string {
			out := make([]string, len(o.Years))
			for i, y := range o.Years {
				out[i] = strconv.Itoa(y)
			}
			return out
		},
		has: func(f model.FilterState, v string) bool {
			y, err := strconv.Atoi(v)
			return err == nil && d.Has(f, y)
		},
		toggle: func(f model.FilterState, v string) model.FilterState {
			y, err := strconv.Atoi(v)
			if err != nil {
				return f
			}
			return d.Toggle(f, y)
		},
		selectAll: func(f model.FilterState, values []string) model.FilterState {
			return d.SelectAll(f, parseYears(values))
		},
		all: func(f model.FilterState, values []string) bool {
			return d.IsAllSelected(f, parseYears(values))
		},
		clear:    d.Clear,
		selected: func(f model.FilterState) int { return len(d.Selected(f)) },
	}
}

func parseYears(values []string) []int {
	years := make([]int, 0, len(values))
	for _, v := range values {
		if y, err := strconv.Atoi(v); err == nil {
			years = append(years, y)
		}
	}
	return years
}

type filterPanel struct {
	open      bool
	dims      []panelDim
	dim       int
	cursor    int
	query     textinput.Model
	queryMode bool
}

func newFilterPanel() filterPanel {
	return filterPanel{
		dims: []panelDim{
			stringDim("Sektor", filter.Sector, func(o options.Set) []string { return o.Sector }),
			stringDim("Provinsi", filter.Province, func(o options.Set) []string { return o.Province }),
			yearDim(),
			stringDim("Kategori", filter.Category, func(o options.Set) []string { return o.Category }),
			stringDim("Status", filter.Status, func(o options.Set) []string { return o.Status }),
		},
		query: newInput("Cari opsi: "),
	}
}

// visible returns the options of the active dimension that match the query.
func (p *filterPanel) visible(o options.Set) []string {
	return options.Search(p.dims[p.dim].options(o), p.query.Value())
}

func (p *filterPanel) clampCursor(o options.Set) {
	n := len(p.visible(o))
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *filterPanel) moveDim(delta int) {
	p.dim = (p.dim + delta + len(p.dims)) % len(p.dims)
	p.cursor = 0
	p.query.SetValue("")
}

func (m *Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.panel
	if p.queryMode {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			p.queryMode = false
			p.query.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		p.query, cmd = p.query.Update(msg)
		p.clampCursor(m.opts)
		return m, cmd
	}
	dim := p.dims[p.dim]
	values := p.visible(m.opts)
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "f":
		p.open = false
		return m, nil
	case "/":
		p.queryMode = true
		return m, p.query.Focus()
	case "tab", "right", "l":
		p.moveDim(1)
	case "shift+tab", "left", "h":
		p.moveDim(-1)
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(values)-1 {
			p.cursor++
		}
	case " ", "space", "enter":
		if p.cursor < len(values) {
			m.setFilter(dim.toggle(m.filter, values[p.cursor]))
		}
	case "a":
		if all := dim.options(m.opts); !dim.all(m.filter, all) {
			m.setFilter(dim.selectAll(m.filter, all))
		}
	case "c":
		m.setFilter(dim.clear(m.filter))
	case "[":
		m.setFilter(filter.Merge(m.filter, filter.WithSeverityMin(m.filter.SeverityMin-1)))
	case "]":
		m.setFilter(filter.Merge(m.filter, filter.WithSeverityMin(m.filter.SeverityMin+1)))
	case "{":
		m.setFilter(filter.Merge(m.filter, filter.WithSeverityMax(m.filter.SeverityMax-1)))
	case "}":
		m.setFilter(filter.Merge(m.filter, filter.WithSeverityMax(m.filter.SeverityMax+1)))
	case "R":
		m.resetFilters()
	}
	return m, nil
}

func (p *filterPanel) view(f model.FilterState, o options.Set, width int) string {
	tabs := make([]string, len(p.dims))
	for i, d := range p.dims {
		label := d.title
		if n := d.selected(f); n > 0 {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		if i == p.dim {
			tabs[i] = cardValueStyle.Render(label)
		} else {
			tabs[i] = cardTitleStyle.Render(label)
		}
	}
	lines := []string{strings.Join(tabs, "  ")}
	if p.queryMode || p.query.Value() != "" {
		lines = append(lines, p.query.View())
	}

	dim := p.dims[p.dim]
	allSelected := dim.all(f, dim.options(o))
	if allSelected {
		lines = append(lines, chipStyle.Render("Semua opsi terpilih"))
	}
	values := p.visible(o)
	if len(values) == 0 {
		lines = append(lines, headerStyle.Render("Tidak ada opsi."))
	}
	start := 0
	if p.cursor >= panelListHeight {
		start = p.cursor - panelListHeight + 1
	}
	end := minInt(len(values), start+panelListHeight)
	for i := start; i < end; i++ {
		mark := "[ ]"
		if dim.has(f, values[i]) {
			mark = "[x]"
		}
		line := mark + " " + values[i]
		if i == p.cursor {
			line = cardValueStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if len(values) > end {
		lines = append(lines, headerStyle.Render(fmt.Sprintf("  ... %d lagi", len(values)-end)))
	}
	lines = append(lines, "", fmt.Sprintf("Severity: %d - %d", f.SeverityMin, f.SeverityMax))
	selectHint := "a: semua  "
	if allSelected {
		selectHint = ""
	}
	lines = append(lines, headerStyle.Render("spasi: pilih  "+selectHint+"c: kosongkan  /: cari opsi  [ ]: min  { }: maks  tab: dimensi  esc: tutup"))
	box := panelStyle.Width(maxInt(20, minInt(width-2, 100))).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, cardTitleStyle.Render("Filter"), box)
}
