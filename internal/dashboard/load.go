package dashboard

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/insidash/internal/dataset"
	"github.com/verte-zerg/insidash/internal/model"
	"github.com/verte-zerg/insidash/internal/options"
)

// startLoad begins a new load generation and returns the command that runs it.
func (m *Model) startLoad() tea.Cmd {
	gen := m.loader.Begin()
	m.loading = true
	ctx := m.ctx
	source := m.cfg.Source
	load := m.loadFn
	return func() tea.Msg {
		started := time.Now()
		res, err := load(ctx, source)
		return loadedMsg{gen: gen, started: started, result: res, err: err}
	}
}

func (m *Model) applyLoad(msg loadedMsg) {
	if !m.loader.Accept(msg.gen) {
		return
	}
	m.loading = false
	rec := model.LoadRecord{
		Source:     m.cfg.Source,
		StartedAt:  msg.started,
		FinishedAt: time.Now(),
	}
	if msg.err != nil {
		m.loadErr = msg.err.Error()
		m.rows = nil
		m.warnings = nil
		rec.Error = m.loadErr
	} else {
		m.loadErr = ""
		m.rows = msg.result.Rows
		m.warnings = msg.result.Warnings
		rec.RowCount = len(m.rows)
		rec.WarningCount = len(m.warnings)
	}
	m.opts = options.Build(m.rows)
	m.panel.clampCursor(m.opts)
	m.recordLoad(rec)
	m.updateLayout()
	m.refresh()
}

func (m *Model) recordLoad(rec model.LoadRecord) {
	m.loadID = ""
	if m.store == nil {
		return
	}
	saved, err := m.store.RecordLoad(m.ctx, rec)
	if err != nil {
		m.setStatus(fmt.Sprintf("Riwayat tidak tersimpan: %v", err), false)
		return
	}
	m.loadID = saved.ID
}

func (m *Model) startWatch() tea.Cmd {
	ctx := m.ctx
	source := m.cfg.Source
	changes := m.watchCh
	errs := m.watchErr
	wait := m.waitChange()
	return func() tea.Msg {
		notify := func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		}
		report := func(err error) {
			select {
			case errs <- err:
			default:
			}
		}
		if err := dataset.Watch(ctx, source, notify, report); err != nil {
			return watchErrMsg{err: err, stopped: true}
		}
		return wait()
	}
}

func (m *Model) waitChange() tea.Cmd {
	ctx := m.ctx
	changes := m.watchCh
	errs := m.watchErr
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return fileChangedMsg{}
		case err := <-errs:
			return watchErrMsg{err: err}
		}
	}
}

func (m *Model) exportCmd() tea.Cmd {
	path := m.cfg.ExportPath
	if path == "" {
		path = dataset.DefaultExportName
	}
	rows := append([]model.Incident(nil), m.report.Visible...)
	return func() tea.Msg {
		err := dataset.WriteFileAtomic(path, rows)
		return exportedMsg{path: path, count: len(rows), err: err}
	}
}

func (m *Model) applyExport(msg exportedMsg) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Ekspor gagal: %v", msg.err), false)
		return
	}
	if m.store != nil {
		rec := model.ExportRecord{LoadID: m.loadID, Path: msg.path, RowCount: msg.count}
		if _, err := m.store.RecordExport(m.ctx, rec); err != nil {
			m.setStatus(fmt.Sprintf("Diekspor %d baris ke %s (riwayat gagal: %v)", msg.count, msg.path, err), false)
			return
		}
	}
	m.setStatus(fmt.Sprintf("Diekspor %d baris ke %s", msg.count, msg.path), true)
}
