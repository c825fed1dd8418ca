package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"lotpulse-tui/internal/api"
	"lotpulse-tui/internal/app"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.maxWidth > 0 && m.width > m.maxWidth {
			m.width = m.maxWidth
		}
		if m.maxHeight > 0 && m.height > m.maxHeight {
			m.height = m.maxHeight
		}
		m.table.SetHeight(max(4, m.height-14))
		m.viewport = viewport.New(m.width-4, max(4, m.height-12))
		m.ready = true

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case refreshMsg:
		if m.refreshInterval > 0 {
			cmds = append(cmds, scheduleRefresh(m.refreshInterval))
		}
		if m.screen == screenDashboard && m.dashBusy == dashIdle && m.dashLoaded {
			m.dashGen++
			cmds = append(cmds, m.loadDashboard(m.dashGen))
		}

	case dashLoadedMsg:
		// A superseded orchestration run never writes the view-model.
		if msg.gen != m.dashGen {
			break
		}
		if msg.err != nil {
			if m.dashLoaded {
				// Keep the prior view-model; surface the failure only.
				m.dashStatus = "Reload failed: " + msg.err.Error()
			} else {
				m.dashLoadErr = msg.err
			}
			break
		}
		m.dash = msg.vm
		m.dashLoaded = true
		m.dashLoadErr = nil
		m.table.SetRows(insightRows(m.dash.Insights))

	case detailLoadedMsg:
		if msg.gen != m.detailGen || msg.vehicleID != m.selectedID {
			break
		}
		if msg.err != nil {
			if !m.detailLoaded {
				m.detailLoadErr = msg.err
			} else {
				m.detailStatus = "Reload failed: " + msg.err.Error()
			}
			break
		}
		m.detail = msg.vm
		m.detailLoaded = true
		m.detailLoadErr = nil
		m.clampStepCursor()

	case compsMsg:
		if msg.gen != m.detailGen || msg.vehicleID != m.selectedID {
			break
		}
		m.comps = msg.comps

	case alarmDoneMsg:
		m.dashBusy = dashIdle
		if msg.err != nil {
			m.dashStatus = "Alarm run failed: " + msg.err.Error()
			break
		}
		// The fresh alarm supersedes the displayed one; nothing is merged.
		m.dash.Alarm = msg.alarm
		m.dashStatus = "Fleet alarm refreshed."

	case analyzeAllDoneMsg:
		m.dashBusy = dashIdle
		if msg.err != nil {
			// Prior insights stay on screen untouched.
			m.dashStatus = "Analyze all failed: " + msg.err.Error()
			break
		}
		m.dashStatus = "Fleet analyzed."
		m.dashGen++
		cmds = append(cmds, m.loadDashboard(m.dashGen))

	case submitDoneMsg:
		m.addBusy = false
		if msg.err != nil {
			m.addErr = msg.err.Error()
			break
		}
		m.resetAddForm()
		m.screen = screenDashboard
		m.dashStatus = fmt.Sprintf("Added %s (vehicle %d).", msg.vehicle.VIN, msg.vehicle.ID)
		m.dashGen++
		cmds = append(cmds, m.loadDashboard(m.dashGen))

	case reanalyzeMsg:
		cmds = append(cmds, m.handleReanalyze(msg)...)

	case applyStepDoneMsg:
		if msg.step == m.applyingStep {
			m.applyingStep = 0
		}
		if msg.err != nil {
			m.detailStatus = msg.err.Error()
			break
		}
		m.detailStatus = fmt.Sprintf("Waterfall step %d applied.", msg.step)
		m.dashGen++
		cmds = append(cmds, m.loadDashboard(m.dashGen))
		if msg.vehicleID == m.selectedID {
			m.detailGen++
			cmds = append(cmds, m.loadDetail(m.detailGen, m.selectedID, m.detail.Report))
		}

	case alarmHistoryMsg:
		if msg.err != nil {
			m.showHistory = false
			m.dashStatus = "Alarm history unavailable: " + msg.err.Error()
			break
		}
		m.alarmHistory = msg.alarms

	case exportDoneMsg:
		if msg.err != nil {
			m.dashStatus = "Export failed: " + msg.err.Error()
		} else {
			m.dashStatus = "Insights written to " + msg.path
		}
	}

	m.syncViewport()
	return m, tea.Batch(cmds...)
}

// handleReanalyze advances the sequential re-analyze chain. Slots updated by
// completed steps stay updated when a later step fails; there is no rollback.
func (m *Model) handleReanalyze(msg reanalyzeMsg) []tea.Cmd {
	var cmds []tea.Cmd

	current := msg.gen == m.detailGen && msg.vehicleID == m.selectedID && m.detailLoaded

	if msg.err != nil {
		if msg.vehicleID == m.reanalyzingID {
			m.reanalyzingID = 0
		}
		if current {
			m.detailStatus = fmt.Sprintf("Re-analyze stopped at %s: %v", msg.res.Step, msg.err)
		}
		// List-level aggregates may already be stale after a partial run.
		if m.reanalyzeHits > 0 {
			m.dashGen++
			cmds = append(cmds, m.loadDashboard(m.dashGen))
		}
		return cmds
	}

	m.reanalyzeHits++
	if current {
		if msg.res.Report != nil {
			m.detail.Report = msg.res.Report
			m.detail.CurveOnly = false
			m.detail.NoAnalysisYet = false
		}
		if msg.res.Summary != nil {
			m.detail.CompSummary = msg.res.Summary
		}
		if msg.res.Plan != nil {
			m.detail.Plan = msg.res.Plan
			m.clampStepCursor()
		}
	}

	if next, ok := msg.res.Step.Next(); ok {
		cmds = append(cmds, m.reanalyzeStep(msg.gen, msg.vehicleID, next))
		return cmds
	}

	if msg.vehicleID == m.reanalyzingID {
		m.reanalyzingID = 0
	}
	if current {
		m.detailStatus = "Re-analysis complete."
	}
	m.dashGen++
	cmds = append(cmds, m.loadDashboard(m.dashGen))
	return cmds
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenDashboard:
		return m.handleDashboardKey(msg)
	case screenAdd:
		return m.handleAddKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.History) || key.Matches(msg, keys.Quit) {
			m.showHistory = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Select):
		id, ok := m.selectedRowID()
		if !ok {
			return m, nil
		}
		return m.openDetail(id)

	case key.Matches(msg, keys.Add):
		m.screen = screenAdd
		m.resetAddForm()
		return m, nil

	case key.Matches(msg, keys.RunAlarm):
		if m.dashBusy != dashIdle {
			m.dashStatus = "Another dashboard action is in flight."
			return m, nil
		}
		m.dashBusy = dashRunningAlarm
		m.dashStatus = "Running fleet alarm..."
		return m, m.runAlarm()

	case key.Matches(msg, keys.AnalyzeAll):
		if m.dashBusy != dashIdle {
			m.dashStatus = "Another dashboard action is in flight."
			return m, nil
		}
		m.dashBusy = dashAnalyzingAll
		m.dashStatus = "Refreshing comps, then analyzing fleet..."
		return m, m.analyzeAll()

	case key.Matches(msg, keys.History):
		m.showHistory = true
		return m, m.fetchAlarmHistory()

	case key.Matches(msg, keys.Export):
		if !m.dashLoaded {
			return m, nil
		}
		return m, m.exportInsights()

	case key.Matches(msg, keys.Refresh):
		if m.dashBusy != dashIdle {
			return m, nil
		}
		m.dashGen++
		return m, m.loadDashboard(m.dashGen)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		m.screen = screenDashboard
		return m, nil

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab:
		if msg.Type == tea.KeyTab {
			m.addFocus = (m.addFocus + 1) % 3
		} else {
			m.addFocus = (m.addFocus + 2) % 3
		}
		m.focusAddField()
		return m, nil

	case msg.Type == tea.KeyEnter:
		return m.submitAddForm()
	}

	var cmd tea.Cmd
	switch m.addFocus {
	case 0:
		m.vinInput, cmd = m.vinInput.Update(msg)
	case 1:
		m.priceInput, cmd = m.priceInput.Update(msg)
	case 2:
		m.costInput, cmd = m.costInput.Update(msg)
	}
	return m, cmd
}

// submitAddForm validates the VIN client-side; a malformed VIN never reaches
// the network.
func (m Model) submitAddForm() (tea.Model, tea.Cmd) {
	if m.addBusy {
		return m, nil
	}

	vin, err := app.NormalizeVIN(m.vinInput.Value())
	if err != nil {
		m.addErr = err.Error()
		return m, nil
	}

	req := api.VINAddRequest{VIN: vin}
	if v := strings.TrimSpace(m.priceInput.Value()); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			m.addErr = "List price must be a number."
			return m, nil
		}
		req.ListPrice = &price
	}
	if v := strings.TrimSpace(m.costInput.Value()); v != "" {
		cost, err := strconv.ParseFloat(v, 64)
		if err != nil {
			m.addErr = "Acquisition cost must be a number."
			return m, nil
		}
		req.AcquisitionCost = &cost
	}

	m.addBusy = true
	m.addErr = ""
	return m, m.submitVehicle(req)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		// Back to the dashboard reuses the cached view-model; any action
		// that touched list-level data already triggered its re-fetch.
		m.screen = screenDashboard
		m.detailStatus = ""
		return m, nil

	case key.Matches(msg, keys.NextTab):
		return m.switchTab((m.tab + 1) % tabCount)

	case key.Matches(msg, keys.PrevTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)

	case msg.String() >= "1" && msg.String() <= "5":
		n, _ := strconv.Atoi(msg.String())
		return m.switchTab(detailTab(n - 1))

	case key.Matches(msg, keys.Reanalyze):
		if m.reanalyzingID != 0 || !m.detailLoaded {
			return m, nil
		}
		m.reanalyzingID = m.selectedID
		m.reanalyzeHits = 0
		m.detailStatus = "Re-analyzing..."
		return m, m.reanalyzeStep(m.detailGen, m.selectedID, app.StepRefreshComps)

	case m.tab == tabWaterfall && key.Matches(msg, keys.StepDown):
		m.stepCursor++
		m.clampStepCursor()
		return m, nil

	case m.tab == tabWaterfall && key.Matches(msg, keys.StepUp):
		m.stepCursor--
		m.clampStepCursor()
		return m, nil

	case m.tab == tabWaterfall && key.Matches(msg, keys.ApplyStep):
		return m.applySelectedStep()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// applySelectedStep starts the apply action for the highlighted waterfall
// step. While a step's apply is in flight, further apply requests are
// ignored, so a given step can never be applied twice concurrently.
func (m Model) applySelectedStep() (tea.Model, tea.Cmd) {
	if m.applyingStep != 0 || !m.detailLoaded || m.detail.Plan == nil || len(m.detail.Plan.Steps) == 0 {
		return m, nil
	}
	step := m.detail.Plan.Steps[m.stepCursor].Step
	m.applyingStep = step
	m.detailStatus = fmt.Sprintf("Applying waterfall step %d...", step)
	return m, m.applyStep(m.detailGen, m.selectedID, step)
}

func (m Model) switchTab(tab detailTab) (tea.Model, tea.Cmd) {
	if tab < 0 || tab >= tabCount {
		return m, nil
	}
	m.tab = tab
	m.viewport.GotoTop()

	// Tabs select a slice of already-fetched data; only the comps tab
	// fetches, lazily, on its first mount for this vehicle.
	if tab == tabComps && !m.compsFetched && m.detailLoaded {
		m.compsFetched = true
		return m, m.fetchComps(m.detailGen, m.selectedID)
	}
	return m, nil
}

// openDetail transitions to the detail screen for a vehicle and starts its
// orchestration run.
func (m Model) openDetail(vehicleID int) (tea.Model, tea.Cmd) {
	m.screen = screenDetail
	m.selectedID = vehicleID
	m.tab = tabAnalysis
	m.detail = app.DetailVM{}
	m.detailLoaded = false
	m.detailLoadErr = nil
	m.detailStatus = ""
	m.comps = nil
	m.compsFetched = false
	m.stepCursor = 0
	m.detailGen++
	return m, m.loadDetail(m.detailGen, vehicleID, nil)
}

func (m Model) selectedRowID() (int, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return 0, false
	}
	return id, true
}

func (m *Model) resetAddForm() {
	m.vinInput.SetValue("")
	m.priceInput.SetValue("")
	m.costInput.SetValue("")
	m.addFocus = 0
	m.addErr = ""
	m.focusAddField()
}

func (m *Model) focusAddField() {
	m.vinInput.Blur()
	m.priceInput.Blur()
	m.costInput.Blur()
	switch m.addFocus {
	case 0:
		m.vinInput.Focus()
	case 1:
		m.priceInput.Focus()
	case 2:
		m.costInput.Focus()
	}
}

func (m *Model) clampStepCursor() {
	if m.detail.Plan == nil || len(m.detail.Plan.Steps) == 0 {
		m.stepCursor = 0
		return
	}
	if m.stepCursor < 0 {
		m.stepCursor = 0
	}
	if m.stepCursor >= len(m.detail.Plan.Steps) {
		m.stepCursor = len(m.detail.Plan.Steps) - 1
	}
}

func (m *Model) syncViewport() {
	if m.ready && m.screen == screenDetail {
		m.viewport.SetContent(m.renderDetailContent())
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func insightRows(insights []api.VehicleInsight) []table.Row {
	rows := make([]table.Row, 0, len(insights))
	for _, ins := range insights {
		rows = append(rows, table.Row{
			strconv.Itoa(ins.VehicleID),
			vehicleLabel(ins.Year, ins.Make, ins.Model, ins.Trim),
			strconv.Itoa(ins.DaysInInventory),
			formatUSD(ins.ListPrice),
			formatPctPtr(ins.P30),
			formatPctPtr(ins.P60),
			formatPctPtr(ins.P90),
			stringOrDash(ins.AgingClass),
			stringOrDash(ins.PriceAction),
		})
	}
	return rows
}
