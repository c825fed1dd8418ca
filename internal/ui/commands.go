package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lotpulse-tui/internal/api"
	"lotpulse-tui/internal/app"
)

// Every command runs in its own goroutine; all view-model writes happen back
// in Update, keyed by the generation the command was issued under.

const callTimeout = 30 * time.Second

func callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

func (m Model) loadDashboard(gen int) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		vm, err := app.LoadDashboard(ctx, gw)
		return dashLoadedMsg{gen: gen, vm: vm, err: err}
	}
}

func (m Model) loadDetail(gen, vehicleID int, prior *api.AnalysisReport) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		vm, err := app.LoadDetail(ctx, gw, vehicleID, prior)
		return detailLoadedMsg{gen: gen, vehicleID: vehicleID, vm: vm, err: err}
	}
}

func (m Model) fetchComps(gen, vehicleID int) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		return compsMsg{gen: gen, vehicleID: vehicleID, comps: app.FetchComps(ctx, gw, vehicleID)}
	}
}

func (m Model) runAlarm() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		alarm, err := app.RunFleetAlarm(ctx, gw)
		return alarmDoneMsg{alarm: alarm, err: err}
	}
}

func (m Model) analyzeAll() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*callTimeout)
		defer cancel()
		return analyzeAllDoneMsg{err: app.AnalyzeAll(ctx, gw)}
	}
}

func (m Model) submitVehicle(req api.VINAddRequest) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		vehicle, err := app.SubmitVehicle(ctx, gw, req)
		return submitDoneMsg{vehicle: vehicle, err: err}
	}
}

func (m Model) reanalyzeStep(gen, vehicleID int, step app.ReanalyzeStep) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		res, err := app.RunReanalyzeStep(ctx, gw, vehicleID, step)
		return reanalyzeMsg{gen: gen, vehicleID: vehicleID, res: res, err: err}
	}
}

func (m Model) applyStep(gen, vehicleID, step int) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		_, err := app.ApplyWaterfallStep(ctx, gw, vehicleID, step)
		return applyStepDoneMsg{gen: gen, vehicleID: vehicleID, step: step, err: err}
	}
}

func (m Model) fetchAlarmHistory() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		alarms, err := gw.GetAlarmHistory(ctx, 30)
		return alarmHistoryMsg{alarms: alarms, err: err}
	}
}

func (m Model) exportInsights() tea.Cmd {
	path := m.exportPath
	insights := m.dash.Insights
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: app.ExportInsightsCSV(path, insights)}
	}
}
