package app

import (
	"context"
	"net/http"
	"sync"

	"lotpulse-tui/internal/api"
)

// fakeGateway is a configurable Gateway stub. Every call appends its name to
// calls so tests can assert ordering and gating.
type fakeGateway struct {
	vehicles    []api.Vehicle
	vehiclesErr error
	insights    []api.VehicleInsight
	insightsErr error

	vehicle    api.Vehicle
	vehicleErr error
	created    api.Vehicle
	createErr  error

	report     api.AnalysisReport
	analyzeErr error
	curve      api.CurveResponse
	curveErr   error

	refreshErr    error
	refreshAllErr error
	analyzeAllErr error

	comps      []api.Comp
	compsErr   error
	summary    api.CompSummary
	summaryErr error

	signals    api.Signals
	signalsErr error

	plan     api.WaterfallPlan
	planErr  error
	applied  api.Vehicle
	applyErr error

	events    []api.PriceEvent
	eventsErr error

	runAlarmRes api.Alarm
	runAlarmErr error
	latestAlarm api.Alarm
	latestErr   error
	history     []api.Alarm
	historyErr  error

	mu    sync.Mutex
	calls []string
}

func notFound() error {
	return &api.StatusError{StatusCode: http.StatusNotFound}
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeGateway) ListVehicles(_ context.Context, _ string) ([]api.Vehicle, error) {
	f.record("ListVehicles")
	return f.vehicles, f.vehiclesErr
}

func (f *fakeGateway) GetVehicle(_ context.Context, _ int) (api.Vehicle, error) {
	f.record("GetVehicle")
	return f.vehicle, f.vehicleErr
}

func (f *fakeGateway) CreateVehicleFromVIN(_ context.Context, req api.VINAddRequest) (api.Vehicle, error) {
	f.record("CreateVehicleFromVIN:" + req.VIN)
	return f.created, f.createErr
}

func (f *fakeGateway) ListInsights(_ context.Context, _ string) ([]api.VehicleInsight, error) {
	f.record("ListInsights")
	return f.insights, f.insightsErr
}

func (f *fakeGateway) AnalyzeVehicle(_ context.Context, _ int) (api.AnalysisReport, error) {
	f.record("AnalyzeVehicle")
	return f.report, f.analyzeErr
}

func (f *fakeGateway) GetCurve(_ context.Context, _, _ int) (api.CurveResponse, error) {
	f.record("GetCurve")
	return f.curve, f.curveErr
}

func (f *fakeGateway) AnalyzeAll(_ context.Context) (api.MessageResponse, error) {
	f.record("AnalyzeAll")
	return api.MessageResponse{}, f.analyzeAllErr
}

func (f *fakeGateway) RefreshComps(_ context.Context, _ int) (api.MessageResponse, error) {
	f.record("RefreshComps")
	return api.MessageResponse{}, f.refreshErr
}

func (f *fakeGateway) RefreshAllComps(_ context.Context) (api.MessageResponse, error) {
	f.record("RefreshAllComps")
	return api.MessageResponse{}, f.refreshAllErr
}

func (f *fakeGateway) ListComps(_ context.Context, _ int, _ string) ([]api.Comp, error) {
	f.record("ListComps")
	return f.comps, f.compsErr
}

func (f *fakeGateway) GetCompSummary(_ context.Context, _ int) (api.CompSummary, error) {
	f.record("GetCompSummary")
	return f.summary, f.summaryErr
}

func (f *fakeGateway) GetSignals(_ context.Context, _ int) (api.Signals, error) {
	f.record("GetSignals")
	return f.signals, f.signalsErr
}

func (f *fakeGateway) GetWaterfallPlan(_ context.Context, _ int) (api.WaterfallPlan, error) {
	f.record("GetWaterfallPlan")
	return f.plan, f.planErr
}

func (f *fakeGateway) ApplyWaterfallStep(_ context.Context, _, _ int) (api.Vehicle, error) {
	f.record("ApplyWaterfallStep")
	return f.applied, f.applyErr
}

func (f *fakeGateway) GetPriceEvents(_ context.Context, _ int) ([]api.PriceEvent, error) {
	f.record("GetPriceEvents")
	return f.events, f.eventsErr
}

func (f *fakeGateway) RunAlarm(_ context.Context) (api.Alarm, error) {
	f.record("RunAlarm")
	return f.runAlarmRes, f.runAlarmErr
}

func (f *fakeGateway) GetLatestAlarm(_ context.Context) (api.Alarm, error) {
	f.record("GetLatestAlarm")
	return f.latestAlarm, f.latestErr
}

func (f *fakeGateway) GetAlarmHistory(_ context.Context, _ int) ([]api.Alarm, error) {
	f.record("GetAlarmHistory")
	return f.history, f.historyErr
}

func (f *fakeGateway) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}
