// Package app holds the screen orchestration core: view-model projections of
// gateway records, the fetch orchestrator that assembles them with per-call
// optionality, and the mutation chains the action coordinator runs. It is
// UI-free so the orchestration semantics are testable without a terminal.
package app

import (
	"context"

	"lotpulse-tui/internal/api"
)

// Gateway is the slice of the analytics API the orchestration layer consumes.
// *api.Client satisfies it; tests substitute stubs.
type Gateway interface {
	ListVehicles(ctx context.Context, status string) ([]api.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID int) (api.Vehicle, error)
	CreateVehicleFromVIN(ctx context.Context, req api.VINAddRequest) (api.Vehicle, error)
	ListInsights(ctx context.Context, status string) ([]api.VehicleInsight, error)

	AnalyzeVehicle(ctx context.Context, vehicleID int) (api.AnalysisReport, error)
	GetCurve(ctx context.Context, vehicleID, days int) (api.CurveResponse, error)
	AnalyzeAll(ctx context.Context) (api.MessageResponse, error)

	RefreshComps(ctx context.Context, vehicleID int) (api.MessageResponse, error)
	RefreshAllComps(ctx context.Context) (api.MessageResponse, error)
	ListComps(ctx context.Context, vehicleID int, source string) ([]api.Comp, error)
	GetCompSummary(ctx context.Context, vehicleID int) (api.CompSummary, error)

	GetSignals(ctx context.Context, vehicleID int) (api.Signals, error)

	GetWaterfallPlan(ctx context.Context, vehicleID int) (api.WaterfallPlan, error)
	ApplyWaterfallStep(ctx context.Context, vehicleID, step int) (api.Vehicle, error)

	GetPriceEvents(ctx context.Context, vehicleID int) ([]api.PriceEvent, error)

	RunAlarm(ctx context.Context) (api.Alarm, error)
	GetLatestAlarm(ctx context.Context) (api.Alarm, error)
	GetAlarmHistory(ctx context.Context, limit int) ([]api.Alarm, error)
}

var _ Gateway = (*api.Client)(nil)
