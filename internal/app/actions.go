package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"lotpulse-tui/internal/api"
)

// Mutation chains. Each returns once the whole chain has settled; callers own
// the single in-flight-action slot for the relevant scope and release it on
// every exit path.

// RunFleetAlarm triggers alarm computation and re-fetches the latest alarm.
// The returned alarm always supersedes whatever was displayed before; it is
// never merged with a prior one. If the re-fetch fails the alarm returned by
// the run call itself is used — it is the latest by construction.
func RunFleetAlarm(ctx context.Context, gw Gateway) (*api.Alarm, error) {
	ran, err := gw.RunAlarm(ctx)
	if err != nil {
		return nil, fmt.Errorf("run alarm: %w", err)
	}
	latest, err := gw.GetLatestAlarm(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("latest alarm re-fetch failed, using run result")
		return &ran, nil
	}
	return &latest, nil
}

// AnalyzeAll refreshes comps for the whole fleet and then analyzes it,
// strictly in that order: analysis depends on fresh comps, so a comp-refresh
// failure aborts the chain before analyze-all is ever issued.
func AnalyzeAll(ctx context.Context, gw Gateway) error {
	if _, err := gw.RefreshAllComps(ctx); err != nil {
		return fmt.Errorf("refresh all comps: %w", err)
	}
	if _, err := gw.AnalyzeAll(ctx); err != nil {
		return fmt.Errorf("analyze all: %w", err)
	}
	return nil
}

// SubmitVehicle validates the VIN client-side, creates the vehicle, and then
// makes a best-effort attempt to prime comps and analysis for the new id.
// The priming step is non-fatal: the dashboard re-fetch after navigation
// shows whatever state resulted.
func SubmitVehicle(ctx context.Context, gw Gateway, req api.VINAddRequest) (api.Vehicle, error) {
	vin, err := NormalizeVIN(req.VIN)
	if err != nil {
		return api.Vehicle{}, err
	}
	req.VIN = vin

	vehicle, err := gw.CreateVehicleFromVIN(ctx, req)
	if err != nil {
		return api.Vehicle{}, fmt.Errorf("create vehicle: %w", err)
	}

	if _, err := gw.RefreshComps(ctx, vehicle.ID); err != nil {
		log.Warn().Err(err).Int("vehicle_id", vehicle.ID).Msg("initial comp refresh failed")
		return vehicle, nil
	}
	if _, err := gw.AnalyzeVehicle(ctx, vehicle.ID); err != nil {
		log.Warn().Err(err).Int("vehicle_id", vehicle.ID).Msg("initial analysis failed")
	}
	return vehicle, nil
}

// ReanalyzeStep identifies one step of the per-vehicle re-analyze chain:
// comp refresh, then analysis, then comp summary, then waterfall plan. Steps
// run strictly in order; a failure stops the chain, leaving the slots updated
// by earlier steps in place.
type ReanalyzeStep int

const (
	StepRefreshComps ReanalyzeStep = iota
	StepAnalyze
	StepCompSummary
	StepWaterfallPlan
	stepCount
)

func (s ReanalyzeStep) String() string {
	switch s {
	case StepRefreshComps:
		return "refresh comps"
	case StepAnalyze:
		return "analyze"
	case StepCompSummary:
		return "comp summary"
	case StepWaterfallPlan:
		return "waterfall plan"
	}
	return "unknown"
}

// Next returns the step after s, or false when s is the last one.
func (s ReanalyzeStep) Next() (ReanalyzeStep, bool) {
	if s+1 >= stepCount {
		return s, false
	}
	return s + 1, true
}

// ReanalyzeResult carries the slot produced by one re-analyze step. Only the
// field for the executed step is populated.
type ReanalyzeResult struct {
	Step    ReanalyzeStep
	Report  *api.AnalysisReport
	Summary *api.CompSummary
	Plan    *api.WaterfallPlan
}

// RunReanalyzeStep executes a single step of the re-analyze chain.
func RunReanalyzeStep(ctx context.Context, gw Gateway, vehicleID int, step ReanalyzeStep) (ReanalyzeResult, error) {
	res := ReanalyzeResult{Step: step}
	switch step {
	case StepRefreshComps:
		if _, err := gw.RefreshComps(ctx, vehicleID); err != nil {
			return res, fmt.Errorf("refresh comps: %w", err)
		}
	case StepAnalyze:
		report, err := gw.AnalyzeVehicle(ctx, vehicleID)
		if err != nil {
			return res, fmt.Errorf("analyze: %w", err)
		}
		res.Report = &report
	case StepCompSummary:
		summary, err := gw.GetCompSummary(ctx, vehicleID)
		if err != nil {
			return res, fmt.Errorf("comp summary: %w", err)
		}
		res.Summary = &summary
	case StepWaterfallPlan:
		plan, err := gw.GetWaterfallPlan(ctx, vehicleID)
		if err != nil {
			return res, fmt.Errorf("waterfall plan: %w", err)
		}
		res.Plan = &plan
	}
	return res, nil
}

// ApplyWaterfallStep applies one step of the vehicle's waterfall plan. The
// caller re-runs the detail orchestration afterwards so price, plan and
// price-event history reflect the applied step.
func ApplyWaterfallStep(ctx context.Context, gw Gateway, vehicleID, step int) (api.Vehicle, error) {
	vehicle, err := gw.ApplyWaterfallStep(ctx, vehicleID, step)
	if err != nil {
		return api.Vehicle{}, fmt.Errorf("apply step %d: %w", step, err)
	}
	return vehicle, nil
}
