package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"lotpulse-tui/internal/api"
)

// CurveHorizonDays is the fixed horizon of the daily sell-probability curve.
const CurveHorizonDays = 90

// LoadDashboard assembles the dashboard view-model. The active-vehicle list
// and the insight list are mandatory and fetched in parallel; if either
// fails the whole load fails. The latest alarm is fetched afterwards and is
// optional — "no alarm yet" and transport failures both leave Alarm nil.
func LoadDashboard(ctx context.Context, gw Gateway) (DashboardVM, error) {
	var vm DashboardVM

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vehicles, err := gw.ListVehicles(gctx, api.StatusActive)
		if err != nil {
			return fmt.Errorf("list vehicles: %w", err)
		}
		vm.Vehicles = vehicles
		return nil
	})
	g.Go(func() error {
		insights, err := gw.ListInsights(gctx, api.StatusActive)
		if err != nil {
			return fmt.Errorf("list insights: %w", err)
		}
		vm.Insights = insights
		return nil
	})
	if err := g.Wait(); err != nil {
		return DashboardVM{}, err
	}

	if alarm, err := gw.GetLatestAlarm(ctx); err == nil {
		vm.Alarm = &alarm
	} else if !api.IsNotFound(err) {
		log.Debug().Err(err).Msg("latest alarm unavailable")
	}

	return vm, nil
}

// LoadDetail assembles the vehicle-detail view-model. The vehicle record is
// mandatory; a failure there is terminal for the screen. The analysis (with
// its curve fallback), comp summary, waterfall plan, price events and demand
// signals are independent optional branches issued concurrently — a failed
// branch leaves its slot empty and never disturbs the others.
//
// priorReport, when non-nil, is the analysis state already on screen; the
// curve fallback merges the fresh curve into it instead of discarding it.
func LoadDetail(ctx context.Context, gw Gateway, vehicleID int, priorReport *api.AnalysisReport) (DetailVM, error) {
	vehicle, err := gw.GetVehicle(ctx, vehicleID)
	if err != nil {
		return DetailVM{}, fmt.Errorf("get vehicle %d: %w", vehicleID, err)
	}
	vm := DetailVM{Vehicle: vehicle}

	var g errgroup.Group
	g.Go(func() error {
		vm.Report, vm.CurveOnly, vm.NoAnalysisYet = FetchAnalysis(ctx, gw, vehicleID, priorReport)
		return nil
	})
	g.Go(func() error {
		if summary, err := gw.GetCompSummary(ctx, vehicleID); err == nil {
			vm.CompSummary = &summary
		}
		return nil
	})
	g.Go(func() error {
		if plan, err := gw.GetWaterfallPlan(ctx, vehicleID); err == nil {
			vm.Plan = &plan
		}
		return nil
	})
	g.Go(func() error {
		if events, err := gw.GetPriceEvents(ctx, vehicleID); err == nil {
			vm.Events = CreationOrder(events)
		}
		return nil
	})
	g.Go(func() error {
		if signals, err := gw.GetSignals(ctx, vehicleID); err == nil {
			vm.Signals = &signals
		}
		return nil
	})
	_ = g.Wait()

	return vm, nil
}

// FetchAnalysis runs the analysis fallback chain: request a fresh report; if
// that fails, request the curve alone and merge it into the prior report (or
// a curve-only report when there is none); if both fail, report stays nil.
// noAnalysis is true when the gateway has no analysis for the vehicle at all.
func FetchAnalysis(ctx context.Context, gw Gateway, vehicleID int, prior *api.AnalysisReport) (report *api.AnalysisReport, curveOnly, noAnalysis bool) {
	fresh, err := gw.AnalyzeVehicle(ctx, vehicleID)
	if err == nil {
		return &fresh, false, false
	}
	log.Debug().Err(err).Int("vehicle_id", vehicleID).Msg("analyze failed, falling back to curve")

	curve, curveErr := gw.GetCurve(ctx, vehicleID, CurveHorizonDays)
	if curveErr != nil {
		return prior, prior != nil && len(prior.DailyCurve) > 0 && prior.ComputedAt == "", api.IsNotFound(curveErr) && prior == nil
	}

	if prior != nil {
		merged := *prior
		merged.DailyCurve = curve.Curve
		return &merged, prior.ComputedAt == "", false
	}
	return &api.AnalysisReport{VehicleID: vehicleID, DailyCurve: curve.Curve}, true, false
}

// FetchComps is the lazy comp-list fetch for the comps tab. Failure is
// swallowed into an empty list.
func FetchComps(ctx context.Context, gw Gateway, vehicleID int) []api.Comp {
	comps, err := gw.ListComps(ctx, vehicleID, "")
	if err != nil {
		log.Debug().Err(err).Int("vehicle_id", vehicleID).Msg("comp list unavailable")
		return nil
	}
	return comps
}

// CreationOrder returns price events oldest-first. The gateway serves them
// newest-first; the audit view renders them in creation order, and after
// this single normalization they are append-only.
func CreationOrder(events []api.PriceEvent) []api.PriceEvent {
	out := make([]api.PriceEvent, len(events))
	for i, e := range events {
		out[len(events)-1-i] = e
	}
	return out
}
