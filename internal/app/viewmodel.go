package app

import "lotpulse-tui/internal/api"

// DashboardVM is the dashboard screen's view-model. Vehicles and Insights are
// mandatory; Alarm stays nil when no alarm exists or the fetch failed.
type DashboardVM struct {
	Vehicles []api.Vehicle
	Insights []api.VehicleInsight
	Alarm    *api.Alarm
}

// DetailVM is the vehicle-detail screen's view-model. Vehicle is mandatory;
// every other slot is optional and nil/empty when its fetch failed.
type DetailVM struct {
	Vehicle api.Vehicle

	// Report may be curve-only: analysis failed but the curve fallback
	// succeeded, so only DailyCurve is populated.
	Report    *api.AnalysisReport
	CurveOnly bool

	// NoAnalysisYet distinguishes "the gateway has never analyzed this
	// vehicle" from a transport failure, so the screen can invite the user
	// to run one instead of showing an error.
	NoAnalysisYet bool

	CompSummary *api.CompSummary
	Plan        *api.WaterfallPlan

	// Events are held in creation order (oldest first) and never reordered
	// after the initial fetch.
	Events []api.PriceEvent

	Signals *api.Signals
}

// Insight returns the dashboard insight row for a vehicle id, if present.
func (vm DashboardVM) Insight(vehicleID int) (api.VehicleInsight, bool) {
	for _, ins := range vm.Insights {
		if ins.VehicleID == vehicleID {
			return ins, true
		}
	}
	return api.VehicleInsight{}, false
}
