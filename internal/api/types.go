package api

import "strings"

// Response types mirror the gateway's JSON payloads. Timestamps stay as the
// ISO strings the server emits; the client never does date math on them.

// Vehicle statuses and classification values recognized by the UI. Unknown
// values coming off the wire are passed through and rendered literally.
const (
	StatusActive    = "active"
	StatusSold      = "sold"
	StatusWholesale = "wholesale"
	StatusTraded    = "traded"

	AgingHealthy = "healthy"
	AgingAtRisk  = "at_risk"
	AgingDanger  = "danger"

	PriceActionHold     = "hold"
	PriceActionReduce   = "reduce"
	PriceActionIncrease = "increase"
)

type Vehicle struct {
	ID                  int      `json:"id"`
	DealershipID        int      `json:"dealership_id"`
	VIN                 string   `json:"vin"`
	Status              string   `json:"status"`
	Year                int      `json:"year"`
	Make                string   `json:"make"`
	Model               string   `json:"model"`
	Trim                string   `json:"trim"`
	BodyStyle           string   `json:"body_style"`
	Engine              string   `json:"engine"`
	AcquisitionCost     float64  `json:"acquisition_cost"`
	ReconCost           float64  `json:"recon_cost"`
	ListPrice           float64  `json:"list_price"`
	FloorplanRateAPR    float64  `json:"floorplan_rate_apr"`
	WholesaleExitPrice  float64  `json:"wholesale_exit_price"`
	MinAcceptableMargin float64  `json:"min_acceptable_margin"`
	Mileage             int      `json:"mileage"`
	DateAcquired        string   `json:"date_acquired"`
	DaysInInventory     int      `json:"days_in_inventory"`
	DateSold            string   `json:"date_sold"`
	SoldPrice           *float64 `json:"sold_price"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// VINAddRequest creates a vehicle from a VIN; the server decodes the VIN.
type VINAddRequest struct {
	VIN                 string   `json:"vin"`
	AcquisitionCost     *float64 `json:"acquisition_cost,omitempty"`
	ReconCost           *float64 `json:"recon_cost,omitempty"`
	ListPrice           *float64 `json:"list_price,omitempty"`
	FloorplanRateAPR    *float64 `json:"floorplan_rate_apr,omitempty"`
	WholesaleExitPrice  *float64 `json:"wholesale_exit_price,omitempty"`
	MinAcceptableMargin *float64 `json:"min_acceptable_margin,omitempty"`
	Mileage             *int     `json:"mileage,omitempty"`
	DateAcquired        string   `json:"date_acquired,omitempty"`
}

// VehicleUpdate carries partial vehicle edits; nil fields are left untouched
// by the server. Price and status changes produce price events server-side.
type VehicleUpdate struct {
	Year                *int     `json:"year,omitempty"`
	Make                *string  `json:"make,omitempty"`
	Model               *string  `json:"model,omitempty"`
	Trim                *string  `json:"trim,omitempty"`
	ListPrice           *float64 `json:"list_price,omitempty"`
	WholesaleExitPrice  *float64 `json:"wholesale_exit_price,omitempty"`
	MinAcceptableMargin *float64 `json:"min_acceptable_margin,omitempty"`
	Mileage             *int     `json:"mileage,omitempty"`
	Status              *string  `json:"status,omitempty"`
	DateSold            string   `json:"date_sold,omitempty"`
	SoldPrice           *float64 `json:"sold_price,omitempty"`
}

// VehicleInsight is the list-view projection: vehicle identity plus the
// latest analysis highlights, all analysis fields absent until a report
// exists for the vehicle.
type VehicleInsight struct {
	VehicleID       int      `json:"vehicle_id"`
	VIN             string   `json:"vin"`
	Year            int      `json:"year"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	Trim            string   `json:"trim"`
	Status          string   `json:"status"`
	DaysInInventory int      `json:"days_in_inventory"`
	ListPrice       float64  `json:"list_price"`
	AcquisitionCost float64  `json:"acquisition_cost"`
	ReconCost       float64  `json:"recon_cost"`
	P30             *float64 `json:"p30"`
	P60             *float64 `json:"p60"`
	P90             *float64 `json:"p90"`
	AgingClass      *string  `json:"aging_class"`
	DailyCarryCost  *float64 `json:"daily_carry_cost"`
	InflectionDay   *int     `json:"inflection_day"`
	PriceAction     *string  `json:"price_action"`
	OneLineAction   *string  `json:"one_line_action"`
}

type DailyCurvePoint struct {
	Day                       int     `json:"day"`
	DailySellProbability      float64 `json:"daily_sell_probability"`
	CumulativeSellProbability float64 `json:"cumulative_sell_probability"`
	FloorplanCostToDate       float64 `json:"floorplan_cost_to_date"`
	GrossErosionToDate        float64 `json:"gross_erosion_to_date"`
}

type AnalysisReport struct {
	ID        int `json:"id"`
	VehicleID int `json:"vehicle_id"`

	P30 float64 `json:"p30"`
	P60 float64 `json:"p60"`
	P90 float64 `json:"p90"`

	AgingClass     string  `json:"aging_class"`
	DailyCarryCost float64 `json:"daily_carry_cost"`
	CarryCost30    float64 `json:"carry_cost_30"`
	CarryCost60    float64 `json:"carry_cost_60"`
	CarryCost90    float64 `json:"carry_cost_90"`
	MarginErosion30 float64 `json:"margin_erosion_30"`
	MarginErosion60 float64 `json:"margin_erosion_60"`
	MarginErosion90 float64 `json:"margin_erosion_90"`
	InflectionDay   int     `json:"inflection_day"`

	PriceAction            string  `json:"price_action"`
	PriceChangeAmount      float64 `json:"price_change_amount"`
	PriceActionLiftP       float64 `json:"price_action_lift_p"`
	PriceActionGrossImpact float64 `json:"price_action_gross_impact"`
	PriceElasticity        string  `json:"price_elasticity"`
	ElasticityReason       string  `json:"elasticity_reason"`

	OptimalExit       string  `json:"optimal_exit"`
	ExitExpectedGross float64 `json:"exit_expected_gross"`
	ExitExpectedDays  float64 `json:"exit_expected_days"`
	ExitReason        string  `json:"exit_reason"`

	ActionPlan     []string `json:"action_plan"`
	Risks          []string `json:"risks"`
	ChangeTriggers []string `json:"change_triggers"`
	Confidence     string   `json:"confidence"`

	DailyCurve []DailyCurvePoint `json:"daily_curve"`

	ComputedAt string `json:"computed_at"`
}

// CurveResponse is the lightweight curve-only payload used when a full
// analyze call is unavailable.
type CurveResponse struct {
	VehicleID int               `json:"vehicle_id"`
	Days      int               `json:"days"`
	Curve     []DailyCurvePoint `json:"curve"`
}

type Comp struct {
	ID            int      `json:"id"`
	VehicleID     int      `json:"vehicle_id"`
	Source        string   `json:"source"` // auto | manual
	VIN           string   `json:"vin"`
	Year          int      `json:"year"`
	Make          string   `json:"make"`
	Model         string   `json:"model"`
	Trim          string   `json:"trim"`
	Mileage       int      `json:"mileage"`
	Price         float64  `json:"price"`
	SoldPrice     *float64 `json:"sold_price"`
	DaysOnMarket  int      `json:"days_on_market"`
	DistanceMiles float64  `json:"distance_miles"`
	DealerName    string   `json:"dealer_name"`
	ListingStatus string   `json:"listing_status"` // active | sold | delisted
	FoundAt       string   `json:"found_at"`
}

// CompManualAdd is a dealer-entered comparable listing.
type CompManualAdd struct {
	Year          *int     `json:"year,omitempty"`
	Make          string   `json:"make,omitempty"`
	Model         string   `json:"model,omitempty"`
	Trim          string   `json:"trim,omitempty"`
	Mileage       *int     `json:"mileage,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	SoldPrice     *float64 `json:"sold_price,omitempty"`
	DaysOnMarket  *int     `json:"days_on_market,omitempty"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
	DealerName    string   `json:"dealer_name,omitempty"`
	ListingStatus string   `json:"listing_status,omitempty"`
}

type CompSummary struct {
	ID               int      `json:"id"`
	VehicleID        int      `json:"vehicle_id"`
	AutoCount        int      `json:"auto_count"`
	ManualCount      int      `json:"manual_count"`
	MedianPrice      *float64 `json:"median_price"`
	MeanPrice        *float64 `json:"mean_price"`
	LowPrice         *float64 `json:"low_price"`
	HighPrice        *float64 `json:"high_price"`
	MedianDaysToSale *float64 `json:"median_days_to_sale"`
	SupplyCount      int      `json:"supply_count"`
	DemandScore      float64  `json:"demand_score"`
	SupplyVsDemand   string   `json:"supply_vs_demand"`
	DiscrepancyFlag  bool     `json:"discrepancy_flag"`
	DiscrepancyNote  string   `json:"discrepancy_note"`
	WeightedSource   string   `json:"weighted_source"`
	WeightReason     string   `json:"weight_reason"`
	ComputedAt       string   `json:"computed_at"`
}

type Signals struct {
	ID         int    `json:"id"`
	VehicleID  int    `json:"vehicle_id"`
	ViewsTotal int    `json:"views_total"`
	ViewsLast7 int    `json:"views_last_7"`
	LeadsTotal int    `json:"leads_total"`
	LeadsLast7 int    `json:"leads_last_7"`
	TestDrives int    `json:"test_drives"`
	Notes      string `json:"notes"`
	UpdatedAt  string `json:"updated_at"`
}

type SignalsUpdate struct {
	ViewsTotal *int   `json:"views_total,omitempty"`
	ViewsLast7 *int   `json:"views_last_7,omitempty"`
	LeadsTotal *int   `json:"leads_total,omitempty"`
	LeadsLast7 *int   `json:"leads_last_7,omitempty"`
	TestDrives *int   `json:"test_drives,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type WaterfallStep struct {
	Step                    int     `json:"step"`
	TriggerDay              int     `json:"trigger_day"`
	TriggerCondition        string  `json:"trigger_condition"`
	CurrentPrice            float64 `json:"current_price"`
	NewPrice                float64 `json:"new_price"`
	DollarChange            float64 `json:"dollar_change"`
	ExpectedProbabilityLift float64 `json:"expected_probability_lift"`
	ExpectedDaysSaved       float64 `json:"expected_days_saved"`
	PriceFloor              float64 `json:"price_floor"`
	StopCondition           string  `json:"stop_condition"`
}

// StopReached reports whether the step marks the point where wholesale exit
// beats continuing the retail waterfall.
func (s WaterfallStep) StopReached() bool {
	return strings.HasPrefix(s.StopCondition, "Wholesale")
}

type WaterfallPlan struct {
	VehicleID          int             `json:"vehicle_id"`
	CurrentPrice       float64         `json:"current_price"`
	TotalCost          float64         `json:"total_cost"`
	WholesaleExitPrice float64         `json:"wholesale_exit_price"`
	Steps              []WaterfallStep `json:"steps"`
	Recommendation     string          `json:"recommendation"`
}

type PriceEvent struct {
	ID           int     `json:"id"`
	VehicleID    int     `json:"vehicle_id"`
	DealershipID int     `json:"dealership_id"`
	EventType    string  `json:"event_type"` // waterfall_reduction | manual_override | status_change
	OldPrice     float64 `json:"old_price"`
	NewPrice     float64 `json:"new_price"`
	Reason       string  `json:"reason"`
	TriggeredBy  string  `json:"triggered_by"`
	CreatedAt    string  `json:"created_at"`
}

type AlarmBurner struct {
	VehicleID  int     `json:"vehicle_id"`
	VIN        string  `json:"vin"`
	Year       int     `json:"year"`
	Make       string  `json:"make"`
	Model      string  `json:"model"`
	DailyCost  float64 `json:"daily_cost"`
	Days       int     `json:"days"`
	TotalCarry float64 `json:"total_carry"`
	NetGross   float64 `json:"net_gross"`
}

type UnderwaterVehicle struct {
	VehicleID int     `json:"vehicle_id"`
	VIN       string  `json:"vin"`
	Year      int     `json:"year"`
	Make      string  `json:"make"`
	Model     string  `json:"model"`
	NetGross  float64 `json:"net_gross"`
	Days      int     `json:"days"`
}

type ThresholdCrossing struct {
	VehicleID int    `json:"vehicle_id"`
	VIN       string `json:"vin"`
	Days      int    `json:"days"`
}

type Alarm struct {
	ID                 int                            `json:"id"`
	DealershipID       int                            `json:"dealership_id"`
	AlarmDate          string                         `json:"alarm_date"`
	TotalActiveUnits   int                            `json:"total_active_units"`
	TotalDailyBurn     float64                        `json:"total_daily_burn"`
	ProjectedBurn30    float64                        `json:"projected_burn_30"`
	ProjectedBurn60    float64                        `json:"projected_burn_60"`
	TopBurners         []AlarmBurner                  `json:"top_burners"`
	ThresholdCrossings map[string][]ThresholdCrossing `json:"threshold_crossings"`
	UnderwaterVehicles []UnderwaterVehicle            `json:"underwater_vehicles"`
	ExecutiveSummary   string                         `json:"executive_summary"`
	CreatedAt          string                         `json:"created_at"`
}

// MessageResponse is the gateway's generic acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
	Detail  any    `json:"detail"`
}
