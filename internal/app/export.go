package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"lotpulse-tui/internal/api"
)

// ExportInsightsCSV writes the dashboard insight rows to path as CSV,
// mirroring the columns the vehicle table shows plus cost fields.
func ExportInsightsCSV(path string, insights []api.VehicleInsight) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"vehicle_id", "vin", "year", "make", "model", "trim",
		"days_in_inventory", "list_price", "acquisition_cost", "recon_cost",
		"p30", "p60", "p90", "aging_class", "daily_carry_cost",
		"inflection_day", "price_action", "one_line_action",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, ins := range insights {
		row := []string{
			strconv.Itoa(ins.VehicleID),
			ins.VIN,
			strconv.Itoa(ins.Year),
			ins.Make,
			ins.Model,
			ins.Trim,
			strconv.Itoa(ins.DaysInInventory),
			formatFloat(ins.ListPrice),
			formatFloat(ins.AcquisitionCost),
			formatFloat(ins.ReconCost),
			formatFloatPtr(ins.P30),
			formatFloatPtr(ins.P60),
			formatFloatPtr(ins.P90),
			stringPtr(ins.AgingClass),
			formatFloatPtr(ins.DailyCarryCost),
			intPtr(ins.InflectionDay),
			stringPtr(ins.PriceAction),
			stringPtr(ins.OneLineAction),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func stringPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
