package app

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotpulse-tui/internal/api"
)

func TestExportInsightsCSV(t *testing.T) {
	p30 := 0.42
	aging := api.AgingAtRisk

	insights := []api.VehicleInsight{
		{
			VehicleID:       1,
			VIN:             "1FTEW1EP5NKD73911",
			Year:            2022,
			Make:            "Ford",
			Model:           "F-150",
			DaysInInventory: 45,
			ListPrice:       42990,
			P30:             &p30,
			AgingClass:      &aging,
		},
		{
			// Never analyzed: all optional columns stay empty.
			VehicleID: 2,
			VIN:       "3GNAXUEV5LL231908",
			Year:      2020,
			Make:      "Chevrolet",
			Model:     "Equinox",
			ListPrice: 18500,
		},
	}

	path := filepath.Join(t.TempDir(), "insights.csv")
	require.NoError(t, ExportInsightsCSV(path, insights))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "vehicle_id", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "42990.00", rows[1][7])
	assert.Equal(t, "0.42", rows[1][10])
	assert.Equal(t, api.AgingAtRisk, rows[1][13])

	assert.Empty(t, rows[2][10], "p30 must be blank for an unanalyzed vehicle")
	assert.Empty(t, rows[2][13])
}

func TestExportInsightsCSV_BadPath(t *testing.T) {
	err := ExportInsightsCSV(filepath.Join(t.TempDir(), "missing", "insights.csv"), nil)
	assert.Error(t, err)
}
