package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotpulse-tui/internal/api"
)

func TestAnalyzeAll_RefreshGatesAnalyze(t *testing.T) {
	gw := &fakeGateway{refreshAllErr: errors.New("comp source down")}

	err := AnalyzeAll(context.Background(), gw)
	require.Error(t, err)
	assert.True(t, gw.called("RefreshAllComps"))
	assert.False(t, gw.called("AnalyzeAll"), "analyze-all must never run after a failed comp refresh")
}

func TestAnalyzeAll_RunsInOrder(t *testing.T) {
	gw := &fakeGateway{}

	require.NoError(t, AnalyzeAll(context.Background(), gw))
	assert.Equal(t, []string{"RefreshAllComps", "AnalyzeAll"}, gw.calls)
}

func TestAnalyzeAll_AnalyzeFailureSurfaces(t *testing.T) {
	gw := &fakeGateway{analyzeAllErr: errors.New("model down")}

	err := AnalyzeAll(context.Background(), gw)
	assert.ErrorContains(t, err, "analyze all")
}

func TestRunFleetAlarm_ReturnsLatest(t *testing.T) {
	gw := &fakeGateway{
		runAlarmRes: api.Alarm{ID: 10},
		latestAlarm: api.Alarm{ID: 11},
	}

	alarm, err := RunFleetAlarm(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, 11, alarm.ID)
	assert.Equal(t, []string{"RunAlarm", "GetLatestAlarm"}, gw.calls)
}

func TestRunFleetAlarm_FallsBackToRunResult(t *testing.T) {
	gw := &fakeGateway{
		runAlarmRes: api.Alarm{ID: 10},
		latestErr:   errors.New("flaky"),
	}

	alarm, err := RunFleetAlarm(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, 10, alarm.ID)
}

func TestRunFleetAlarm_RunFailure(t *testing.T) {
	gw := &fakeGateway{runAlarmErr: errors.New("boom")}

	_, err := RunFleetAlarm(context.Background(), gw)
	require.Error(t, err)
	assert.False(t, gw.called("GetLatestAlarm"))
}

func TestSubmitVehicle_RejectsBadVINWithoutNetwork(t *testing.T) {
	tests := []struct {
		name string
		vin  string
	}{
		{name: "16 characters", vin: "1FTEW1EP5NKD7391"},
		{name: "18 characters", vin: "1FTEW1EP5NKD739112"},
		{name: "empty", vin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			_, err := SubmitVehicle(context.Background(), gw, api.VINAddRequest{VIN: tt.vin})
			require.ErrorIs(t, err, ErrInvalidVIN)
			assert.Empty(t, gw.calls, "no network call may happen for an invalid VIN")
		})
	}
}

func TestSubmitVehicle_NormalizesVIN(t *testing.T) {
	gw := &fakeGateway{created: api.Vehicle{ID: 3, VIN: "1FTEW1EP5NKD73911"}}

	vehicle, err := SubmitVehicle(context.Background(), gw, api.VINAddRequest{VIN: " 1ftew1ep5nkd73911 "})
	require.NoError(t, err)
	assert.Equal(t, 3, vehicle.ID)
	assert.Contains(t, gw.calls, "CreateVehicleFromVIN:1FTEW1EP5NKD73911")
}

func TestSubmitVehicle_PrimingIsBestEffort(t *testing.T) {
	gw := &fakeGateway{
		created:    api.Vehicle{ID: 3, VIN: "1FTEW1EP5NKD73911"},
		refreshErr: errors.New("comp source down"),
	}

	vehicle, err := SubmitVehicle(context.Background(), gw, api.VINAddRequest{VIN: "1FTEW1EP5NKD73911"})
	require.NoError(t, err, "priming failure must not fail the submission")
	assert.Equal(t, 3, vehicle.ID)
	assert.False(t, gw.called("AnalyzeVehicle"), "analysis is skipped once comp refresh failed")
}

func TestSubmitVehicle_PrimesCompsAndAnalysis(t *testing.T) {
	gw := &fakeGateway{created: api.Vehicle{ID: 3}}

	_, err := SubmitVehicle(context.Background(), gw, api.VINAddRequest{VIN: "1FTEW1EP5NKD73911"})
	require.NoError(t, err)
	assert.True(t, gw.called("RefreshComps"))
	assert.True(t, gw.called("AnalyzeVehicle"))
}

func TestReanalyzeSteps(t *testing.T) {
	gw := &fakeGateway{
		report:  api.AnalysisReport{VehicleID: 7, P30: 0.5},
		summary: api.CompSummary{VehicleID: 7, AutoCount: 12},
		plan:    api.WaterfallPlan{VehicleID: 7, CurrentPrice: 28500},
	}

	res, err := RunReanalyzeStep(context.Background(), gw, 7, StepRefreshComps)
	require.NoError(t, err)
	assert.Nil(t, res.Report)

	res, err = RunReanalyzeStep(context.Background(), gw, 7, StepAnalyze)
	require.NoError(t, err)
	require.NotNil(t, res.Report)
	assert.Equal(t, 0.5, res.Report.P30)

	res, err = RunReanalyzeStep(context.Background(), gw, 7, StepCompSummary)
	require.NoError(t, err)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 12, res.Summary.AutoCount)

	res, err = RunReanalyzeStep(context.Background(), gw, 7, StepWaterfallPlan)
	require.NoError(t, err)
	require.NotNil(t, res.Plan)
	assert.Equal(t, 28500.0, res.Plan.CurrentPrice)
}

func TestReanalyzeStep_Order(t *testing.T) {
	step := StepRefreshComps
	var order []ReanalyzeStep
	for {
		order = append(order, step)
		next, ok := step.Next()
		if !ok {
			break
		}
		step = next
	}
	assert.Equal(t, []ReanalyzeStep{StepRefreshComps, StepAnalyze, StepCompSummary, StepWaterfallPlan}, order)
}

func TestReanalyzeStep_FailureCarriesStepName(t *testing.T) {
	gw := &fakeGateway{analyzeErr: errors.New("model down")}

	_, err := RunReanalyzeStep(context.Background(), gw, 7, StepAnalyze)
	assert.ErrorContains(t, err, "analyze")
}

func TestApplyWaterfallStep(t *testing.T) {
	gw := &fakeGateway{applied: api.Vehicle{ID: 7, ListPrice: 26900}}

	vehicle, err := ApplyWaterfallStep(context.Background(), gw, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, 26900.0, vehicle.ListPrice)

	gw = &fakeGateway{applyErr: errors.New("step gone")}
	_, err = ApplyWaterfallStep(context.Background(), gw, 7, 2)
	assert.ErrorContains(t, err, "apply step 2")
}
