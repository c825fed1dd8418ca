package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketAverage(t *testing.T) {
	t.Run("short input passes through", func(t *testing.T) {
		in := []float64{1, 2, 3}
		out := bucketAverage(in, 10)
		assert.Equal(t, in, out)
		out[0] = 99
		assert.Equal(t, 1.0, in[0], "input must not be aliased")
	})

	t.Run("downsamples by averaging", func(t *testing.T) {
		in := []float64{1, 1, 3, 3, 5, 5}
		out := bucketAverage(in, 3)
		assert.Equal(t, []float64{1, 3, 5}, out)
	})
}

func TestRenderCurveChart(t *testing.T) {
	values := make([]float64, 90)
	for i := range values {
		values[i] = float64(i) / 90
	}

	out := renderCurveChart(values, 30, 4, -1, lipgloss.Color("2"), lipgloss.Color("1"))
	require.NotEmpty(t, out)

	lines := strings.Split(out, "\n")
	assert.LessOrEqual(t, len(lines), 4)
}

func TestRenderCurveChart_Degenerate(t *testing.T) {
	assert.Empty(t, renderCurveChart(nil, 30, 4, -1, lipgloss.Color("2"), lipgloss.Color("1")))
	assert.Empty(t, renderCurveChart([]float64{0.5}, 0, 4, -1, lipgloss.Color("2"), lipgloss.Color("1")))
	assert.NotPanics(t, func() {
		renderCurveChart([]float64{0, 0, 0}, 10, 3, 1, lipgloss.Color("2"), lipgloss.Color("1"))
	})
}
