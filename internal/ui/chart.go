package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Block elements give 1/8-cell vertical resolution.
var blockChars = [9]rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderCurveChart plots values as a filled area chart of width x height
// character cells. Columns at or past markerCol (e.g. the inflection day)
// are drawn in markerColor; -1 disables the marker.
func renderCurveChart(values []float64, width, height, markerCol int, color, markerColor lipgloss.Color) string {
	if len(values) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	cols := bucketAverage(values, width)

	maxVal := cols[0]
	for _, v := range cols {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	totalLevels := height * 8
	scaled := make([]int, len(cols))
	for i, v := range cols {
		s := int(v / maxVal * float64(totalLevels))
		if s < 1 {
			s = 1
		}
		if s > totalLevels {
			s = totalLevels
		}
		scaled[i] = s
	}

	// Map the marker from value index space to column space.
	marker := -1
	if markerCol >= 0 && len(values) > 0 {
		marker = markerCol * len(cols) / len(values)
	}

	var rows []string
	for row := 0; row < height; row++ {
		rowBottom := (height - 1 - row) * 8
		var sb strings.Builder
		for col := range scaled {
			fill := scaled[col] - rowBottom
			if fill <= 0 {
				sb.WriteRune(' ')
				continue
			}
			if fill > 8 {
				fill = 8
			}
			c := color
			if marker >= 0 && col >= marker {
				c = markerColor
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(blockChars[fill])))
		}
		rows = append(rows, sb.String())
	}

	// Drop fully empty rows at the top.
	start := 0
	for start < len(rows)-1 && strings.TrimSpace(rows[start]) == "" {
		start++
	}
	return strings.Join(rows[start:], "\n")
}

// bucketAverage reduces values to n points by averaging buckets.
func bucketAverage(values []float64, n int) []float64 {
	if len(values) <= n {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}

	out := make([]float64, n)
	size := float64(len(values)) / float64(n)
	for i := 0; i < n; i++ {
		start := int(float64(i) * size)
		end := int(float64(i+1) * size)
		if end > len(values) {
			end = len(values)
		}
		sum := 0.0
		for j := start; j < end; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
