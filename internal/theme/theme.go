package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the semantic color palette for the entire TUI.
type Theme struct {
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

var Default = Theme{
	Base:    lipgloss.Color("#1C1B22"),
	Surface: lipgloss.Color("#2A2933"),
	Overlay: lipgloss.Color("#383741"),
	Border:  lipgloss.Color("#4D4C57"),
	Muted:   lipgloss.Color("#858392"),
	Text:    lipgloss.Color("#DFDBDD"),
	Subtext: lipgloss.Color("#BFBCC8"),
	Primary: lipgloss.Color("#3F8CFF"),
	Accent:  lipgloss.Color("#9A6BFF"),
	Success: lipgloss.Color("#2ECC8F"),
	Warning: lipgloss.Color("#FFC53D"),
	Error:   lipgloss.Color("#F25D94"),
	Info:    lipgloss.Color("#00CED1"),
}

// AgingColor maps a vehicle aging class to its badge color. Unknown classes
// render in the muted color but are still shown literally.
func (t Theme) AgingColor(class string) lipgloss.Color {
	switch class {
	case "healthy":
		return t.Success
	case "at_risk":
		return t.Warning
	case "danger":
		return t.Error
	}
	return t.Muted
}

// PriceActionColor maps a recommended price action to its badge color.
func (t Theme) PriceActionColor(action string) lipgloss.Color {
	switch action {
	case "hold":
		return t.Info
	case "reduce":
		return t.Warning
	case "increase":
		return t.Success
	}
	return t.Muted
}

// GradientText applies a horizontal color gradient across each line of text.
func GradientText(text string, from, to lipgloss.Color) string {
	fr, fg, fb := hexToRGB(string(from))
	tr, tg, tb := hexToRGB(string(to))

	lines := strings.Split(text, "\n")
	var result []string

	for _, line := range lines {
		runes := []rune(line)
		n := len(runes)
		if n == 0 {
			result = append(result, "")
			continue
		}

		var sb strings.Builder
		for i, r := range runes {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			cr := uint8(math.Round(float64(fr) + t*float64(int(tr)-int(fr))))
			cg := uint8(math.Round(float64(fg) + t*float64(int(tg)-int(fg))))
			cb := uint8(math.Round(float64(fb) + t*float64(int(tb)-int(fb))))

			color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", cr, cg, cb))
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(r)))
		}
		result = append(result, sb.String())
	}
	return strings.Join(result, "\n")
}

func hexToRGB(hex string) (uint8, uint8, uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
