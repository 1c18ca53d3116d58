package panel

import (
	"fmt"
	"math"
	"strings"

	"github.com/bernd/codexbar/provider"
)

// Blocks renders a payload as multi-line detail text for the usage text
// format and the watch screen: one row per window with a 10-cell meter,
// then credits and account where present.
func Blocks(p provider.Payload) []string {
	title := provider.DisplayName(p.Provider)
	if p.Account != "" {
		title += " (" + p.Account + ")"
	}
	lines := []string{title}

	if p.Failed() {
		lines = append(lines, "  Error: "+p.Error.Message)
		return lines
	}

	var primary, secondary *provider.UsageWindow
	if p.Usage != nil {
		primary = p.Usage.Primary
		secondary = p.Usage.Secondary
	}
	lines = append(lines, "  "+windowRow("Session", primary))
	lines = append(lines, "  "+windowRow("Weekly", secondary))

	if p.Credits != nil {
		lines = append(lines, fmt.Sprintf("  Credits  %s", formatCredits(p.Credits.Remaining)))
	}
	if p.Usage != nil && p.Usage.AccountEmail != "" {
		lines = append(lines, fmt.Sprintf("  Account  %s", p.Usage.AccountEmail))
	}
	if p.Status != nil {
		if marker, ok := statusMarkers[p.Status.Indicator]; ok {
			lines = append(lines, fmt.Sprintf("  Health   %s %s", marker, p.Status.Indicator))
		}
	}

	return lines
}

func windowRow(title string, w *provider.UsageWindow) string {
	if w == nil {
		return fmt.Sprintf("%s: --", title)
	}
	remaining := remainingPercent(*w)
	row := fmt.Sprintf("%-8s %3d%%  %s", title, remaining, meter(remaining))
	if w.ResetDescription != "" {
		row += "  ↺ " + w.ResetDescription
	}
	return row
}

// meter draws a 10-cell bar of remaining capacity.
func meter(remaining int) string {
	filled := int(math.Round(float64(remaining) / 10))
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("·", 10-filled)
}
