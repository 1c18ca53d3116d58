// Package panel renders fetched payloads into display text. Everything here
// is pure: same payloads in, same string out.
package panel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bernd/codexbar/provider"
)

// DefaultSeparator joins provider segments unless overridden.
const DefaultSeparator = " | "

// statusMarkers maps a health indicator to its panel suffix. StatusNone
// renders nothing.
var statusMarkers = map[provider.StatusIndicator]string{
	provider.StatusMinor:       "~",
	provider.StatusMajor:       "!",
	provider.StatusCritical:    "!!",
	provider.StatusMaintenance: "M",
	provider.StatusUnknown:     "?",
}

// Line renders the compact panel line: one segment per payload, joined by
// separator, in input order. includeProviderName prefixes each segment with
// the provider's display name; callers force it on for multi-provider output
// so segments stay unambiguous.
func Line(payloads []provider.Payload, separator string, includeProviderName bool) string {
	segments := make([]string, 0, len(payloads))
	for _, p := range payloads {
		segments = append(segments, segment(p, includeProviderName))
	}
	return strings.Join(segments, separator)
}

func segment(p provider.Payload, includeProviderName bool) string {
	// All-accounts expansion repeats the provider, so the account label is
	// the only thing keeping those segments apart.
	var prefix string
	switch {
	case includeProviderName && p.Account != "":
		prefix = provider.DisplayName(p.Provider) + ":" + p.Account + " "
	case includeProviderName:
		prefix = provider.DisplayName(p.Provider) + " "
	case p.Account != "":
		prefix = p.Account + " "
	}

	// Error takes total precedence: no usage, credits, or status is rendered
	// even if a buggy collaborator populated them.
	if p.Failed() {
		return prefix + "ERR"
	}

	seg := prefix + usageText(p.Usage)

	if provider.HasCredits(p.Provider) && p.Credits != nil {
		seg += " $" + formatCredits(p.Credits.Remaining)
	}

	if p.Status != nil {
		if marker, ok := statusMarkers[p.Status.Indicator]; ok {
			seg += " " + marker
		}
	}

	return seg
}

func usageText(u *provider.UsageSnapshot) string {
	if u == nil {
		return "--"
	}
	switch {
	case u.Primary != nil && u.Secondary != nil:
		return fmt.Sprintf("%d%%/%d%%", remainingPercent(*u.Primary), remainingPercent(*u.Secondary))
	case u.Primary != nil:
		return fmt.Sprintf("%d%%", remainingPercent(*u.Primary))
	case u.Secondary != nil:
		// The w marks a weekly-only reading so it can't be mistaken for the
		// session window.
		return fmt.Sprintf("w%d%%", remainingPercent(*u.Secondary))
	default:
		return "--"
	}
}

// remainingPercent rounds 100-used to the nearest integer, half away from
// zero, clamped to [0,100].
func remainingPercent(w provider.UsageWindow) int {
	return int(math.Round(w.RemainingPercent()))
}

// formatCredits renders a balance without locale formatting or trailing
// zeros: 42 -> "42", 42.5 -> "42.5".
func formatCredits(remaining float64) string {
	return strconv.FormatFloat(remaining, 'f', -1, 64)
}
