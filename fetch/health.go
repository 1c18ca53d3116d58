package fetch

import (
	"context"
	"fmt"

	"github.com/bernd/codexbar/provider"
)

// statusDoc is the statuspage-style health document.
type statusDoc struct {
	Status struct {
		Indicator string `json:"indicator"`
	} `json:"status"`
}

// Health fetches the provider's service-health indicator from its status
// page.
func (c *Client) Health(ctx context.Context, id provider.ID) (provider.StatusIndicator, error) {
	info, ok := provider.Lookup(id)
	if !ok {
		return provider.StatusUnknown, fmt.Errorf("unknown provider %q", id)
	}
	if info.StatusURL == "" {
		return provider.StatusUnknown, fmt.Errorf("provider %s has no status page", id)
	}

	var doc statusDoc
	if err := c.getJSON(ctx, info.StatusURL, nil, &doc); err != nil {
		return provider.StatusUnknown, err
	}
	return parseIndicator(doc.Status.Indicator), nil
}

func parseIndicator(raw string) provider.StatusIndicator {
	switch provider.StatusIndicator(raw) {
	case provider.StatusNone, provider.StatusMinor, provider.StatusMajor,
		provider.StatusCritical, provider.StatusMaintenance:
		return provider.StatusIndicator(raw)
	default:
		return provider.StatusUnknown
	}
}
