package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bernd/codexbar/config"
	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/source"
)

// fetchWeb reads the provider's web-dashboard usage endpoint. The caller's
// web timeout is the sole per-call cancellation mechanism; exceeding it
// surfaces as a provider-level error.
func (c *Client) fetchWeb(ctx context.Context, info provider.Info, timeout time.Duration) ([]provider.Payload, error) {
	if info.UsageURL == "" {
		return nil, fmt.Errorf("provider %s has no web dashboard endpoint", info.ID)
	}
	if timeout <= 0 {
		timeout = config.DefaultWebTimeout * time.Second
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, info.UsageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.webc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("web fetch timed out after %s", timeout)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", info.UsageURL, resp.Status)
	}

	doc, err := decodeUsage(resp.Body)
	if err != nil {
		return nil, err
	}
	return []provider.Payload{payloadFromDoc(info.ID, source.ModeWeb, doc, time.Now())}, nil
}
