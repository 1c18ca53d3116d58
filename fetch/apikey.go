package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/source"
)

// fetchAPI reads usage through the provider's API using a direct API key
// from the environment.
func (c *Client) fetchAPI(ctx context.Context, info provider.Info) ([]provider.Payload, error) {
	if info.APIKeyEnv == "" {
		return nil, fmt.Errorf("provider %s has no API key support", info.ID)
	}
	if info.UsageURL == "" {
		return nil, fmt.Errorf("provider %s has no usage endpoint", info.ID)
	}

	key := os.Getenv(info.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("env %s is not set", info.APIKeyEnv)
	}

	doc, err := c.fetchBearer(ctx, info.UsageURL, key)
	if err != nil {
		return nil, err
	}
	return []provider.Payload{payloadFromDoc(info.ID, source.ModeAPI, doc, time.Now())}, nil
}
