package fetch

import (
	"context"
	"testing"

	"github.com/bernd/codexbar/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthWithoutStatusPage(t *testing.T) {
	c := testClient(t)

	t.Run("unknown provider", func(t *testing.T) {
		ind, err := c.Health(context.Background(), provider.ID("bogus"))
		require.Error(t, err)
		assert.Equal(t, provider.StatusUnknown, ind)
	})

	t.Run("provider without a status page", func(t *testing.T) {
		ind, err := c.Health(context.Background(), provider.Kiro)
		require.Error(t, err)
		assert.Equal(t, provider.StatusUnknown, ind)
	})
}
