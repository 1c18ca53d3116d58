package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	t.Run("known providers use the registry label", func(t *testing.T) {
		assert.Equal(t, "Codex", DisplayName(Codex))
		assert.Equal(t, "Claude", DisplayName(Claude))
		assert.Equal(t, "Droid", DisplayName(Factory))
		assert.Equal(t, "z.ai", DisplayName(ZAI))
	})

	t.Run("unknown providers fall back to the raw identifier", func(t *testing.T) {
		assert.Equal(t, "somebody-new", DisplayName(ID("somebody-new")))
	})
}

func TestCapabilities(t *testing.T) {
	assert.True(t, SupportsTokenAccounts(Codex))
	assert.True(t, SupportsTokenAccounts(Claude))
	assert.False(t, SupportsTokenAccounts(Cursor))

	assert.True(t, HasCredits(Codex))
	assert.False(t, HasCredits(Claude))
}

func TestParse(t *testing.T) {
	id, ok := Parse("claude")
	require.True(t, ok)
	assert.Equal(t, Claude, id)

	_, ok = Parse("netscape")
	assert.False(t, ok)
}

func TestAllIsOrderedAndStable(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	assert.Equal(t, Codex, all[0].ID)
	assert.Equal(t, Claude, all[1].ID)

	// Mutating the returned slice must not affect the registry.
	all[0].Name = "mutated"
	assert.Equal(t, "Codex", DisplayName(Codex))
}

func TestRemainingPercentClamps(t *testing.T) {
	assert.Equal(t, 70.0, UsageWindow{UsedPercent: 30}.RemainingPercent())
	assert.Equal(t, 0.0, UsageWindow{UsedPercent: 130}.RemainingPercent())
	assert.Equal(t, 100.0, UsageWindow{UsedPercent: -5}.RemainingPercent())
}

func TestErrPayloadCarriesNoResultData(t *testing.T) {
	p := ErrPayload(Claude, "web", "provider", "connection refused")
	assert.True(t, p.Failed())
	assert.Nil(t, p.Usage)
	assert.Nil(t, p.Credits)
	assert.Nil(t, p.Status)
	assert.Equal(t, "failure", p.Error.Code)
	assert.Equal(t, "provider", p.Error.Kind)
}
