package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bernd/codexbar/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher scripts per-provider results and records call order.
type fakeFetcher struct {
	usage       map[provider.ID][]provider.Payload
	usageErr    map[provider.ID]error
	health      map[provider.ID]provider.StatusIndicator
	healthErr   map[provider.ID]error
	usageCalls  []provider.ID
	healthCalls []provider.ID
}

func (f *fakeFetcher) Usage(_ context.Context, req FetchRequest) ([]provider.Payload, error) {
	f.usageCalls = append(f.usageCalls, req.Provider)
	if err := f.usageErr[req.Provider]; err != nil {
		return nil, err
	}
	return f.usage[req.Provider], nil
}

func (f *fakeFetcher) Health(_ context.Context, id provider.ID) (provider.StatusIndicator, error) {
	f.healthCalls = append(f.healthCalls, id)
	if err := f.healthErr[id]; err != nil {
		return provider.StatusUnknown, err
	}
	return f.health[id], nil
}

func okPayload(id provider.ID, used float64) provider.Payload {
	return provider.Payload{
		Provider: id,
		Source:   "cli",
		Usage: &provider.UsageSnapshot{
			Primary:   &provider.UsageWindow{UsedPercent: used},
			UpdatedAt: time.Now(),
		},
	}
}

func selection(ids ...provider.ID) Selection {
	return Selection{Providers: ids, Accounts: DefaultAccount()}
}

func TestRunPreservesProviderOrder(t *testing.T) {
	f := &fakeFetcher{usage: map[provider.ID][]provider.Payload{
		provider.Claude: {okPayload(provider.Claude, 10)},
		provider.Codex:  {okPayload(provider.Codex, 20)},
		provider.Cursor: {okPayload(provider.Cursor, 30)},
	}}

	payloads, outcome := Run(context.Background(), f, selection(provider.Claude, provider.Codex, provider.Cursor), Options{})
	require.Len(t, payloads, 3)
	assert.Equal(t, Success, outcome)
	assert.Equal(t, []provider.ID{provider.Claude, provider.Codex, provider.Cursor}, f.usageCalls)
	assert.Equal(t, provider.Claude, payloads[0].Provider)
	assert.Equal(t, provider.Codex, payloads[1].Provider)
	assert.Equal(t, provider.Cursor, payloads[2].Provider)
}

func TestRunIsolatesFailures(t *testing.T) {
	f := &fakeFetcher{
		usage: map[provider.ID][]provider.Payload{
			provider.Codex:  {okPayload(provider.Codex, 20)},
			provider.Cursor: {okPayload(provider.Cursor, 30)},
		},
		usageErr: map[provider.ID]error{
			provider.Claude: errors.New("connection refused"),
		},
	}

	payloads, outcome := Run(context.Background(), f, selection(provider.Codex, provider.Claude, provider.Cursor), Options{})

	// One provider failing never prevents fetching the others.
	require.Len(t, payloads, 3)
	assert.Equal(t, Failure, outcome)
	assert.False(t, payloads[0].Failed())
	assert.True(t, payloads[1].Failed())
	assert.False(t, payloads[2].Failed())
	assert.Equal(t, "provider", payloads[1].Error.Kind)
	assert.Contains(t, payloads[1].Error.Message, "connection refused")
	assert.Len(t, f.usageCalls, 3)
}

func TestRunEmptyResultIsAFailure(t *testing.T) {
	f := &fakeFetcher{}
	payloads, outcome := Run(context.Background(), f, selection(provider.Codex), Options{})
	require.Len(t, payloads, 1)
	assert.Equal(t, Failure, outcome)
	assert.True(t, payloads[0].Failed())
}

func TestRunStatusFlag(t *testing.T) {
	t.Run("health precedes usage and attaches the indicator", func(t *testing.T) {
		f := &fakeFetcher{
			usage:  map[provider.ID][]provider.Payload{provider.Codex: {okPayload(provider.Codex, 20)}},
			health: map[provider.ID]provider.StatusIndicator{provider.Codex: provider.StatusMinor},
		}
		payloads, _ := Run(context.Background(), f, selection(provider.Codex), Options{IncludeStatus: true})
		require.Len(t, payloads, 1)
		require.NotNil(t, payloads[0].Status)
		assert.Equal(t, provider.StatusMinor, payloads[0].Status.Indicator)
		assert.Equal(t, []provider.ID{provider.Codex}, f.healthCalls)
	})

	t.Run("health failure omits the indicator without failing the provider", func(t *testing.T) {
		f := &fakeFetcher{
			usage:     map[provider.ID][]provider.Payload{provider.Codex: {okPayload(provider.Codex, 20)}},
			healthErr: map[provider.ID]error{provider.Codex: errors.New("status page down")},
		}
		payloads, outcome := Run(context.Background(), f, selection(provider.Codex), Options{IncludeStatus: true})
		require.Len(t, payloads, 1)
		assert.Equal(t, Success, outcome)
		assert.Nil(t, payloads[0].Status)
	})

	t.Run("no health calls without the flag", func(t *testing.T) {
		f := &fakeFetcher{usage: map[provider.ID][]provider.Payload{provider.Codex: {okPayload(provider.Codex, 20)}}}
		Run(context.Background(), f, selection(provider.Codex), Options{})
		assert.Empty(t, f.healthCalls)
	})
}

func TestRunAllAccountsExpandsOneProvider(t *testing.T) {
	f := &fakeFetcher{usage: map[provider.ID][]provider.Payload{
		provider.Codex: {
			func() provider.Payload { p := okPayload(provider.Codex, 20); p.Account = "work"; return p }(),
			func() provider.Payload { p := okPayload(provider.Codex, 40); p.Account = "personal"; return p }(),
		},
	}}

	sel := Selection{Providers: []provider.ID{provider.Codex}, Accounts: AccountSelection{Kind: AccountAll}}
	payloads, outcome := Run(context.Background(), f, sel, Options{})
	require.Len(t, payloads, 2)
	assert.Equal(t, Success, outcome)
	assert.Equal(t, "work", payloads[0].Account)
	assert.Equal(t, "personal", payloads[1].Account)
}
