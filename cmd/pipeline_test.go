package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/bernd/codexbar/config"
	"github.com/bernd/codexbar/source"
)

// parseFetchFlags runs a throwaway command so flag parsing happens exactly as
// it would in production, then hands the parsed command to fn.
func parseFetchFlags(t *testing.T, args []string, fn func(cmd *cli.Command)) {
	t.Helper()
	c := &cli.Command{
		Name:  "test",
		Flags: fetchFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fn(cmd)
			return nil
		},
	}
	require.NoError(t, c.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestBuildRequest(t *testing.T) {
	cfg := &config.Config{Providers: []string{"codex", "claude"}}

	t.Run("config providers fill the gap", func(t *testing.T) {
		parseFetchFlags(t, nil, func(cmd *cli.Command) {
			req := buildRequest(cmd, cfg)
			assert.Equal(t, []string{"codex", "claude"}, req.Providers)
			assert.False(t, req.SourceSet)
			assert.False(t, req.IndexSet)
		})
	})

	t.Run("provider flag wins over config", func(t *testing.T) {
		parseFetchFlags(t, []string{"--provider", "cursor"}, func(cmd *cli.Command) {
			req := buildRequest(cmd, cfg)
			assert.Equal(t, []string{"cursor"}, req.Providers)
		})
	})

	t.Run("source flag is marked as set", func(t *testing.T) {
		parseFetchFlags(t, []string{"--source", "web"}, func(cmd *cli.Command) {
			req := buildRequest(cmd, cfg)
			assert.True(t, req.SourceSet)
			assert.Equal(t, "web", req.Source)
		})
	})

	t.Run("account index zero is distinguishable from unset", func(t *testing.T) {
		parseFetchFlags(t, []string{"--account-index", "0"}, func(cmd *cli.Command) {
			req := buildRequest(cmd, cfg)
			assert.True(t, req.IndexSet)
			assert.Equal(t, 0, req.AccountIndex)
		})
	})

	t.Run("all accounts", func(t *testing.T) {
		parseFetchFlags(t, []string{"--all-accounts"}, func(cmd *cli.Command) {
			req := buildRequest(cmd, cfg)
			assert.True(t, req.AllAccounts)
		})
	})
}

func TestWebTimeout(t *testing.T) {
	cfg := &config.Config{WebTimeout: 45}

	t.Run("config value by default", func(t *testing.T) {
		parseFetchFlags(t, nil, func(cmd *cli.Command) {
			assert.Equal(t, 45*time.Second, webTimeout(cmd, cfg))
		})
	})

	t.Run("flag overrides config", func(t *testing.T) {
		parseFetchFlags(t, []string{"--web-timeout", "10"}, func(cmd *cli.Command) {
			assert.Equal(t, 10*time.Second, webTimeout(cmd, cfg))
		})
	})
}

func TestExitFor(t *testing.T) {
	assert.NoError(t, exitFor(source.Success))
	assert.Error(t, exitFor(source.Failure))
}
