package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/bernd/codexbar/config"
	"github.com/bernd/codexbar/fetch"
	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/report"
	"github.com/bernd/codexbar/source"
)

// loadConfig reads the config file named by --config, falling back to the
// XDG default location.
func loadConfig(cmd *cli.Command) (*config.Config, string, error) {
	path := cmd.String("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, path, nil
}

// buildRequest assembles the raw resolver input from flags and config.
// Explicit flags win; the config file only fills gaps.
func buildRequest(cmd *cli.Command, cfg *config.Config) source.Request {
	providers := cmd.StringSlice("provider")
	if len(providers) == 0 {
		providers = cfg.Providers
	}
	return source.Request{
		Providers:    providers,
		Source:       cmd.String("source"),
		SourceSet:    cmd.IsSet("source"),
		AccountLabel: cmd.String("account"),
		AccountIndex: cmd.Int("account-index"),
		IndexSet:     cmd.IsSet("account-index"),
		AllAccounts:  cmd.Bool("all-accounts"),
	}
}

func webTimeout(cmd *cli.Command, cfg *config.Config) time.Duration {
	secs := cfg.WebTimeout
	if cmd.IsSet("web-timeout") {
		secs = cmd.Int("web-timeout")
	}
	return time.Duration(secs) * time.Second
}

// fetchPayloads runs the resolve-then-fetch pipeline shared by panel and
// usage. Resolution errors are fatal: nothing has been fetched yet and no
// output is owed.
func fetchPayloads(ctx context.Context, cmd *cli.Command, cfg *config.Config) ([]provider.Payload, source.Outcome, error) {
	sel, err := source.Resolve(buildRequest(cmd, cfg), source.DetectHost(), cfg.AccountLabels())
	if err != nil {
		return nil, source.Failure, err
	}

	client := fetch.New(cfg, cmd.Bool("verbose"))
	payloads, outcome := source.Run(ctx, client, sel, source.Options{
		IncludeStatus: cmd.Bool("status"),
		WebTimeout:    webTimeout(cmd, cfg),
		Verbose:       cmd.Bool("verbose"),
	})
	return payloads, outcome, nil
}

// exitFor defers the non-zero exit for a failed batch until after output has
// been written, so partial data still reaches the panel.
func exitFor(outcome source.Outcome) error {
	if outcome == source.Failure {
		return &report.ExitError{Code: report.ExitFailure, Kind: report.KindProvider}
	}
	return nil
}
