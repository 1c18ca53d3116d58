package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/bernd/codexbar/fetch"
	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/source"
)

func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Print service health for the selected providers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file path (defaults to the XDG config directory)",
			},
			&cli.StringSliceFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "Provider to query (repeatable; \"all\" selects every known provider)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log fetch diagnostics to stderr",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			providers := cmd.StringSlice("provider")
			if len(providers) == 0 {
				providers = cfg.Providers
			}
			sel, err := source.Resolve(source.Request{Providers: providers}, source.DetectHost(), cfg.AccountLabels())
			if err != nil {
				return err
			}

			client := fetch.New(cfg, cmd.Bool("verbose"))
			writeHealth(ctx, os.Stdout, client, sel.Providers)
			return nil
		},
	}
}

type healthChecker interface {
	Health(ctx context.Context, id provider.ID) (provider.StatusIndicator, error)
}

// writeHealth prints one row per provider. A failed check is reported as
// unavailable rather than aborting the remaining providers.
func writeHealth(ctx context.Context, w io.Writer, c healthChecker, ids []provider.ID) {
	for _, id := range ids {
		ind, err := c.Health(ctx, id)
		if err != nil {
			fmt.Fprintf(w, "%-12s unavailable (%v)\n", provider.DisplayName(id), err)
			continue
		}
		fmt.Fprintf(w, "%-12s %s\n", provider.DisplayName(id), ind)
	}
}
