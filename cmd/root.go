package cmd

import (
	"github.com/urfave/cli/v3"
)

// fetchFlags builds the flag set shared by the fetching commands. Fresh
// instances per command keep parse state from leaking between invocations.
// The resolver interprets the values; the flags only carry them.
func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Config file path (defaults to the XDG config directory)",
		},
		&cli.StringSliceFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Usage:   "Provider to query (repeatable; \"all\" selects every known provider)",
		},
		&cli.StringFlag{
			Name:  "source",
			Usage: "Data source: auto, web, cli, oauth, api",
		},
		&cli.StringFlag{
			Name:  "account",
			Usage: "Stored token account label",
		},
		&cli.IntFlag{
			Name:  "account-index",
			Usage: "Stored token account position (0-based)",
		},
		&cli.BoolFlag{
			Name:  "all-accounts",
			Usage: "Fetch every stored token account",
		},
		&cli.IntFlag{
			Name:  "web-timeout",
			Usage: "Web dashboard fetch timeout in seconds",
		},
		&cli.BoolFlag{
			Name:  "status",
			Usage: "Include service health indicators",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log fetch diagnostics to stderr",
		},
	}
}

func RootCommand() *cli.Command {
	return &cli.Command{
		Name:            "codexbar",
		Usage:           "AI usage quotas in one panel line",
		Description:     "Usage at a glance.",
		HideHelpCommand: true,
		DefaultCommand:  "panel",
		Commands: []*cli.Command{
			// Order matters here!
			PanelCommand(),
			UsageCommand(),
			StatusCommand(),
			ProvidersCommand(),
			WatchCommand(),
		},
	}
}
