package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/bernd/codexbar/panel"
)

func PanelCommand() *cli.Command {
	return &cli.Command{
		Name:  "panel",
		Usage: "Print the one-line usage summary",
		Flags: append(fetchFlags(),
			&cli.StringFlag{
				Name:  "separator",
				Usage: "Separator between provider segments",
			},
			&cli.BoolFlag{
				Name:  "show-provider",
				Usage: "Prefix each segment with the provider name",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			payloads, outcome, err := fetchPayloads(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			sep := cfg.Separator
			if cmd.IsSet("separator") {
				sep = cmd.String("separator")
			}
			// Multi-segment lines always carry names so segments stay
			// attributable.
			showName := cfg.ShowProvider || cmd.Bool("show-provider") || len(payloads) > 1

			fmt.Println(panel.Line(payloads, sep, showName))
			return exitFor(outcome)
		},
	}
}
