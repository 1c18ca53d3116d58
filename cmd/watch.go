package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/bernd/codexbar/fetch"
	"github.com/bernd/codexbar/source"
	"github.com/bernd/codexbar/tui"
)

func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Refresh usage in a full-screen view",
		Flags: append(fetchFlags(),
			&cli.IntFlag{
				Name:  "interval",
				Usage: "Refresh interval in seconds",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, cfgPath, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			sel, err := source.Resolve(buildRequest(cmd, cfg), source.DetectHost(), cfg.AccountLabels())
			if err != nil {
				return err
			}

			secs := cfg.Interval
			if cmd.IsSet("interval") {
				secs = cmd.Int("interval")
			}
			interval := time.Duration(secs) * time.Second

			client := fetch.New(cfg, cmd.Bool("verbose"))
			opts := source.Options{
				IncludeStatus: cmd.Bool("status"),
				WebTimeout:    webTimeout(cmd, cfg),
				Verbose:       cmd.Bool("verbose"),
			}

			header := &tui.HeaderInfo{ConfigPath: cfgPath, Interval: interval}
			m := newWatchModel(client, sel, opts, header, interval)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("watch UI: %w", err)
			}
			return nil
		},
	}
}
