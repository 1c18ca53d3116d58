package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/bernd/codexbar/panel"
	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/report"
)

func UsageCommand() *cli.Command {
	return &cli.Command{
		Name:  "usage",
		Usage: "Print detailed usage for the selected providers",
		Flags: append(fetchFlags(),
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "Output format: text, json, yaml",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			switch format {
			case "text", "json", "yaml":
			default:
				return report.Argsf("unknown format %q (valid: text, json, yaml)", format)
			}

			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			payloads, outcome, err := fetchPayloads(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			if err := writeUsage(os.Stdout, payloads, format); err != nil {
				return err
			}
			return exitFor(outcome)
		},
	}
}

func writeUsage(w io.Writer, payloads []provider.Payload, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payloads)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(payloads)
	default:
		for i, p := range payloads {
			if i > 0 {
				fmt.Fprintln(w)
			}
			for _, line := range panel.Blocks(p) {
				fmt.Fprintln(w, line)
			}
		}
		return nil
	}
}
