package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/tui"
)

func ProvidersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List the known providers and their capabilities",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tui.PrintHeader()
			writeProviders(os.Stdout)
			return nil
		},
	}
}

func writeProviders(w io.Writer) {
	fmt.Fprintf(w, "%-12s %-14s %-10s %s\n", "ID", "NAME", "CREDITS", "SOURCES")
	for _, info := range provider.All() {
		fmt.Fprintf(w, "%-12s %-14s %-10s %s\n",
			info.ID, info.Name, yesNo(info.Credits), strings.Join(sourcesFor(info), ","))
	}
}

// sourcesFor lists the channels a provider can be fetched over, in the
// order auto mode probes them.
func sourcesFor(info provider.Info) []string {
	var out []string
	if info.CLIBinary != "" {
		out = append(out, "cli")
	}
	if info.APIKeyEnv != "" {
		out = append(out, "api")
	}
	if info.KeyringService != "" {
		out = append(out, "oauth")
	}
	if info.UsageURL != "" {
		out = append(out, "web")
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
