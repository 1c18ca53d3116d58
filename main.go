package main

import (
	"context"
	"errors"
	"os"

	"github.com/bernd/codexbar/cmd"
	"github.com/bernd/codexbar/report"
	"github.com/bernd/codexbar/tui"
)

func main() {
	app := cmd.RootCommand()

	if err := app.Run(context.Background(), os.Args); err != nil {
		var exitErr *report.ExitError
		if errors.As(err, &exitErr) {
			// Output was already written; only the exit code is owed.
			os.Exit(exitErr.Code)
		}
		tui.Error("%v", err)
		os.Exit(1)
	}
}
