// Package source resolves raw option values into a validated fetch selection
// and drives the per-provider fetch sequence.
package source

import (
	"os"
	"runtime"

	"github.com/bernd/codexbar/report"
)

// Mode is the channel used to obtain a provider's data. The zero value means
// no mode was requested and each fetch collaborator picks its own default.
type Mode string

const (
	ModeUnset Mode = ""
	ModeAuto  Mode = "auto"
	ModeWeb   Mode = "web"
	ModeCLI   Mode = "cli"
	ModeOAuth Mode = "oauth"
	ModeAPI   Mode = "api"
)

// ParseMode validates a source-mode string. Matching is case-sensitive;
// anything outside the known set is an args error naming the valid values.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeAuto, ModeWeb, ModeCLI, ModeOAuth, ModeAPI:
		return Mode(raw), nil
	default:
		return ModeUnset, report.Argsf("unknown source %q (valid: auto, web, cli, oauth, api)", raw)
	}
}

// HostCaps describes what the current host can do. Kept as a value so tests
// can exercise both sides of the platform constraint.
type HostCaps struct {
	WebCapable bool
}

// DetectHost probes the running platform. Web-dashboard access needs a
// desktop session: macOS and Windows always qualify, Linux only with a
// display server.
func DetectHost() HostCaps {
	switch runtime.GOOS {
	case "darwin", "windows":
		return HostCaps{WebCapable: true}
	case "linux":
		return HostCaps{WebCapable: os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""}
	default:
		return HostCaps{}
	}
}
