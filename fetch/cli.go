package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/source"
)

const cliTimeout = 30 * time.Second

// fetchCLI runs the provider's bundled binary and parses its JSON usage
// output.
func (c *Client) fetchCLI(ctx context.Context, info provider.Info) ([]provider.Payload, error) {
	if info.CLIBinary == "" {
		return nil, fmt.Errorf("provider %s has no bundled CLI", info.ID)
	}
	binary, err := exec.LookPath(info.CLIBinary)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH", info.CLIBinary)
	}

	ctx, cancel := context.WithTimeout(ctx, cliTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, binary, info.CLIArgs...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %s", info.CLIBinary, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", info.CLIBinary, err)
	}

	doc, err := decodeUsage(bytes.NewReader(out))
	if err != nil {
		return nil, err
	}
	if doc.Version == "" {
		doc.Version = cliVersion(ctx, binary)
	}

	p := payloadFromDoc(info.ID, source.ModeCLI, doc, time.Now())
	if info.ID == provider.Codex && p.Usage.AccountEmail == "" {
		p.Usage.AccountEmail = codexAccountEmail()
	}
	return []provider.Payload{p}, nil
}

// cliVersion asks the binary for its version and normalizes it through
// semver. A binary without a parseable version yields an empty string rather
// than an error.
func cliVersion(ctx context.Context, binary string) string {
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return ""
	}
	return parseVersion(string(out))
}

// parseVersion extracts the first semver-parseable token, so both "1.2.3" and
// "codex-cli 1.2.3 (abcdef)" work.
func parseVersion(out string) string {
	for _, field := range strings.Fields(strings.TrimSpace(out)) {
		if v, err := semver.NewVersion(strings.TrimPrefix(field, "v")); err == nil {
			return v.String()
		}
	}
	return ""
}

// codexConfig is the slice of Codex CLI's config.toml we care about.
type codexConfig struct {
	Email string `toml:"email"`
	Model string `toml:"model"`
}

// codexAccountEmail reads the signed-in account email from the Codex CLI's
// own config file. Best effort: any failure yields an empty string.
func codexAccountEmail() string {
	path := codexConfigPath()
	if path == "" {
		return ""
	}
	var cfg codexConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return ""
	}
	return cfg.Email
}

func codexConfigPath() string {
	if env := strings.TrimSpace(os.Getenv("CODEX_HOME")); env != "" {
		return filepath.Join(env, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".codex", "config.toml")
}
