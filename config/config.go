// Package config loads codexbar settings from the user's config directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bernd/codexbar/panel"
	"github.com/bernd/codexbar/provider"
)

// Account is one stored token account for a provider.
type Account struct {
	Label string `koanf:"label"`
	// TokenEnv overrides where the OAuth token comes from; when empty the
	// system keyring is consulted under the provider's service name.
	TokenEnv string `koanf:"token-env"`
	// KeyringUser overrides the keyring user entry; defaults to the label.
	KeyringUser string `koanf:"keyring-user"`
}

// Config is the persisted user configuration. Every field has a usable zero
// default so a missing config file is not an error.
type Config struct {
	Providers    []string                  `koanf:"providers"`
	Separator    string                    `koanf:"separator"`
	ShowProvider bool                      `koanf:"show-provider"`
	WebTimeout   int                       `koanf:"web-timeout"`
	Interval     int                       `koanf:"interval"`
	Accounts     map[provider.ID][]Account `koanf:"accounts"`
}

// Defaults mirror the CLI flag defaults.
const (
	DefaultWebTimeout = 60 // seconds
	DefaultInterval   = 30 // seconds, watch refresh
)

// DefaultPath returns the config file location under XDG_CONFIG_HOME.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "codexbar", "config.yaml")
}

// Load reads the config file at path, silently falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// loadFile parses a YAML file into target, skipping missing files so callers
// don't need to check existence first.
func loadFile(path string, target any) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return err
	}
	return k.Unmarshal("", target)
}

func (c *Config) applyDefaults() {
	if len(c.Providers) == 0 {
		c.Providers = []string{string(provider.Codex)}
	}
	if c.Separator == "" {
		c.Separator = panel.DefaultSeparator
	}
	if c.WebTimeout <= 0 {
		c.WebTimeout = DefaultWebTimeout
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
}

// AccountLabels returns the stored labels per provider, in file order, for
// resolver validation.
func (c *Config) AccountLabels() map[provider.ID][]string {
	if len(c.Accounts) == 0 {
		return nil
	}
	out := make(map[provider.ID][]string, len(c.Accounts))
	for id, accounts := range c.Accounts {
		labels := make([]string, 0, len(accounts))
		for _, a := range accounts {
			labels = append(labels, a.Label)
		}
		out[id] = labels
	}
	return out
}

// ProviderAccounts returns the stored accounts for one provider.
func (c *Config) ProviderAccounts(id provider.ID) []Account {
	return c.Accounts[id]
}
