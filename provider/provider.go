// Package provider holds the provider registry and the per-provider result
// payload types shared across the fetch pipeline and renderers.
package provider

// ID identifies a supported provider.
type ID string

const (
	Codex       ID = "codex"
	Claude      ID = "claude"
	Cursor      ID = "cursor"
	OpenCode    ID = "opencode"
	Factory     ID = "factory"
	Gemini      ID = "gemini"
	Antigravity ID = "antigravity"
	Copilot     ID = "copilot"
	ZAI         ID = "zai"
	MiniMax     ID = "minimax"
	Kimi        ID = "kimi"
	Kiro        ID = "kiro"
	VertexAI    ID = "vertexai"
	Augment     ID = "augment"
	JetBrains   ID = "jetbrains"
	KimiK2      ID = "kimik2"
	Amp         ID = "amp"
	Synthetic   ID = "synthetic"
)

// Info describes one provider's display name, capabilities, and how the fetch
// collaborators reach it. A single data-driven table replaces per-provider
// branching.
type Info struct {
	ID   ID
	Name string

	// TokenAccounts reports whether the provider supports selecting between
	// multiple stored credential accounts.
	TokenAccounts bool
	// Credits reports whether the provider exposes a consumable credit
	// balance in addition to percentage windows.
	Credits bool

	// CLIBinary and CLIArgs run the provider's bundled CLI for the cli
	// source mode. Empty CLIBinary means no CLI support.
	CLIBinary string
	CLIArgs   []string

	// APIKeyEnv names the environment variable holding a direct API key.
	APIKeyEnv string

	// UsageURL is the dashboard/API usage endpoint for web/oauth/api modes.
	UsageURL string
	// StatusURL is the statuspage-style health endpoint.
	StatusURL string

	// KeyringService is the system keyring service name storing OAuth tokens.
	KeyringService string
}

// ordered registry. Order here determines listing order in `codexbar providers`
// and the default provider set expansion for "all".
var registry = []Info{
	{
		ID: Codex, Name: "Codex",
		TokenAccounts: true, Credits: true,
		CLIBinary: "codex", CLIArgs: []string{"usage", "--json"},
		APIKeyEnv:      "OPENAI_API_KEY",
		UsageURL:       "https://chatgpt.com/backend-api/codex/usage",
		StatusURL:      "https://status.openai.com/api/v2/status.json",
		KeyringService: "codexbar-codex",
	},
	{
		ID: Claude, Name: "Claude",
		TokenAccounts: true,
		CLIBinary:     "claude", CLIArgs: []string{"usage", "--output-format", "json"},
		APIKeyEnv:      "ANTHROPIC_API_KEY",
		UsageURL:       "https://api.anthropic.com/api/oauth/usage",
		StatusURL:      "https://status.anthropic.com/api/v2/status.json",
		KeyringService: "codexbar-claude",
	},
	{
		ID: Cursor, Name: "Cursor",
		UsageURL:  "https://cursor.com/api/usage",
		StatusURL: "https://status.cursor.com/api/v2/status.json",
	},
	{
		ID: OpenCode, Name: "OpenCode",
		CLIBinary: "opencode", CLIArgs: []string{"stats", "--json"},
	},
	{
		ID: Factory, Name: "Droid",
		CLIBinary: "droid", CLIArgs: []string{"usage", "--json"},
		UsageURL: "https://app.factory.ai/api/usage",
	},
	{
		ID: Gemini, Name: "Gemini",
		CLIBinary: "gemini", CLIArgs: []string{"usage", "--json"},
		APIKeyEnv: "GEMINI_API_KEY",
	},
	{ID: Antigravity, Name: "Antigravity"},
	{
		ID: Copilot, Name: "Copilot",
		UsageURL:  "https://api.github.com/copilot/usage",
		StatusURL: "https://www.githubstatus.com/api/v2/status.json",
	},
	{ID: ZAI, Name: "z.ai", APIKeyEnv: "ZAI_API_KEY"},
	{ID: MiniMax, Name: "MiniMax", APIKeyEnv: "MINIMAX_API_KEY"},
	{ID: Kimi, Name: "Kimi", APIKeyEnv: "MOONSHOT_API_KEY"},
	{ID: Kiro, Name: "Kiro"},
	{ID: VertexAI, Name: "Vertex AI"},
	{ID: Augment, Name: "Augment"},
	{ID: JetBrains, Name: "JetBrains AI"},
	{ID: KimiK2, Name: "Kimi K2", APIKeyEnv: "MOONSHOT_API_KEY"},
	{ID: Amp, Name: "Amp", CLIBinary: "amp", CLIArgs: []string{"usage", "--json"}},
	{ID: Synthetic, Name: "Synthetic", APIKeyEnv: "SYNTHETIC_API_KEY"},
}

var byID = func() map[ID]Info {
	m := make(map[ID]Info, len(registry))
	for _, info := range registry {
		m[info.ID] = info
	}
	return m
}()

// All returns the registry in listing order.
func All() []Info {
	out := make([]Info, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the registry entry for id.
func Lookup(id ID) (Info, bool) {
	info, ok := byID[id]
	return info, ok
}

// DisplayName returns the human-readable provider label, falling back to the
// raw identifier for unknown providers.
func DisplayName(id ID) string {
	if info, ok := byID[id]; ok {
		return info.Name
	}
	return string(id)
}

// SupportsTokenAccounts reports whether id accepts account selection flags.
func SupportsTokenAccounts(id ID) bool {
	return byID[id].TokenAccounts
}

// HasCredits reports whether id exposes a credit balance.
func HasCredits(id ID) bool {
	return byID[id].Credits
}

// Parse maps a raw identifier to a known ID.
func Parse(raw string) (ID, bool) {
	_, ok := byID[ID(raw)]
	return ID(raw), ok
}
