// Package fetch implements the per-provider usage collaborators behind the
// orchestrator's Fetcher interface: bundled CLI, web dashboard, OAuth token,
// and direct API key source modes.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/rs/xid"
	"github.com/zalando/go-keyring"
	"golang.org/x/time/rate"

	"github.com/bernd/codexbar/config"
	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/source"
	"github.com/bernd/codexbar/tui"
)

const defaultHTTPTimeout = 30 * time.Second

// Client fetches usage data for providers. One Client serves a whole
// invocation; it keeps no state between invocations.
type Client struct {
	cfg   *config.Config
	httpc *http.Client
	// webc has no client-level timeout; web calls are bounded solely by the
	// caller-configured per-call context deadline.
	webc    *http.Client
	limiter *rate.Limiter
	trace   xid.ID
	verbose bool
}

// New builds a fetch client. The rate limiter keeps web-dashboard polling
// polite when many providers are selected.
func New(cfg *config.Config, verbose bool) *Client {
	return &Client{
		cfg:     cfg,
		httpc:   &http.Client{Timeout: defaultHTTPTimeout},
		webc:    &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(2), 4), // 2 req/s, burst 4
		trace:   xid.New(),
		verbose: verbose,
	}
}

// Usage fetches the usage snapshot(s) for one provider. It returns one
// payload per selected account; anything but all-accounts yields exactly one.
func (c *Client) Usage(ctx context.Context, req source.FetchRequest) ([]provider.Payload, error) {
	info, ok := provider.Lookup(req.Provider)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", req.Provider)
	}

	mode := req.Mode
	if mode == source.ModeUnset || mode == source.ModeAuto {
		var err error
		mode, err = c.defaultMode(info)
		if err != nil {
			return nil, err
		}
	}
	c.logf("provider=%s mode=%s accounts=%s", info.ID, mode, req.Accounts)

	switch mode {
	case source.ModeCLI:
		return c.fetchCLI(ctx, info)
	case source.ModeWeb:
		return c.fetchWeb(ctx, info, req.WebTimeout)
	case source.ModeOAuth:
		return c.fetchOAuth(ctx, info, req.Accounts)
	case source.ModeAPI:
		return c.fetchAPI(ctx, info)
	default:
		return nil, fmt.Errorf("unsupported source mode %q", mode)
	}
}

// defaultMode picks the first usable channel for a provider: bundled CLI on
// PATH, then a set API key env var, then a stored OAuth token, then the web
// dashboard.
func (c *Client) defaultMode(info provider.Info) (source.Mode, error) {
	if info.CLIBinary != "" {
		if _, err := exec.LookPath(info.CLIBinary); err == nil {
			return source.ModeCLI, nil
		}
	}
	if info.APIKeyEnv != "" && os.Getenv(info.APIKeyEnv) != "" {
		return source.ModeAPI, nil
	}
	if info.KeyringService != "" {
		if _, err := keyring.Get(info.KeyringService, "default"); err == nil {
			return source.ModeOAuth, nil
		}
	}
	if info.UsageURL != "" {
		return source.ModeWeb, nil
	}
	return source.ModeUnset, fmt.Errorf("no usable source for provider %s", info.ID)
}

func (c *Client) logf(format string, args ...any) {
	if !c.verbose {
		return
	}
	tui.Debug("trace=%s "+format, append([]any{c.trace}, args...)...)
}

// usageDoc is the wire shape shared by the provider CLIs and the usage
// endpoints: camelCase fields matching the tray payload format.
type usageDoc struct {
	Plan         string      `json:"plan,omitempty"`
	AccountEmail string      `json:"accountEmail,omitempty"`
	Primary      *windowDoc  `json:"primary,omitempty"`
	Secondary    *windowDoc  `json:"secondary,omitempty"`
	Tertiary     *windowDoc  `json:"tertiary,omitempty"`
	Credits      *creditsDoc `json:"credits,omitempty"`
	Version      string      `json:"version,omitempty"`
}

type windowDoc struct {
	UsedPercent      float64    `json:"usedPercent"`
	WindowMinutes    int        `json:"windowMinutes,omitempty"`
	ResetsAt         *time.Time `json:"resetsAt,omitempty"`
	ResetDescription string     `json:"resetDescription,omitempty"`
}

type creditsDoc struct {
	Remaining float64                `json:"remaining"`
	Events    []provider.CreditEvent `json:"events,omitempty"`
}

func decodeUsage(r io.Reader) (usageDoc, error) {
	var doc usageDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return usageDoc{}, fmt.Errorf("decode usage payload: %w", err)
	}
	return doc, nil
}

// payloadFromDoc assembles the immutable per-invocation payload.
func payloadFromDoc(id provider.ID, mode source.Mode, doc usageDoc, now time.Time) provider.Payload {
	snapshot := &provider.UsageSnapshot{
		Primary:      toWindow(doc.Primary),
		Secondary:    toWindow(doc.Secondary),
		Tertiary:     toWindow(doc.Tertiary),
		AccountEmail: doc.AccountEmail,
		UpdatedAt:    now,
	}

	p := provider.Payload{
		Provider: id,
		Version:  doc.Version,
		Source:   string(mode),
		Usage:    snapshot,
	}
	if doc.Credits != nil && provider.HasCredits(id) {
		p.Credits = &provider.CreditsSnapshot{
			Remaining: doc.Credits.Remaining,
			Events:    doc.Credits.Events,
			UpdatedAt: now,
		}
	}
	return p
}

func toWindow(doc *windowDoc) *provider.UsageWindow {
	if doc == nil {
		return nil
	}
	return &provider.UsageWindow{
		UsedPercent:      doc.UsedPercent,
		WindowMinutes:    doc.WindowMinutes,
		ResetsAt:         doc.ResetsAt,
		ResetDescription: doc.ResetDescription,
	}
}

// getJSON performs a GET with optional headers and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
