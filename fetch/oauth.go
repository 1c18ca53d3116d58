package fetch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/bernd/codexbar/config"
	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/source"
)

// fetchOAuth reads usage through the provider's API using a stored OAuth
// bearer token. Account selection picks which stored token(s) to use; for
// all-accounts one payload per account is returned, in config order.
func (c *Client) fetchOAuth(ctx context.Context, info provider.Info, sel source.AccountSelection) ([]provider.Payload, error) {
	if info.UsageURL == "" {
		return nil, fmt.Errorf("provider %s has no usage endpoint", info.ID)
	}

	accounts, err := selectAccounts(c.cfg.ProviderAccounts(info.ID), sel)
	if err != nil {
		return nil, err
	}

	var payloads []provider.Payload
	for _, account := range accounts {
		token, err := c.oauthToken(info, account)
		if err != nil {
			if sel.Kind == source.AccountAll {
				// Per-account failures inside all-accounts stay isolated,
				// mirroring per-provider isolation one level up.
				payloads = append(payloads, failedAccount(info.ID, account.Label, err))
				continue
			}
			return nil, err
		}

		doc, err := c.fetchBearer(ctx, info.UsageURL, token)
		if err != nil {
			if sel.Kind == source.AccountAll {
				payloads = append(payloads, failedAccount(info.ID, account.Label, err))
				continue
			}
			return nil, err
		}

		p := payloadFromDoc(info.ID, source.ModeOAuth, doc, time.Now())
		p.Account = account.Label
		payloads = append(payloads, p)
	}
	return payloads, nil
}

func failedAccount(id provider.ID, label string, err error) provider.Payload {
	p := provider.ErrPayload(id, string(source.ModeOAuth), "provider", err.Error())
	p.Account = label
	return p
}

// selectAccounts applies the token-account selection to the stored list. An
// empty store still yields one anonymous default account so providers work
// without any accounts configured.
func selectAccounts(stored []config.Account, sel source.AccountSelection) ([]config.Account, error) {
	if len(stored) == 0 {
		if sel.Kind == source.AccountByLabel || sel.Kind == source.AccountByIndex {
			return nil, fmt.Errorf("no token accounts configured")
		}
		return []config.Account{{}}, nil
	}

	switch sel.Kind {
	case source.AccountAll:
		return stored, nil
	case source.AccountByLabel:
		for _, a := range stored {
			if a.Label == sel.Label {
				return []config.Account{a}, nil
			}
		}
		return nil, fmt.Errorf("unknown account label %q", sel.Label)
	case source.AccountByIndex:
		if sel.Index < 0 || sel.Index >= len(stored) {
			return nil, fmt.Errorf("account index %d out of range", sel.Index)
		}
		return []config.Account{stored[sel.Index]}, nil
	default:
		return stored[:1], nil
	}
}

// oauthToken resolves the bearer token for one account: explicit env
// override, then the system keyring, then the provider-wide env fallback.
func (c *Client) oauthToken(info provider.Info, account config.Account) (string, error) {
	if account.TokenEnv != "" {
		if token := os.Getenv(account.TokenEnv); token != "" {
			return token, nil
		}
		return "", fmt.Errorf("env %s is empty", account.TokenEnv)
	}

	if info.KeyringService != "" {
		user := account.KeyringUser
		if user == "" {
			user = account.Label
		}
		if user == "" {
			user = "default"
		}
		if token, err := keyring.Get(info.KeyringService, user); err == nil && token != "" {
			return token, nil
		}
	}

	fallback := strings.ToUpper(string(info.ID)) + "_OAUTH_TOKEN"
	if token := os.Getenv(fallback); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no OAuth token for provider %s (keyring %s, env %s)", info.ID, info.KeyringService, fallback)
}

func (c *Client) fetchBearer(ctx context.Context, url, token string) (usageDoc, error) {
	var doc usageDoc
	headers := map[string]string{"Authorization": "Bearer " + token}
	if err := c.getJSON(ctx, url, headers, &doc); err != nil {
		return usageDoc{}, err
	}
	return doc, nil
}
