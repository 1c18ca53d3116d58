package source

import (
	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/report"
)

// Request carries the raw option values as parsed by the CLI layer. The
// resolver owns interpretation and validation; the flags themselves do not.
type Request struct {
	Providers    []string
	Source       string
	SourceSet    bool
	AccountLabel string
	AccountIndex int
	IndexSet     bool
	AllAccounts  bool
}

// Selection is a fully validated fetch request.
type Selection struct {
	Providers []provider.ID
	Mode      Mode
	Accounts  AccountSelection
}

// Resolve validates the raw request against host capabilities and the stored
// account configuration. Any failure here is fatal for the whole invocation:
// it represents a malformed request, not a runtime condition, so no fetch
// runs and no panel line is printed.
func Resolve(req Request, caps HostCaps, stored map[provider.ID][]string) (Selection, error) {
	providers, err := resolveProviders(req.Providers)
	if err != nil {
		return Selection{}, err
	}

	mode := ModeUnset
	if req.SourceSet {
		mode, err = ParseMode(req.Source)
		if err != nil {
			return Selection{}, err
		}
	}
	if (mode == ModeWeb || mode == ModeAuto) && !caps.WebCapable {
		return Selection{}, report.Runtimef("web/auto source only supported on capable hosts")
	}

	accounts, err := resolveAccounts(req, providers, stored)
	if err != nil {
		return Selection{}, err
	}

	return Selection{Providers: providers, Mode: mode, Accounts: accounts}, nil
}

func resolveProviders(raw []string) ([]provider.ID, error) {
	if len(raw) == 0 {
		return nil, report.Argsf("no provider selected")
	}

	var out []provider.ID
	seen := make(map[provider.ID]bool)
	for _, r := range raw {
		if r == "all" {
			for _, info := range provider.All() {
				if !seen[info.ID] {
					seen[info.ID] = true
					out = append(out, info.ID)
				}
			}
			continue
		}
		id, ok := provider.Parse(r)
		if !ok {
			return nil, report.Argsf("unknown provider %q", r)
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func resolveAccounts(req Request, providers []provider.ID, stored map[provider.ID][]string) (AccountSelection, error) {
	if req.AllAccounts && (req.AccountLabel != "" || req.IndexSet) {
		return AccountSelection{}, report.Argsf("--all-accounts conflicts with --account/--account-index")
	}
	if req.AccountLabel != "" && req.IndexSet {
		return AccountSelection{}, report.Argsf("--account conflicts with --account-index")
	}

	sel := DefaultAccount()
	switch {
	case req.AllAccounts:
		sel = AccountSelection{Kind: AccountAll}
	case req.AccountLabel != "":
		sel = AccountSelection{Kind: AccountByLabel, Label: req.AccountLabel}
	case req.IndexSet:
		if req.AccountIndex < 0 {
			return AccountSelection{}, report.Argsf("--account-index must be >= 0")
		}
		sel = AccountSelection{Kind: AccountByIndex, Index: req.AccountIndex}
	}

	if !sel.IsOverride() {
		return sel, nil
	}

	if len(providers) != 1 {
		return AccountSelection{}, report.Argsf("account selection requires a single provider")
	}
	id := providers[0]
	if !provider.SupportsTokenAccounts(id) {
		return AccountSelection{}, report.Argsf("provider %s does not support token accounts", id)
	}

	// Label and index selections must match the stored account list; a miss
	// is a configuration problem, not an argument problem.
	labels := stored[id]
	switch sel.Kind {
	case AccountByLabel:
		found := false
		for _, l := range labels {
			if l == sel.Label {
				found = true
				break
			}
		}
		if !found {
			return AccountSelection{}, report.Configf("unknown account label %q for provider %s", sel.Label, id)
		}
	case AccountByIndex:
		if sel.Index >= len(labels) {
			return AccountSelection{}, report.Configf("account index %d out of range for provider %s (%d configured)", sel.Index, id, len(labels))
		}
	}

	return sel, nil
}
