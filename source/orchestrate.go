package source

import (
	"context"
	"time"

	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/report"
)

// FetchRequest is the per-provider input handed to the fetch collaborator.
type FetchRequest struct {
	Provider   provider.ID
	Mode       Mode
	Accounts   AccountSelection
	WebTimeout time.Duration
	Verbose    bool
}

// Fetcher is implemented by the fetch collaborators. Usage returns one
// payload per selected account (one for anything but all-accounts). Health
// returns the provider's service-health indicator.
type Fetcher interface {
	Usage(ctx context.Context, req FetchRequest) ([]provider.Payload, error)
	Health(ctx context.Context, id provider.ID) (provider.StatusIndicator, error)
}

// Outcome is the aggregate result of a fetch batch.
type Outcome int

const (
	Success Outcome = iota
	Failure
)

// Options tunes a fetch batch.
type Options struct {
	IncludeStatus bool
	WebTimeout    time.Duration
	Verbose       bool
}

// Run drives the fetcher once per provider, strictly in list order and one at
// a time. Providers fail independently: an error becomes an error payload and
// the loop moves on, so one unreachable provider never hides the others.
// The returned payloads preserve provider order; the outcome is Success only
// if every payload is error-free.
func Run(ctx context.Context, f Fetcher, sel Selection, opts Options) ([]provider.Payload, Outcome) {
	outcome := Success
	var payloads []provider.Payload

	for _, id := range sel.Providers {
		var indicator provider.StatusIndicator
		haveStatus := false
		if opts.IncludeStatus {
			// Health failures never fail the provider; the indicator is
			// simply omitted.
			if ind, err := f.Health(ctx, id); err == nil {
				indicator = ind
				haveStatus = true
			}
		}

		req := FetchRequest{
			Provider:   id,
			Mode:       sel.Mode,
			Accounts:   sel.Accounts,
			WebTimeout: opts.WebTimeout,
			Verbose:    opts.Verbose,
		}

		results, err := f.Usage(ctx, req)
		if err != nil {
			payloads = append(payloads, provider.ErrPayload(id, sourceLabel(sel.Mode), string(report.KindProvider), err.Error()))
			outcome = Failure
			continue
		}
		if len(results) == 0 {
			payloads = append(payloads, provider.ErrPayload(id, sourceLabel(sel.Mode), string(report.KindProvider), "no usage data returned"))
			outcome = Failure
			continue
		}

		for _, p := range results {
			if p.Failed() {
				outcome = Failure
			} else if haveStatus {
				p.Status = &provider.Status{Indicator: indicator}
			}
			payloads = append(payloads, p)
		}
	}

	return payloads, outcome
}

func sourceLabel(m Mode) string {
	if m == ModeUnset {
		return string(ModeAuto)
	}
	return string(m)
}
