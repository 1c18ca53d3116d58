package provider

import "time"

// UsageWindow is one rate-limit window. UsedPercent is 0-100 as reported by
// the provider.
type UsageWindow struct {
	UsedPercent      float64    `json:"usedPercent" yaml:"usedPercent"`
	WindowMinutes    int        `json:"windowMinutes,omitempty" yaml:"windowMinutes,omitempty"`
	ResetsAt         *time.Time `json:"resetsAt,omitempty" yaml:"resetsAt,omitempty"`
	ResetDescription string     `json:"resetDescription,omitempty" yaml:"resetDescription,omitempty"`
}

// RemainingPercent is 100 minus UsedPercent, clamped to [0,100].
func (w UsageWindow) RemainingPercent() float64 {
	remaining := 100 - w.UsedPercent
	if remaining < 0 {
		return 0
	}
	if remaining > 100 {
		return 100
	}
	return remaining
}

// UsageSnapshot holds up to three rate-limit windows. Primary is typically
// the session window, secondary the weekly window.
type UsageSnapshot struct {
	Primary      *UsageWindow `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary    *UsageWindow `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Tertiary     *UsageWindow `json:"tertiary,omitempty" yaml:"tertiary,omitempty"`
	AccountEmail string       `json:"accountEmail,omitempty" yaml:"accountEmail,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt" yaml:"updatedAt"`
}

// CreditEvent is one entry in a provider's credit ledger. The core treats
// events as opaque; they are carried through to JSON output only.
type CreditEvent struct {
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Amount      float64   `json:"amount" yaml:"amount"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// CreditsSnapshot is a provider-specific consumable balance.
type CreditsSnapshot struct {
	Remaining float64       `json:"remaining" yaml:"remaining"`
	Events    []CreditEvent `json:"events,omitempty" yaml:"events,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt" yaml:"updatedAt"`
}

// StatusIndicator is an external service-health severity.
type StatusIndicator string

const (
	StatusNone        StatusIndicator = "none"
	StatusMinor       StatusIndicator = "minor"
	StatusMajor       StatusIndicator = "major"
	StatusCritical    StatusIndicator = "critical"
	StatusMaintenance StatusIndicator = "maintenance"
	StatusUnknown     StatusIndicator = "unknown"
)

// Status wraps the health indicator for JSON output.
type Status struct {
	Indicator StatusIndicator `json:"indicator" yaml:"indicator"`
}

// ErrorInfo describes a failed fetch.
type ErrorInfo struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Kind    string `json:"kind" yaml:"kind"`
}

// Payload is the per-provider result of one invocation. It is created fresh
// per fetch and immutable once returned. When Error is set the other result
// fields are nil: use ErrPayload so the invariant holds by construction.
type Payload struct {
	Provider ID               `json:"provider" yaml:"provider"`
	Account  string           `json:"account,omitempty" yaml:"account,omitempty"`
	Version  string           `json:"version,omitempty" yaml:"version,omitempty"`
	Source   string           `json:"source" yaml:"source"`
	Status   *Status          `json:"status,omitempty" yaml:"status,omitempty"`
	Usage    *UsageSnapshot   `json:"usage,omitempty" yaml:"usage,omitempty"`
	Credits  *CreditsSnapshot `json:"credits,omitempty" yaml:"credits,omitempty"`
	Error    *ErrorInfo       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the payload represents a fetch failure.
func (p Payload) Failed() bool { return p.Error != nil }

// ErrPayload builds a failure payload. Usage, credits, and status stay nil so
// the renderer's error-wins rule cannot be violated by field ordering.
func ErrPayload(id ID, source, kind, message string) Payload {
	return Payload{
		Provider: id,
		Source:   source,
		Error:    &ErrorInfo{Code: "failure", Message: message, Kind: kind},
	}
}
