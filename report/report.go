// Package report classifies failures and maps them to process exit codes.
package report

import (
	"errors"
	"fmt"
)

// Kind labels where in the pipeline a failure originated.
type Kind string

const (
	KindArgs     Kind = "args"     // malformed or contradictory options
	KindConfig   Kind = "config"   // selection conflicts with stored configuration
	KindRuntime  Kind = "runtime"  // host/platform constraint violated
	KindProvider Kind = "provider" // an individual fetch failed
)

// Process exit codes. Finer error kinds share the failure code; the kind is
// carried in the error value for classification and JSON output.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Error is a classified failure. Args, config, and runtime errors are fatal
// before any fetch happens; provider errors are isolated per payload.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Argsf builds an args-kind error.
func Argsf(format string, args ...any) error {
	return &Error{Kind: KindArgs, Err: fmt.Errorf(format, args...)}
}

// Configf builds a config-kind error.
func Configf(format string, args ...any) error {
	return &Error{Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

// Runtimef builds a runtime-kind error.
func Runtimef(format string, args ...any) error {
	return &Error{Kind: KindRuntime, Err: fmt.Errorf(format, args...)}
}

// Providerf builds a provider-kind error.
func Providerf(format string, args ...any) error {
	return &Error{Kind: KindProvider, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind attached to err, or KindRuntime for unclassified
// errors so nothing maps to success by accident.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindRuntime
}

// ExitError signals a non-zero exit after output has already been written.
// The panel line for partial data is printed first, then the process exits
// with Code.
type ExitError struct {
	Code int
	Kind Kind
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d (%s)", e.Code, e.Kind)
}
