package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmccomb/pastrami/pkg/capability"
)

// Mode selects how a script executes.
type Mode string

const (
	// ModeREPL evaluates against the live shared instance; declared state
	// persists across turns until the next reconfigure.
	ModeREPL Mode = "repl"
	// ModeOneShot evaluates against an ephemeral instance built from the
	// current enabled set; nothing persists past the run.
	ModeOneShot Mode = "oneshot"
)

// Outcome classifies how an execution finished.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeParseError   Outcome = "parse_error"
	OutcomeRuntimeError Outcome = "runtime_error"
)

// ExecutionRequest is one script submission. OnOutput, when set, receives
// every print line as it is emitted, before the request returns.
type ExecutionRequest struct {
	Script   string
	Mode     Mode
	OnOutput func(line string)
}

// ExecutionResult is the ordered response for one request: every output line
// in emission order, then the optional final value.
type ExecutionResult struct {
	RequestID    string        `json:"requestId"`
	Output       []string      `json:"output"`
	Value        string        `json:"value,omitempty"`
	HasValue     bool          `json:"hasValue"`
	Outcome      Outcome       `json:"outcome"`
	ErrorMessage string        `json:"error,omitempty"`
	Duration     time.Duration `json:"-"`
}

// UnknownPackageError rejects a reconfigure request that referenced
// namespaces absent from the registry. The previous engine instance is left
// untouched.
type UnknownPackageError struct {
	Identifiers []string
}

// Error implements the error interface
func (e *UnknownPackageError) Error() string {
	return fmt.Sprintf("unknown packages: %s", strings.Join(e.Identifiers, ", "))
}

// Unwrap lets callers match with errors.Is(err, capability.ErrUnknownPackage).
func (e *UnknownPackageError) Unwrap() error {
	return capability.ErrUnknownPackage
}
