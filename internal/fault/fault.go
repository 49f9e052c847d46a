// Package fault defines the failure taxonomy shared by the tutoring
// pipeline and the study session machine. Every failure the system can
// surface to a caller is a *Fault with a stable, machine-readable Kind.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	// KindMalformedResponse: the model's raw text could not be repaired
	// into the expected structural shape.
	KindMalformedResponse Kind = "malformed_response"

	// KindSchemaViolation: the text parsed but a required field is
	// missing, mistyped, or breaks an invariant.
	KindSchemaViolation Kind = "schema_violation"

	// KindUpstreamError: the model call failed (network, quota, timeout).
	KindUpstreamError Kind = "upstream_error"

	// KindSessionNotFound: no study session exists for the given id.
	KindSessionNotFound Kind = "session_not_found"

	// KindStepOutOfRange: the step index is not the session's current step.
	KindStepOutOfRange Kind = "step_out_of_range"

	// KindHintBudgetExceeded: the step has already issued its maximum hints.
	KindHintBudgetExceeded Kind = "hint_budget_exceeded"
)

// rawLimit caps the diagnostic excerpt carried by a Fault.
const rawLimit = 200

// Fault is a typed failure value. It carries a short diagnostic message
// and, for parse/validation failures, a truncated excerpt of the
// offending raw text. It never carries credentials or stack traces.
type Fault struct {
	Kind    Kind
	Message string
	Raw     string // first 200 chars of the offending text, if any
	Err     error  // wrapped cause, if any
}

func (f *Fault) Error() string {
	if f.Message == "" {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error { return f.Err }

// Truncate caps raw diagnostic text to the excerpt limit.
func Truncate(raw string) string {
	if len(raw) <= rawLimit {
		return raw
	}
	return raw[:rawLimit]
}

// Malformed builds a MalformedResponse fault carrying a truncated
// excerpt of the original raw text.
func Malformed(msg, raw string) *Fault {
	return &Fault{Kind: KindMalformedResponse, Message: msg, Raw: Truncate(raw)}
}

// SchemaViolation builds a SchemaViolation fault naming the first
// offending field.
func SchemaViolation(field, reason string) *Fault {
	return &Fault{
		Kind:    KindSchemaViolation,
		Message: fmt.Sprintf("field %q: %s", field, reason),
	}
}

// Upstream wraps a model-collaborator error. Rate limits, quota errors,
// and timeouts all classify identically; backoff policy belongs to the
// provider middleware, not the core.
func Upstream(err error) *Fault {
	return &Fault{Kind: KindUpstreamError, Message: "model call failed", Err: err}
}

// SessionNotFound builds the guard fault for an unknown session id.
func SessionNotFound(id string) *Fault {
	return &Fault{Kind: KindSessionNotFound, Message: fmt.Sprintf("no session %s", id)}
}

// StepOutOfRange builds the guard fault for a non-current step index.
func StepOutOfRange(index, current int) *Fault {
	return &Fault{
		Kind:    KindStepOutOfRange,
		Message: fmt.Sprintf("step %d is not the current step (%d)", index, current),
	}
}

// HintBudgetExceeded builds the guard fault for an exhausted hint budget.
func HintBudgetExceeded(index, budget int) *Fault {
	return &Fault{
		Kind:    KindHintBudgetExceeded,
		Message: fmt.Sprintf("step %d already issued %d hints", index, budget),
	}
}

// KindOf extracts the Kind from an error chain. Errors that are not
// Faults classify as UpstreamError.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUpstreamError
}

// Is reports whether err carries the given fault kind.
func Is(err error, kind Kind) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == kind
}
