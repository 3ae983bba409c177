// Package errs defines an error taxonomy for retry/skip/abort decisions: a
// TransientStoreError marks a failure worth retrying, a PermanentStoreError
// and MalformedInput mark a failure that ends work on the current article,
// a RuleMisconfiguration marks a bad detector rule, Cancelled marks
// cooperative cancellation, and Degraded marks a result that was produced
// with a component missing rather than failed outright. The package only
// classifies; no other package in this module constructs these errors or
// branches on their Kind.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies which branch of the taxonomy an error belongs to.
type Kind string

const (
	KindTransientStore    Kind = "transient_store"
	KindPermanentStore    Kind = "permanent_store"
	KindMalformedInput    Kind = "malformed_input"
	KindRuleMisconfigured Kind = "rule_misconfiguration"
	KindCancelled         Kind = "cancelled"
	KindDegraded          Kind = "degraded"
)

// taxonomyError wraps a cause with a Kind so callers can switch on it
// without string matching.
type taxonomyError struct {
	kind  Kind
	msg   string
	cause error
}

func (e *taxonomyError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *taxonomyError) Unwrap() error { return e.cause }

// Kind returns which branch of the taxonomy this error belongs to.
func (e *taxonomyError) Kind() Kind { return e.kind }

func newErr(kind Kind, msg string, cause error) error {
	return &taxonomyError{kind: kind, msg: msg, cause: cause}
}

// TransientStoreError wraps a storage failure expected to resolve on retry
// (connection reset, timeout, temporary unavailability).
func TransientStoreError(msg string, cause error) error {
	return newErr(KindTransientStore, msg, cause)
}

// PermanentStoreError wraps a storage failure that will not resolve on
// retry (constraint violation, missing collection).
func PermanentStoreError(msg string, cause error) error {
	return newErr(KindPermanentStore, msg, cause)
}

// MalformedInput wraps a validation failure on an article or claim that
// cannot be processed as given (missing required field, unparsable date).
func MalformedInput(msg string, cause error) error {
	return newErr(KindMalformedInput, msg, cause)
}

// RuleMisconfiguration wraps a detector or indicator rule that references
// an unknown category, contradicts another rule, or otherwise cannot be
// loaded.
func RuleMisconfiguration(msg string, cause error) error {
	return newErr(KindRuleMisconfigured, msg, cause)
}

// Cancelled wraps context cancellation observed at a pipeline suspension
// point.
func Cancelled(msg string, cause error) error {
	return newErr(KindCancelled, msg, cause)
}

// Degraded wraps a result produced with a dependency unavailable (e.g. the
// similarity provider timed out) rather than a hard failure; the caller
// still has a usable, if lower-confidence, result.
func Degraded(msg string, cause error) error {
	return newErr(KindDegraded, msg, cause)
}

// KindOf extracts the Kind from err if it (or a wrapped cause) is a
// taxonomy error, and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var te *taxonomyError
	if errors.As(err, &te) {
		return te.kind, true
	}
	return "", false
}

// Is reports whether err is a taxonomy error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
