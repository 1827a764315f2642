// Package errs defines the distinguishable error kinds the narrow-phase
// core can return, per spec §7: validation failure, numerical
// non-convergence, unsupported pair, and tolerance-saturated result.
// No panic or exception-style control flow crosses the core boundary;
// every error kind is an explicit returned value.
package errs

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind distinguishes why the core could not give a caller a clean answer.
type Kind int

const (
	// KindValidation marks non-finite parameters, zero-radius spheres,
	// empty convex hulls, non-unit plane normals, and similar
	// construction-time failures. Never raised from the solver hot path.
	KindValidation Kind = iota
	// KindNonConvergence marks EPA exceeding its iteration cap. GJK
	// reaching its own cap is reported as KindToleranceSaturated,
	// alongside its best distance.
	KindNonConvergence
	// KindUnsupportedPair marks a dispatcher miss: no specialized
	// routine in either operand order and the primitives are not both
	// convex.
	KindUnsupportedPair
	// KindToleranceSaturated marks a distance computed less accurately
	// than the caller requested.
	KindToleranceSaturated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNonConvergence:
		return "non-convergence"
	case KindUnsupportedPair:
		return "unsupported-pair"
	case KindToleranceSaturated:
		return "tolerance-saturated"
	default:
		return "unknown"
	}
}

// Error is a Kind-tagged error. Callers that need to branch on the
// failure category should use errors.As, not string matching.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same Kind, so callers
// can write errors.Is(err, errs.Unsupported("")) style checks if they
// prefer that over errors.As.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func wrap(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: chk.Err(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...interface{}) *Error {
	return wrap(KindValidation, format, args...)
}

// NonConvergence builds a KindNonConvergence error.
func NonConvergence(format string, args ...interface{}) *Error {
	return wrap(KindNonConvergence, format, args...)
}

// UnsupportedPair builds a KindUnsupportedPair error.
func UnsupportedPair(format string, args ...interface{}) *Error {
	return wrap(KindUnsupportedPair, format, args...)
}

// ToleranceSaturated builds a KindToleranceSaturated error.
func ToleranceSaturated(format string, args ...interface{}) *Error {
	return wrap(KindToleranceSaturated, format, args...)
}

// Unsupported is a convenience sentinel for errors.Is comparisons
// against KindUnsupportedPair without needing a real message.
func Unsupported(msg string) error {
	return &Error{Kind: KindUnsupportedPair, err: fmt.Errorf("%s", msg)}
}

// IsToleranceSaturated reports whether err is a KindToleranceSaturated
// *Error — the soft outcome spec §7 distinguishes from
// KindNonConvergence: a value was still computed, just less precisely
// than the caller's tolerance asked for. Callers use this to decide
// whether an error alongside a result should be treated as fatal.
func IsToleranceSaturated(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindToleranceSaturated
}
