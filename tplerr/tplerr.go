// Package tplerr defines the error taxonomy used across the planner.
//
// Most internal failures are reported with plain fmt.Errorf wrapping, the
// way the rest of this codebase does it. The sentinel Kinds below exist
// only for the handful of outcomes callers are expected to branch on.
package tplerr

import "fmt"

// Kind tags a planner error with one of the categories from the spec's
// error taxonomy.
type Kind int

const (
	// MalformedSyntax means the lexer or parser could not produce a tree.
	MalformedSyntax Kind = iota
	// UnknownSymbol means a reference to an undeclared predicate, type, or object.
	UnknownSymbol
	// UnsupportedFeature means a requirement flag or construct is not implemented.
	UnsupportedFeature
	// UnsupportedDurationExpression means a non-constant :duration was defaulted.
	UnsupportedDurationExpression
	// InconsistentTemporalConstraints means the STN detected a cycle.
	InconsistentTemporalConstraints
	// Interrupted means a deadline or node-expansion budget was hit.
	Interrupted
	// NoSolution means the search frontier was exhausted.
	NoSolution
	// IOFailure means a file read failed.
	IOFailure
)

func (k Kind) String() string {
	switch k {
	case MalformedSyntax:
		return "MalformedSyntax"
	case UnknownSymbol:
		return "UnknownSymbol"
	case UnsupportedFeature:
		return "UnsupportedFeature"
	case UnsupportedDurationExpression:
		return "UnsupportedDurationExpression"
	case InconsistentTemporalConstraints:
		return "InconsistentTemporalConstraints"
	case Interrupted:
		return "Interrupted"
	case NoSolution:
		return "NoSolution"
	case IOFailure:
		return "IOFailure"
	default:
		return "Unknown"
	}
}

// Error is a tagged planner error. File and Offset are filled in when the
// failure can be pinned to a source location (lexer/parser failures).
type Error struct {
	Kind    Kind
	File    string
	Offset  int
	Token   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.File != "" {
		if e.Token != "" {
			return fmt.Sprintf("%s: %s (at byte %d, token %q): %s", e.Kind, e.File, e.Offset, e.Token, e.Message)
		}
		return fmt.Sprintf("%s: %s (at byte %d): %s", e.Kind, e.File, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, tplerr.NoSolution) style matching against a Kind
// by wrapping it as a sentinel-like target comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind that wraps an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// At attaches source-location context (file, byte offset, offending token)
// to an existing error, per §7's requirement to surface offset/token info.
func At(err *Error, file string, offset int, token string) *Error {
	err.File = file
	err.Offset = offset
	err.Token = token
	return err
}

// KindOf returns the Kind of err if it (or something it wraps) is a
// *tplerr.Error, and ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return 0, false
}
