package jsonish

import "errors"

// ErrorKind discriminates the recoverable and terminal error conditions the
// core can raise. All kinds are recoverable at the strategy boundary except
// where noted.
type ErrorKind int

const (
	// ParseFailure means no strategy succeeded in producing a matching Value.
	ParseFailure ErrorKind = iota
	// TypeMismatch means coercion was impossible along the attempted path.
	TypeMismatch
	// Ambiguous means multiple irreconcilable matches were found (enum,
	// literal union, boolean). Propagated immediately; never swallowed by
	// the final string fallback.
	Ambiguous
	// Incomplete means a streaming guard fired on an unterminated quoted
	// string in a literal/union context.
	Incomplete
	// CycleDetected means a (schema, value) pair was visited twice during
	// coercion of a recursive schema.
	CycleDetected
	// DepthExceeded means max_depth was reached during coercion.
	DepthExceeded
	// ValidationFailed means the external schema's validate hook rejected
	// an otherwise-coerced candidate. It fails that coercion attempt only:
	// it does not short-circuit the dispatcher, whose later strategies may
	// still produce and validate another candidate.
	ValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ParseFailure:
		return "parse_failure"
	case TypeMismatch:
		return "type_mismatch"
	case Ambiguous:
		return "ambiguous"
	case Incomplete:
		return "incomplete"
	case CycleDetected:
		return "cycle_detected"
	case DepthExceeded:
		return "depth_exceeded"
	case ValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// === Strategy and Coercion Errors ===
var (
	// ErrNoStrategySucceeded is returned when every dispatcher strategy fails.
	ErrNoStrategySucceeded = errors.New("no parse strategy succeeded")

	// ErrTypeMismatch is returned when a Value's shape cannot feed a schema kind.
	ErrTypeMismatch = errors.New("value does not match schema shape")

	// ErrAmbiguousMatch is returned when more than one candidate match is
	// equally plausible and the rules give no tie-break.
	ErrAmbiguousMatch = errors.New("ambiguous match")

	// ErrIncompleteQuotedString is returned by the streaming guard when a
	// literal/union candidate string begins a quote it never closes.
	ErrIncompleteQuotedString = errors.New("incomplete quoted string")

	// ErrCycleDetected is returned when coercion revisits a (schema, value) pair.
	ErrCycleDetected = errors.New("cycle detected in recursive schema")

	// ErrDepthExceeded is returned when coercion recursion passes max depth.
	ErrDepthExceeded = errors.New("max coercion depth exceeded")

	// ErrValidationFailed is returned when the schema's validate hook rejects a value.
	ErrValidationFailed = errors.New("candidate failed schema validation")
)

// Error carries a Kind, a machine-readable Code, a human-readable template
// Message, and the Params used to render it. It mirrors the evaluation-error
// shape used throughout the schema package this module pairs with.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Params  map[string]any
	Err     error // sentinel from the list above, for errors.Is
}

func newError(kind ErrorKind, sentinel error, code, message string, params ...map[string]any) *Error {
	e := &Error{Kind: kind, Code: code, Message: message, Err: sentinel}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

func (e *Error) Error() string {
	return replace(e.Message, e.Params)
}

func (e *Error) Unwrap() error { return e.Err }

func errParseFailure(code, message string, params ...map[string]any) *Error {
	return newError(ParseFailure, ErrNoStrategySucceeded, code, message, params...)
}

func errTypeMismatch(code, message string, params ...map[string]any) *Error {
	return newError(TypeMismatch, ErrTypeMismatch, code, message, params...)
}

func errAmbiguous(code, message string, params ...map[string]any) *Error {
	return newError(Ambiguous, ErrAmbiguousMatch, code, message, params...)
}

func errIncomplete(code, message string, params ...map[string]any) *Error {
	return newError(Incomplete, ErrIncompleteQuotedString, code, message, params...)
}

func errCycle(code, message string, params ...map[string]any) *Error {
	return newError(CycleDetected, ErrCycleDetected, code, message, params...)
}

func errDepth(code, message string, params ...map[string]any) *Error {
	return newError(DepthExceeded, ErrDepthExceeded, code, message, params...)
}

func errValidation(code, message string, params ...map[string]any) *Error {
	return newError(ValidationFailed, ErrValidationFailed, code, message, params...)
}

// isShortCircuiting reports whether err must propagate immediately out of
// the strategy dispatcher instead of being swallowed by a fallback (spec §7
// propagation policy).
func isShortCircuiting(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == Ambiguous || e.Kind == Incomplete
}
