package multilead

import "fmt"

// ErrorKind classifies a gateway failure. Callers branch on the kind rather
// than parsing message text.
type ErrorKind int

const (
	// KindAuthentication maps HTTP 401: the configured API key was rejected.
	KindAuthentication ErrorKind = iota + 1
	// KindPermission maps HTTP 403: the key lacks access to the resource.
	KindPermission
	// KindNotFound maps HTTP 404.
	KindNotFound
	// KindRateLimited maps HTTP 429.
	KindRateLimited
	// KindServer maps HTTP 5xx.
	KindServer
	// KindUpstream maps any other non-2xx status.
	KindUpstream
	// KindTimeout means the call did not complete within the configured timeout.
	KindTimeout
	// KindNetwork means a transport failure before any HTTP response arrived.
	KindNetwork
	// KindUnexpected is the catch-all so no raw internal error crosses the
	// gateway boundary unclassified.
	KindUnexpected
	// KindValidation is raised by individual tools before any network call
	// when caller-supplied arguments violate a documented precondition.
	KindValidation
)

// String returns a short label for the kind, used in tool error output.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication_error"
	case KindPermission:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "upstream_server_error"
	case KindUpstream:
		return "upstream_error"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network_error"
	case KindValidation:
		return "validation_error"
	default:
		return "unexpected_error"
	}
}

// Error is the single failure type surfaced by the gateway and the tools.
type Error struct {
	Kind    ErrorKind
	Status  int // HTTP status for the upstream kinds, zero otherwise
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds a classified error without an underlying cause.
func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapError builds a classified error around an underlying cause.
func wrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NewValidationError reports a precondition violation detected before any
// network activity.
func NewValidationError(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

// KindOf returns the classification of err, or KindUnexpected when err is not
// a gateway error.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnexpected
}
