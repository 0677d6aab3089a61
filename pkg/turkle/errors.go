package turkle

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind distinguishes the three failure classes a client call can end in.
type ErrorKind int

const (
	// KindInvalidArgument marks caller input rejected before any request is sent.
	KindInvalidArgument ErrorKind = iota + 1

	// KindConnectionFailure marks a transport that could not reach the base URL.
	KindConnectionFailure

	// KindServer marks a response with status >= 400.
	KindServer
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindConnectionFailure:
		return "connection failure"
	case KindServer:
		return "server error"
	default:
		return "unknown"
	}
}

// Sentinels matched by ClientError.Is, so callers can write errors.Is(err, turkle.ErrServer).
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrConnectionFailure = errors.New("connection failure")
	ErrServer            = errors.New("server error")
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrTokenRequired   = errors.New("API token is required")
	ErrInvalidBaseURL  = errors.New("base URL must be an absolute http or https URL")
	ErrUnknownResource = errors.New("unknown resource")
	ErrMalformedPage   = errors.New("malformed page")
)

// ClientError is the single error type produced by the Turkle client. The
// Message is what the user sees; for server errors it is either the server's
// "detail" string or "<field> - <message>" for the first validation error.
type ClientError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ClientError) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.Kind == KindInvalidArgument
	case ErrConnectionFailure:
		return e.Kind == KindConnectionFailure
	case ErrServer:
		return e.Kind == KindServer
	default:
		return false
	}
}

// NewInvalidArgument builds a KindInvalidArgument error.
func NewInvalidArgument(format string, args ...interface{}) *ClientError {
	return &ClientError{
		Kind:    KindInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewConnectionFailure builds a KindConnectionFailure error for baseURL.
func NewConnectionFailure(baseURL string, cause error) *ClientError {
	return &ClientError{
		Kind:    KindConnectionFailure,
		Message: "Unable to connect to " + baseURL,
		Err:     cause,
	}
}

// NewServerError builds a KindServer error.
func NewServerError(statusCode int, message string) *ClientError {
	return &ClientError{
		Kind:       KindServer,
		Message:    message,
		StatusCode: statusCode,
	}
}

// IsInvalidArgument checks if the error was raised before any request was sent.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsConnectionFailure checks if the server could not be reached.
func IsConnectionFailure(err error) bool {
	return errors.Is(err, ErrConnectionFailure)
}

// IsServerError checks if the server answered with an error status.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsNotFound checks if the error is a 404 from the server.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsForbidden checks if the error is a 403 from the server.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	clientErr := &ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr.Kind == KindServer && clientErr.StatusCode == status
	}

	return false
}
