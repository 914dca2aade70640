package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrBadResponse = errors.New("malformed server response")
	ErrUnsupported = errors.New("not supported by the legacy API")
)

// ServerError is a failure reported by the backend itself (success=false).
// Message is shown to the user verbatim and may be empty.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server reported failure"
	}
	return e.Message
}

// IsConnectionError reports whether err came from the transport or from an
// unreadable response rather than from the backend's own verdict.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrBadResponse)
}

// ServerMessage returns the backend's message if err is a *ServerError with a
// non-empty message, or fallback otherwise.
func ServerMessage(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func badResponse(err error) error {
	return fmt.Errorf("%w: %v", ErrBadResponse, err)
}
