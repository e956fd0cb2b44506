package labapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork: the request never got a response (refused, timed out,
	// cancelled).
	KindNetwork
	// KindValidation: the server rejected the write (400, 409, 422).
	KindValidation
	// KindNotFound: 404.
	KindNotFound
	// KindUnauthorized: 401 or 403.
	KindUnauthorized
	// KindServer: 5xx, any other status, or a body that could not be decoded.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is returned by every Client call that fails.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": " + e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, KindUnknown for nil or foreign errors.
// Context errors count as network failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	return KindUnknown
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}
