package api

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is matched by every client failure. The list view surfaces
// only this signal; RequestError keeps the detail for logs.
var ErrFetchFailed = errors.New("fetch failed")

// ErrorKind says which stage of a request failed
type ErrorKind int

const (
	KindRequest   ErrorKind = iota // request could not be built
	KindTransport                  // network, TLS, timeout, cancellation
	KindStatus                     // non-2xx response
	KindDecode                     // body is not the expected JSON
)

func (k ErrorKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError describes a failed API call
type RequestError struct {
	Op     string
	Method string
	Path   string
	Kind   ErrorKind
	Status int    // only for KindStatus
	Body   string // truncated response body, only for KindStatus
	Err    error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("%s: %s %s returned %d: %s", e.Op, e.Method, e.Path, e.Status, e.Body)
		}
		return fmt.Sprintf("%s: %s %s returned %d", e.Op, e.Method, e.Path, e.Status)
	default:
		return fmt.Sprintf("%s: %s %s: %s failed: %v", e.Op, e.Method, e.Path, e.Kind, e.Err)
	}
}

// Unwrap exposes both ErrFetchFailed and the underlying cause
func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailed}
	}
	return []error{ErrFetchFailed, e.Err}
}

// StatusCode returns the HTTP status of a KindStatus error, or 0
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Kind == KindStatus {
		return reqErr.Status
	}
	return 0
}
