package provider

import (
	"errors"
	"fmt"
	"time"
)

// PreconditionError means a request could not be built at all, usually a
// missing credential or required profile field. Never retryable: the same
// request would fail the same way.
type PreconditionError struct {
	ProfileID string
	Reason    string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("profile %s: %s", e.ProfileID, e.Reason)
}

// TimeoutError means an attempt exceeded the profile's timeout.
type TimeoutError struct {
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.Limit)
}

// NetworkError wraps a transport-level failure such as a DNS miss, a
// refused connection, or a reset.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError is a non-2xx response. Body carries an excerpt of the
// response for diagnostics.
type HTTPStatusError struct {
	Status int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// EmptyResponseError means the backend answered 2xx but the message was
// empty after parsing and cleanup. Not retryable; the chain advances to
// the next profile.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string { return "empty response" }

// IsRetryableStatus reports whether an HTTP status is worth retrying:
// 408 request timeout, 429 rate limited, and any 5xx.
func IsRetryableStatus(status int) bool {
	return status == 408 || status == 429 || status >= 500
}

// Retryable classifies an error from this package's taxonomy. Errors of
// unknown types are not retryable.
func Retryable(err error) bool {
	var (
		timeoutErr *TimeoutError
		netErr     *NetworkError
		statusErr  *HTTPStatusError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return true
	case errors.As(err, &netErr):
		return true
	case errors.As(err, &statusErr):
		return IsRetryableStatus(statusErr.Status)
	default:
		return false
	}
}
