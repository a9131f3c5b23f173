package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// BackendError wraps provider errors with status metadata.
type BackendError struct {
	Backend   string
	Status    int
	Temporary bool
	Err       error
}

func (e *BackendError) Error() string {
	if e == nil {
		return "backend error"
	}
	if e.Err != nil {
		if e.Backend != "" {
			return fmt.Sprintf("%s: %v", e.Backend, e.Err)
		}
		return e.Err.Error()
	}
	return fmt.Sprintf("backend error (status=%d)", e.Status)
}

func (e *BackendError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsTransient reports whether an error is safe to retry: timeouts,
// temporary backend errors, rate limiting and 5xx statuses. The core
// never retries a completion itself; this classifier is exported for the
// retry and fallback layer callers stack on top of it.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		if backendErr.Temporary {
			return true
		}
		if backendErr.Status == 429 || (backendErr.Status >= 500 && backendErr.Status <= 599) {
			return true
		}
	}
	return false
}
