package security

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnauthenticated means no identity could be resolved for a route that
// requires one. Surfaced as a redirect to the login page.
var ErrUnauthenticated = errors.New("authentication required")

// ErrCSRF means a mutating request carried a missing or mismatched token.
var ErrCSRF = errors.New("csrf validation failed")

// RateLimitError reports a denied take from the rate limiter. The caller may
// retry after RetryAfter; the pipeline never retries internally.
type RateLimitError struct {
	Limit      int
	RetryAfter time.Duration
	ResetTime  time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: retry after %ds", int(e.RetryAfter.Seconds()))
}

// ForbiddenError is a hard denial for an authenticated user, distinguishable
// from the unauthenticated redirect.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

// FieldIssue names one invalid field in a submitted form or payload.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the per-field issue list for a 400 response.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Issues[0].Field, e.Issues[0].Message)
	}
	return fmt.Sprintf("validation failed: %d issues", len(e.Issues))
}

// IsDenial reports whether an error is one of the pipeline's typed denials
// rather than an unexpected failure. Denials are mapped to their HTTP
// responses without producing an error event.
func IsDenial(err error) bool {
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrCSRF) {
		return true
	}
	var rateErr *RateLimitError
	var forbiddenErr *ForbiddenError
	var validationErr *ValidationError
	return errors.As(err, &rateErr) || errors.As(err, &forbiddenErr) || errors.As(err, &validationErr)
}
