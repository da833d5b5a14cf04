package security

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsDenialRecognizesTypedFailures(t *testing.T) {
	denials := []error{
		ErrUnauthenticated,
		ErrCSRF,
		&RateLimitError{Limit: 2, RetryAfter: time.Minute},
		&ForbiddenError{Reason: "insufficient role"},
		&ValidationError{Issues: []FieldIssue{{Field: "name", Message: "required"}}},
		fmt.Errorf("wrapped: %w", ErrUnauthenticated),
	}
	for _, err := range denials {
		if !IsDenial(err) {
			t.Fatalf("%v should be a denial", err)
		}
	}

	if IsDenial(errors.New("boom")) {
		t.Fatal("plain errors are not denials")
	}
	if IsDenial(nil) {
		t.Fatal("nil is not a denial")
	}
}
