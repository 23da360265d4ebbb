package encrypt

import (
	"errors"
	"testing"

	"github.com/prolifik1992/discourse-encrypt/internal/api"
)

func TestAPIErrorIs(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{401, ErrUnauthorized},
		{403, ErrUnauthorized},
		{409, ErrDistributionConflict},
		{429, ErrRateLimited},
	}
	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		if !errors.Is(err, tt.target) {
			t.Errorf("APIError{%d} does not match %v", tt.status, tt.target)
		}
	}

	if errors.Is(&APIError{StatusCode: 500}, ErrUnauthorized) {
		t.Error("APIError{500} matches ErrUnauthorized")
	}
}

func TestWrapError(t *testing.T) {
	if wrapError(nil) != nil {
		t.Error("wrapError(nil) != nil")
	}

	wrapped := wrapError(&api.APIError{StatusCode: 409, Message: "conflict"})
	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatalf("wrapError did not produce *APIError, got %T", wrapped)
	}
	if !errors.Is(wrapped, ErrDistributionConflict) {
		t.Error("wrapped 409 does not match ErrDistributionConflict")
	}

	inner := errors.New("connection refused")
	wrapped = wrapError(&api.NetworkError{Err: inner, URL: "https://x", Attempt: 2})
	var netErr *NetworkError
	if !errors.As(wrapped, &netErr) {
		t.Fatalf("wrapError did not produce *NetworkError, got %T", wrapped)
	}
	if !errors.Is(wrapped, inner) {
		t.Error("wrapped network error does not unwrap to the cause")
	}

	plain := errors.New("plain")
	if wrapError(plain) != plain {
		t.Error("wrapError changed an unrelated error")
	}
}
