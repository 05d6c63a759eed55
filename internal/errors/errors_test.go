package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("slow down")

	if err.Error() != "slow down" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "slow down")
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}

	wrapped := fmt.Errorf("fetching: %w", err)
	if !IsRateLimitError(wrapped) {
		t.Fatalf("IsRateLimitError returned false for wrapped RateLimitError")
	}
}

func TestRateLimitErrorWithRetry(t *testing.T) {
	err := NewRateLimitErrorWithRetry("too many requests", 2*time.Minute)

	expected := "too many requests (retry after 2m0s)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if got := RetryAfter(stdErrors.Join(err)); got != 2*time.Minute {
		t.Fatalf("RetryAfter = %v, want 2m", got)
	}
}

func TestRetryAfterOtherError(t *testing.T) {
	if got := RetryAfter(stdErrors.New("boom")); got != 0 {
		t.Fatalf("RetryAfter = %v, want 0", got)
	}
}

func TestAPIStatusError(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
		notFound        bool
	}{
		{
			name:            "tmdb json body",
			status:          401,
			body:            `{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key.","success":false}`,
			expectedMessage: "Invalid TMDB API key (HTTP 401): Invalid API key: You must be granted a valid key.",
		},
		{
			name:            "not found",
			status:          404,
			body:            `{"status_code":34,"status_message":"The resource you requested could not be found."}`,
			expectedMessage: "TMDB resource not found (HTTP 404): The resource you requested could not be found.",
			notFound:        true,
		},
		{
			name:            "plain body",
			status:          500,
			body:            " oops \n",
			expectedMessage: "TMDB: unexpected status 500 (HTTP 500): oops",
		},
		{
			name:            "empty body",
			status:          502,
			body:            "",
			expectedMessage: "TMDB: unexpected status 502 (HTTP 502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIStatusError("TMDB", tt.status, []byte(tt.body))
			if err.Error() != tt.expectedMessage {
				t.Fatalf("Error message = %q, want %q", err.Error(), tt.expectedMessage)
			}
			if IsNotFound(fmt.Errorf("wrapped: %w", err)) != tt.notFound {
				t.Fatalf("IsNotFound = %v, want %v", !tt.notFound, tt.notFound)
			}
		})
	}
}
