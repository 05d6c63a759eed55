package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIStatusError is returned when a catalog API answers with a non-2xx status.
type APIStatusError struct {
	Message    string
	StatusCode int
	APIMessage string // status_message from the API body if available
}

func (e *APIStatusError) Error() string {
	if e.APIMessage != "" {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.StatusCode, e.APIMessage)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// NewAPIStatusError builds an APIStatusError from a status code and the
// (possibly truncated) response body.
func NewAPIStatusError(service string, statusCode int, body []byte) *APIStatusError {
	var message string
	switch statusCode {
	case http.StatusUnauthorized:
		message = fmt.Sprintf("Invalid %s API key", service)
	case http.StatusNotFound:
		message = fmt.Sprintf("%s resource not found", service)
	default:
		message = fmt.Sprintf("%s: unexpected status %d", service, statusCode)
	}

	return &APIStatusError{
		Message:    message,
		StatusCode: statusCode,
		APIMessage: apiMessage(body),
	}
}

// IsNotFound reports whether err is an APIStatusError with status 404.
func IsNotFound(err error) bool {
	var statusErr *APIStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// apiMessage extracts status_message from a JSON error body, falling back to
// the trimmed body text.
func apiMessage(body []byte) string {
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.StatusMessage != "" {
		return payload.StatusMessage
	}
	return strings.TrimSpace(string(body))
}
