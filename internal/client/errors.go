package client

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response. Data holds the decoded JSON body, or the
// raw text for non-JSON responses.
type APIError struct {
	Status  int
	Message string
	Data    any
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, isJSON bool, data any) *APIError {
	message := fmt.Sprintf("Request failed (%d)", status)
	if isJSON {
		if m, ok := data.(map[string]any); ok {
			if msg, ok := m["message"].(string); ok && msg != "" {
				message = msg
			}
		}
	}
	return &APIError{Status: status, Message: message, Data: data}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOr returns the error's message, or fallback for a nil error or an
// empty message.
func MessageOr(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
