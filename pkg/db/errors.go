package db

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError is the only failure the retrieval pipeline knows about. Auth
// failures, missing collections, timeouts and transport errors all collapse
// into it and are told apart only by the message.
type NetworkError struct {
	// Status is the HTTP status code, or 0 for transport failures
	Status int
	// StatusText is the reason phrase of Status
	StatusText string
	// Detail is the server supplied error message, if the body carried one
	Detail string
	// Err is the underlying transport or decoding failure
	Err error
}

// NewStatusError builds a NetworkError for a non-success response.
func NewStatusError(status int, detail string) *NetworkError {
	return &NetworkError{Status: status, StatusText: http.StatusText(status), Detail: detail}
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		text := e.StatusText
		if text == "" {
			text = fmt.Sprintf("status %d", e.Status)
		}
		if e.Detail != "" {
			return fmt.Sprintf("Error fetching documents: %s (%s)", text, e.Detail)
		}
		return fmt.Sprintf("Error fetching documents: %s", text)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "Error fetching documents"
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AsNetworkError returns err as a NetworkError, wrapping foreign errors.
func AsNetworkError(err error) *NetworkError {
	if err == nil {
		return nil
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne
	}
	return &NetworkError{Err: err}
}
