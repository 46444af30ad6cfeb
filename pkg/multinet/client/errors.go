package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnexpectedContentType is returned by Response.Decode when a non-JSON
// response is decoded into anything other than a *string.
var ErrUnexpectedContentType = errors.New("unexpected response content type")

// HTTPError is returned for any response outside the 2xx range.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	// Prefer the server's own message when it sent a JSON error document.
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &apiErr); err == nil {
		if apiErr.Message != "" {
			return fmt.Sprintf("%s %s: API error (status %d): %s", e.Method, e.URL, e.StatusCode, apiErr.Message)
		}
		if apiErr.Error != "" {
			return fmt.Sprintf("%s %s: API error (status %d): %s", e.Method, e.URL, e.StatusCode, apiErr.Error)
		}
	}

	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("%s %s: API returned status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: API returned status %d: %s", e.Method, e.URL, e.StatusCode, body)
}

// TransportError wraps a failure of the underlying transport. No status code
// is available because no response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err carries an HTTP response with the given status.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
