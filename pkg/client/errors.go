package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TransportError reports a request that never produced an HTTP response,
// or whose response could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. Message is the server's error
// payload, or the raw body when the payload is not structured.
type StatusError struct {
	HTTPStatus int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.HTTPStatus, e.Message)
}

type errorPayload struct {
	Error string `json:"error"`
}

// CheckError returns a StatusError for non-2xx responses. The body is
// consumed and closed in that case.
func CheckError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := ReadBody(resp)

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &StatusError{HTTPStatus: resp.StatusCode, Message: payload.Error}
	}
	return &StatusError{HTTPStatus: resp.StatusCode, Message: string(body)}
}

// ReadBody reads and closes the response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close() //nolint:errcheck
	return io.ReadAll(resp.Body)
}
