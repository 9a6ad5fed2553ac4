package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Envelope is the backend's response shape. Auth endpoints additionally
// populate the token, role, and first-login fields alongside data.
type Envelope struct {
	Status     bool            `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	Token      string          `json:"token,omitempty"`
	Role       string          `json:"role,omitempty"`
	FirstLogin bool            `json:"isFirstLogin,omitempty"`
}

// Decode unmarshals the data field into v.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("api: envelope has no data")
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("api: decode data: %w", err)
	}
	return nil
}

// ErrUnauthorized marks auth-failure responses. Callers treat it as
// "session invalid": clear the session and route to the auth area.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a backend error response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets errors.Is recognize auth failures through ErrUnauthorized.
func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// parseError builds an *Error from a non-2xx response body.
func parseError(body []byte, statusCode int) error {
	var errResp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	msg := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		msg = errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	return &Error{StatusCode: statusCode, Message: msg}
}
