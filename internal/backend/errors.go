package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrProductNotFound    = errors.New("product not found")
	ErrUnavailable        = errors.New("backend unavailable")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// StatusCode returns the backend status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// errorMessage pulls the human message out of an error body. The backend sends
// {"message": "..."} or, for validation failures, {"message": ["...", "..."]}.
func errorMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return strings.TrimSpace(string(body))
	}

	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return string(payload.Message)
}
