package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx outcome from the backend. The upstream error payload
// is carried verbatim so callers (and the console's error handler) can relay
// it unchanged.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("upstream %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("upstream %d", e.Status)
}

// Message extracts the human-readable message from the backend's error
// envelope. Both {"error": ...} and {"message": ...} shapes occur upstream.
func (e *APIError) Message() string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return ""
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsAuthRejection reports whether err is the backend refusing the bearer
// credential.
func IsAuthRejection(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
