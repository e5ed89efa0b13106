package backend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

const genericMessage = "Unable to reach the server. Please try again."

// APIError is any non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// newAPIError pulls the human message out of whichever error envelope the
// endpoint uses: {"message"}, {"error": "..."} or {"error": {"message"}}.
func newAPIError(status int, body []byte) *APIError {
	msg := ""
	if gjson.ValidBytes(body) {
		for _, path := range []string{"message", "error.message", "error"} {
			if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.String() != "" {
				msg = r.String()
				break
			}
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsSessionInvalid is true for the answers that mean the stored token no
// longer maps to a user.
func IsSessionInvalid(err error) bool {
	status := StatusOf(err)
	return status == http.StatusUnauthorized || status == http.StatusNotFound
}

// AlertMessage is the text shown to the user for err: the server's message
// when there is one, a generic line otherwise.
func AlertMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return genericMessage
}
