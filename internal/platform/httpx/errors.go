package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors shared across handlers.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrTranslation  = errors.New("translation failure")
)

// Fixed messages surfaced to callers. Internal details are never exposed.
const (
	MessageAuthorizationRequired = "Authorization header required"
	MessageInternal              = "Internal server error"
)

// RespondError maps sentinel errors to the console's error envelope.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		Error(w, http.StatusUnauthorized, MessageAuthorizationRequired)
	default:
		Error(w, http.StatusInternalServerError, MessageInternal)
	}
}
