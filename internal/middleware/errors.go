package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/popeskul/sms-messaging/internal/api"
)

// Error codes written by middleware.
const (
	ErrorCodeInternal          = "INTERNAL_ERROR"
	ErrorCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrorCodeRequestTimeout    = "REQUEST_TIMEOUT"
	ErrorCodeUnauthorized      = "UNAUTHORIZED"
)

const (
	ErrorMessageInternal          = "An internal error occurred"
	ErrorMessageRateLimitExceeded = "Too many requests"
	ErrorMessageRequestTimeout    = "Request timeout"
	ErrorMessageMissingToken      = "Authentication required"
	ErrorMessageInvalidToken      = "Invalid or expired session token"
)

// WriteError renders the JSON error envelope shared with the handlers.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	now := time.Now().UTC()
	render.Status(r, status)
	render.JSON(w, r, api.ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: &now,
	})
}
