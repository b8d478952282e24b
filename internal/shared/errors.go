package shared

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionMissing occurs when a handler runs outside the session middleware.
	ErrSessionMissing = errors.New("session missing")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// UserMessage marks an error whose text is safe to show to an admin.
type UserMessage interface {
	UserMessage() string
}

// UserSafeMessage returns the message to flash for err. Errors implementing
// UserMessage speak for themselves, validation errors are shown as is and
// anything else collapses to a generic sentence.
func UserSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	var um UserMessage
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return "Terjadi kesalahan, silakan coba lagi."
}
