package auth

import (
	"errors"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/shared"
)

// ErrNotAdmin is returned when valid credentials belong to a non-admin.
var ErrNotAdmin = errors.New("auth: account is not an admin")

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	Message string             `json:"message"`
	User    shared.SessionUser `json:"user"`
	Token   string             `json:"token"`
}

// Validate checks the fields the dashboard depends on.
func (r LoginResponse) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("token missing")
	}
	if r.User.ID <= 0 {
		return errors.New("user id missing")
	}
	if strings.TrimSpace(r.User.Role) == "" {
		return errors.New("user role missing")
	}
	return nil
}
