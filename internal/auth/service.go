package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate logs in through the API and returns the credential to keep in
// the session. Only admins may use the dashboard.
func (s *Service) Authenticate(ctx context.Context, email, password string) (shared.Credential, error) {
	resp, err := s.repo.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return shared.Credential{}, errors.Join(shared.ErrInvalidCredentials, err)
		}
		return shared.Credential{}, err
	}
	if !resp.User.IsAdmin() {
		return shared.Credential{}, ErrNotAdmin
	}
	return shared.Credential{
		Token:     resp.Token,
		User:      resp.User,
		ExpiresAt: TokenExpiry(resp.Token),
	}, nil
}

// Revoke asks the API to drop the token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.Logout(ctx, token)
}

// TokenExpiry reads the exp claim when the token is a JWT. Opaque tokens
// yield the zero time, meaning the API alone decides when they lapse. The
// signature is not checked here; the API verifies every request.
func TokenExpiry(token string) time.Time {
	if strings.Count(token, ".") != 2 {
		return time.Time{}
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
