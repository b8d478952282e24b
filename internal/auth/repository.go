package auth

import (
	"context"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

// Repository defines the remote operations of the auth module.
type Repository interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

// APIRepository implements Repository against the Daily Mart API.
type APIRepository struct {
	client *apiclient.Client
}

// NewRepository constructs an API-backed repository.
func NewRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges email and password for a token.
func (r *APIRepository) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := r.client.Public().Post(ctx, "/login", loginRequest{Email: email, Password: password}, &resp)
	return resp, err
}

// Logout revokes token on the API.
func (r *APIRepository) Logout(ctx context.Context, token string) error {
	return r.client.WithToken(token).Post(ctx, "/logout", nil, nil)
}
