package users

import (
	"context"
	"fmt"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

// Repository talks to the user endpoints of the API.
type Repository struct {
	api *apiclient.Client
}

// NewRepository constructs a repository bound to one credential.
func NewRepository(api *apiclient.Client) *Repository {
	return &Repository{api: api}
}

// ListUsers returns every account. The API wraps them as {"user": [...]}.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	var out apiclient.List[User]
	if err := r.api.Get(ctx, "/user", nil, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// GetDetail returns the extended profile of one user.
func (r *Repository) GetDetail(ctx context.Context, id int64) (Detail, error) {
	var out apiclient.Object[Detail]
	if err := r.api.Get(ctx, fmt.Sprintf("/admin/%d/detail", id), nil, &out); err != nil {
		return Detail{}, fmt.Errorf("user detail %d: %w", id, err)
	}
	return out.Value, nil
}

type createBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateUser registers a new account.
func (r *Repository) CreateUser(ctx context.Context, form Form) error {
	return r.api.Post(ctx, "/create-user", createBody{Name: form.Name, Email: form.Email, Password: form.Password, Role: form.Role}, nil)
}

// UpdateUser changes name, email and role. Passwords are not updated here.
func (r *Repository) UpdateUser(ctx context.Context, id int64, form Form) error {
	return r.api.Put(ctx, fmt.Sprintf("/user/%d/update", id), updateBody{Name: form.Name, Email: form.Email, Role: form.Role}, nil)
}

// DeleteUser removes an account.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/user/%d/delete", id), nil)
}

// ListAccounts returns the role profiles served at endpoint.
func (r *Repository) ListAccounts(ctx context.Context, endpoint string) ([]Account, error) {
	var out apiclient.List[Account]
	if err := r.api.Get(ctx, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("list accounts %s: %w", endpoint, err)
	}
	return out, nil
}
