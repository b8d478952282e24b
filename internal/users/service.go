package users

import (
	"context"
	"errors"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetDetail(ctx context.Context, id int64) (Detail, error)
	CreateUser(ctx context.Context, form Form) error
	UpdateUser(ctx context.Context, id int64, form Form) error
	DeleteUser(ctx context.Context, id int64) error
	ListAccounts(ctx context.Context, endpoint string) ([]Account, error)
}

// Service handles user business logic.
type Service struct {
	repo      RepositoryPort
	validator *shared.Validator
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, validator *shared.Validator) *Service {
	if validator == nil {
		validator = shared.NewValidator()
	}
	return &Service{repo: repo, validator: validator}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// Detail fetches the extended profile for the detail modal.
func (s *Service) Detail(ctx context.Context, id int64) (Detail, error) {
	return s.repo.GetDetail(ctx, id)
}

// ListAccounts returns the role profiles of one roster.
func (s *Service) ListAccounts(ctx context.Context, roster Roster) ([]Account, error) {
	return s.repo.ListAccounts(ctx, roster.Endpoint)
}

var userMessages = shared.Messages{
	"name.required":  "Nama dan Email tidak boleh kosong",
	"email.required": "Nama dan Email tidak boleh kosong",
	"email.email":    "Format email tidak valid",
	"role.oneof":     "Role tidak valid",
}

const msgPasswordRequired = "Password tidak boleh kosong"

// Validate checks form for mode. The password is only required when
// creating.
func (s *Service) Validate(form Form, mode crud.Mode) error {
	form = normalize(form)
	var out shared.ValidationErrors
	if err := s.validator.Check(form, userMessages); err != nil {
		if !errors.As(err, &out) {
			return err
		}
	}
	if mode == crud.ModeCreate && strings.TrimSpace(form.Password) == "" {
		out = append(out, shared.FieldError{Field: "password", Message: msgPasswordRequired})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Create validates and registers a user.
func (s *Service) Create(ctx context.Context, form Form) error {
	form = normalize(form)
	if err := s.Validate(form, crud.ModeCreate); err != nil {
		return err
	}
	return s.repo.CreateUser(ctx, form)
}

// Update validates and saves a user.
func (s *Service) Update(ctx context.Context, id int64, form Form) error {
	form = normalize(form)
	if err := s.Validate(form, crud.ModeEdit); err != nil {
		return err
	}
	return s.repo.UpdateUser(ctx, id, form)
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// Controller drives the user modals.
func (s *Service) Controller() crud.Controller[User, Form] {
	return crud.Controller[User, Form]{
		Empty: func() Form { return Form{Role: RoleUser} },
		Seed: func(u User) Form {
			role := u.Role
			if role == "" {
				role = RoleUser
			}
			return Form{Name: u.Name, Email: u.Email, Role: role}
		},
		Validate: s.Validate,
		Create:   s.Create,
		Update:   func(ctx context.Context, u User, f Form) error { return s.Update(ctx, u.ID, f) },
		Actions: map[string]crud.Action[User, Form]{
			crud.ActionDelete: {
				Run:      func(ctx context.Context, u User, _ Form) error { return s.Delete(ctx, u.ID) },
				Fallback: "Gagal menghapus user",
			},
		},
		SaveFallback: "Gagal menyimpan user",
	}
}

func normalize(f Form) Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Role = strings.TrimSpace(f.Role)
	return f
}
