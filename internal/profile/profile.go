// Package profile lets the signed-in admin view and update their account.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/shared"
)

// ErrMissingID flags a profile payload without a user id.
var ErrMissingID = errors.New("profile: payload without id")

// AdminRecord is the admin row attached to the user, when one exists.
type AdminRecord struct {
	ID int64 `json:"id"`
}

// Profile is the signed-in account as served by GET /admin/profile.
type Profile struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Role            string            `json:"role"`
	EmailVerifiedAt *shared.Timestamp `json:"email_verified_at,omitempty"`
	CreatedAt       *shared.Timestamp `json:"created_at,omitempty"`
	UpdatedAt       *shared.Timestamp `json:"updated_at,omitempty"`
	Admin           *AdminRecord      `json:"admin,omitempty"`
}

// Validate implements apiclient.Validator.
func (p Profile) Validate() error {
	if p.ID <= 0 {
		return ErrMissingID
	}
	return nil
}

// Verified reports whether the email address has been confirmed.
func (p Profile) Verified() bool {
	return p.EmailVerifiedAt != nil && !p.EmailVerifiedAt.IsZero()
}

// Form is the profile edit form. The password block only applies when
// ChangePassword is set.
type Form struct {
	Name           string         `form:"name" json:"name" validate:"required"`
	Email          string         `form:"email" json:"email" validate:"required,email"`
	ChangePassword bool           `form:"change_password" json:"-" validate:"-"`
	Password       PasswordChange `form:"-" json:"-" validate:"-"`
}

// PasswordChange holds the new password and its confirmation. Field order
// decides which message is shown first.
type PasswordChange struct {
	New     string `form:"password" json:"password" validate:"min=6"`
	Confirm string `form:"password_confirmation" json:"password_confirmation" validate:"eqfield=New"`
	Current string `form:"current_password" json:"current_password" validate:"required"`
}

var profileMessages = shared.Messages{
	"name.required":                 "Nama tidak boleh kosong",
	"email.required":                "Email tidak boleh kosong",
	"email.email":                   "Format email tidak valid",
	"password.min":                  "Password baru minimal 6 karakter",
	"password_confirmation.eqfield": "Password baru dan konfirmasi password tidak cocok",
	"current_password.required":     "Password saat ini diperlukan untuk mengubah password",
}

type updateBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	*PasswordChange
}

// Repository reads and writes the admin profile.
type Repository interface {
	Get(ctx context.Context) (Profile, error)
	Update(ctx context.Context, form Form) error
}

type apiRepository struct {
	api *apiclient.Client
}

// NewRepository binds the repository to one credential.
func NewRepository(api *apiclient.Client) Repository {
	return &apiRepository{api: api}
}

func (r *apiRepository) Get(ctx context.Context) (Profile, error) {
	var out Profile
	if err := r.api.Get(ctx, "/admin/profile", nil, &out); err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return out, nil
}

func (r *apiRepository) Update(ctx context.Context, form Form) error {
	body := updateBody{Name: form.Name, Email: form.Email}
	if form.ChangePassword {
		pw := form.Password
		body.PasswordChange = &pw
	}
	return r.api.Put(ctx, "/admin/profile", body, nil)
}

// Service validates and saves profile changes.
type Service struct {
	repo      Repository
	validator *shared.Validator
}

// NewService builds the service.
func NewService(repo Repository, validator *shared.Validator) *Service {
	if validator == nil {
		validator = shared.NewValidator()
	}
	return &Service{repo: repo, validator: validator}
}

// Get loads the profile.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	return s.repo.Get(ctx)
}

// Validate checks the account fields and, when requested, the password block.
func (s *Service) Validate(form Form) error {
	form = normalize(form)
	if err := s.validator.Check(form, profileMessages); err != nil {
		return err
	}
	if !form.ChangePassword {
		return nil
	}
	return s.validator.Check(form.Password, profileMessages)
}

// Update validates form and sends it.
func (s *Service) Update(ctx context.Context, form Form) error {
	form = normalize(form)
	if err := s.Validate(form); err != nil {
		return err
	}
	return s.repo.Update(ctx, form)
}

func normalize(f Form) Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	if !f.ChangePassword {
		f.Password = PasswordChange{}
	}
	return f
}
