package users

import (
	"errors"

	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

// ErrMissingID flags a record the API returned without an id.
var ErrMissingID = errors.New("users: record without id")

// RoleKey is the query key of the role filter.
const RoleKey = "role"

// Role values accepted by the API.
const (
	RoleAdmin   = "admin"
	RolePetugas = "petugas"
	RoleKurir   = "kurir"
	RoleUser    = "user"
)

// RoleOption is one entry of the role dropdowns.
type RoleOption struct {
	Value string
	Label string
}

// RoleOptions lists the assignable roles in display order.
var RoleOptions = []RoleOption{
	{Value: RoleAdmin, Label: "Admin"},
	{Value: RolePetugas, Label: "Petugas"},
	{Value: RoleKurir, Label: "Kurir"},
	{Value: RoleUser, Label: "User"},
}

// RoleLabel returns the display name of role, or role itself when unknown.
func RoleLabel(role string) string {
	for _, opt := range RoleOptions {
		if opt.Value == role {
			return opt.Label
		}
	}
	return role
}

// User represents a login account.
type User struct {
	ID        int64                     `json:"id"`
	Name      string                    `json:"name"`
	Email     string                    `json:"email"`
	Role      string                    `json:"role"`
	CreatedAt *internalShared.Timestamp `json:"created_at,omitempty"`
	UpdatedAt *internalShared.Timestamp `json:"updated_at,omitempty"`
}

// Validate implements apiclient.Validator.
func (u User) Validate() error {
	if u.ID <= 0 {
		return ErrMissingID
	}
	return nil
}

// RoleLabel is the display name of the user's role.
func (u User) RoleLabel() string { return RoleLabel(u.Role) }

// Detail is the extended profile behind the detail modal.
type Detail struct {
	Name           string `json:"user_name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	IdentityNumber string `json:"identity_number"`
	Class          string `json:"class"`
	Major          string `json:"major"`
	Status         string `json:"status"`
}

// RoleLabel is the display name of the detail's role.
func (d Detail) RoleLabel() string { return RoleLabel(d.Role) }

// HasContact reports whether any contact field is present.
func (d Detail) HasContact() bool { return d.Phone != "" || d.IdentityNumber != "" }

// HasAcademic reports whether any class, major or status field is present.
func (d Detail) HasAcademic() bool { return d.Class != "" || d.Major != "" || d.Status != "" }

// Form is the user create/edit modal.
type Form struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Role     string `form:"role" json:"role" validate:"oneof=admin petugas kurir user"`
	Password string `form:"password" json:"password,omitempty"`
}

// Account is a role profile (staff, courier or customer) with its login
// account and home branch.
type Account struct {
	ID        int64                     `json:"id"`
	UserID    int64                     `json:"user_id"`
	Phone     string                    `json:"no_hp"`
	Address   string                    `json:"alamat"`
	IsGuest   internalShared.Flag       `json:"is_guest"`
	Latitude  internalShared.Decimal    `json:"latitude"`
	Longitude internalShared.Decimal    `json:"longitude"`
	CreatedAt *internalShared.Timestamp `json:"created_at,omitempty"`
	User      *shared.UserRef           `json:"user"`
	Branch    *shared.BranchRef         `json:"branch"`
}

// Validate implements apiclient.Validator.
func (a Account) Validate() error {
	if a.ID <= 0 {
		return ErrMissingID
	}
	return nil
}

// Name is the account holder's name.
func (a Account) Name() string { return shared.UserName(a.User) }

// Email is the account holder's email.
func (a Account) Email() string { return shared.UserEmail(a.User) }

// BranchName is the home branch name or "".
func (a Account) BranchName() string { return shared.BranchName(a.Branch) }

// HasLocation reports whether coordinates are known.
func (a Account) HasLocation() bool {
	return a.Latitude != 0 || a.Longitude != 0
}

// CustomerType labels customers as guests or regulars.
func (a Account) CustomerType() string {
	if a.IsGuest {
		return "Guest"
	}
	return "Reguler"
}

func userID(u User) int64       { return u.ID }
func accountID(a Account) int64 { return a.ID }

func userSearchFields(u User) []string {
	return []string{u.Name, u.Email}
}
