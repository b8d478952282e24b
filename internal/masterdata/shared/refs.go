// Package shared holds the relation objects the API nests inside records
// (a product's branch, a request's staff member and so on). Any of them may
// arrive as null, so callers read them through the nil-safe helpers.
package shared

// BranchRef is a nested branch.
type BranchRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"nama_cabang"`
	Address string `json:"alamat,omitempty"`
	Phone   string `json:"no_telp,omitempty"`
}

// UserRef is a nested user account.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// CategoryRef is a nested product category.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"nama_kategori"`
}

// ProductRef is a nested product.
type ProductRef struct {
	ID       int64        `json:"id"`
	Name     string       `json:"nama_produk"`
	Code     string       `json:"kode_produk,omitempty"`
	Category *CategoryRef `json:"kategori,omitempty"`
}

// PersonRef is a role profile (staff, courier, customer) with its account.
type PersonRef struct {
	ID    int64    `json:"id"`
	Phone string   `json:"no_hp,omitempty"`
	User  *UserRef `json:"user"`
}

// BranchName returns the branch name or "".
func BranchName(b *BranchRef) string {
	if b == nil {
		return ""
	}
	return b.Name
}

// UserName returns the account name or "".
func UserName(u *UserRef) string {
	if u == nil {
		return ""
	}
	return u.Name
}

// UserEmail returns the account email or "".
func UserEmail(u *UserRef) string {
	if u == nil {
		return ""
	}
	return u.Email
}

// PersonName returns the name of the account behind a role profile or "".
func PersonName(p *PersonRef) string {
	if p == nil {
		return ""
	}
	return UserName(p.User)
}

// ProductName returns the product name or "".
func ProductName(p *ProductRef) string {
	if p == nil {
		return ""
	}
	return p.Name
}

// CategoryName returns the category name or "".
func CategoryName(c *CategoryRef) string {
	if c == nil {
		return ""
	}
	return c.Name
}
