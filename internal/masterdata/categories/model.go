package categories

import (
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
)

// Category groups products.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nama_kategori"`
}

// Validate implements apiclient.Validator.
func (c Category) Validate() error {
	if c.ID <= 0 {
		return shared.ErrMissingID
	}
	return nil
}

// Form is the create/edit payload.
type Form struct {
	Name string `form:"nama_kategori" json:"nama_kategori" validate:"required"`
}

func categoryID(c Category) int64 { return c.ID }

func searchFields(c Category) []string { return []string{c.Name} }
