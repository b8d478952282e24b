package branches

import (
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

// Branch represents a store branch as returned by the API.
type Branch struct {
	ID        int64                     `json:"id"`
	Name      string                    `json:"nama_cabang"`
	Address   string                    `json:"alamat"`
	Phone     string                    `json:"no_telp"`
	CreatedAt *internalShared.Timestamp `json:"created_at,omitempty"`
}

// Validate implements apiclient.Validator.
func (b Branch) Validate() error {
	if b.ID <= 0 {
		return shared.ErrMissingID
	}
	return nil
}

func branchID(b Branch) int64 { return b.ID }

func searchFields(b Branch) []string {
	return []string{b.Name, b.Address, b.Phone}
}
