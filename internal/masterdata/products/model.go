package products

import (
	"strconv"

	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

// LowStockThreshold marks stock levels the list highlights.
const LowStockThreshold = 5

// Stock is the on-hand quantity of a product at its branch.
type Stock struct {
	Qty internalShared.Decimal `json:"qty"`
}

// Product is a product row of one branch.
type Product struct {
	ID       int64                  `json:"id"`
	Name     string                 `json:"nama_produk"`
	Code     string                 `json:"kode_produk"`
	Unit     string                 `json:"satuan"`
	Price    internalShared.Decimal `json:"harga"`
	Category *shared.CategoryRef    `json:"kategori"`
	ImageURL string                 `json:"gambar_url"`
	Stocks   []Stock                `json:"stocks"`
	Branch   *shared.BranchRef      `json:"branch"`
}

// Validate implements apiclient.Validator.
func (p Product) Validate() error {
	if p.ID <= 0 {
		return shared.ErrMissingID
	}
	return nil
}

// Stock is the first stock entry's quantity, 0 without one.
func (p Product) Stock() float64 {
	if len(p.Stocks) == 0 {
		return 0
	}
	return p.Stocks[0].Qty.Float()
}

// LowStock reports whether the stock is under LowStockThreshold.
func (p Product) LowStock() bool {
	return p.Stock() < LowStockThreshold
}

// CategoryName is the category label or "".
func (p Product) CategoryName() string {
	return shared.CategoryName(p.Category)
}

// CategoryKey is the category id as the filter value.
func (p Product) CategoryKey() string {
	if p.Category == nil || p.Category.ID == 0 {
		return ""
	}
	return strconv.FormatInt(p.Category.ID, 10)
}

// BranchCount is one card of the branch picker.
type BranchCount struct {
	Branch   branches.Branch
	Products int
}

func productID(p Product) int64 { return p.ID }

func searchFields(p Product) []string {
	return []string{p.Name, p.Code}
}
