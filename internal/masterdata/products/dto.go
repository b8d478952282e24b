package products

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

// Form is the product modal. Price stays a string so invalid input can be
// shown back to the user.
type Form struct {
	Name          string          `form:"nama_produk" validate:"required"`
	Code          string          `form:"kode_produk" validate:"required"`
	Unit          string          `form:"satuan" validate:"required"`
	Price         string          `form:"harga" validate:"required"`
	CategoryID    string          `form:"kategori_id" validate:"required"`
	Image         *apiclient.File `form:"-" validate:"-"`
	ImageTooLarge bool            `form:"-" validate:"-"`
}

func (f Form) normalize() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Code = strings.TrimSpace(f.Code)
	f.Unit = strings.TrimSpace(f.Unit)
	f.Price = strings.TrimSpace(f.Price)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	return f
}

// fields encodes the multipart text parts sent with the optional image.
func (f Form) fields(branchID int64) url.Values {
	return url.Values{
		"nama_produk": {f.Name},
		"kode_produk": {f.Code},
		"satuan":      {f.Unit},
		"harga":       {f.Price},
		"kategori_id": {f.CategoryID},
		"branch_id":   {strconv.FormatInt(branchID, 10)},
	}
}

func seedForm(p Product) Form {
	return Form{
		Name:       p.Name,
		Code:       p.Code,
		Unit:       p.Unit,
		Price:      strconv.FormatFloat(p.Price.Float(), 'f', -1, 64),
		CategoryID: p.CategoryKey(),
	}
}
