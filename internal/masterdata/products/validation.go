package products

import (
	"errors"
	"math"
	"strconv"

	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

var productMessages = internalShared.Messages{
	"nama_produk.required": "Nama produk tidak boleh kosong",
	"kode_produk.required": "Kode produk tidak boleh kosong",
	"satuan.required":      "Satuan tidak boleh kosong",
	"harga.required":       "Harga tidak boleh kosong",
	"kategori_id.required": "Kategori harus dipilih",
}

const (
	msgInvalidPrice  = "Harga harus berupa angka lebih dari 0"
	msgImageTooLarge = "Ukuran gambar maksimal 5 MB"
)

func (s *Service) validate(f Form) error {
	var out internalShared.ValidationErrors
	if err := s.validator.Check(f, productMessages); err != nil {
		if !errors.As(err, &out) {
			return err
		}
	}
	if f.Price != "" {
		price, err := strconv.ParseFloat(f.Price, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
			out = append(out, internalShared.FieldError{Field: "harga", Message: msgInvalidPrice})
		}
	}
	if f.ImageTooLarge {
		out = append(out, internalShared.FieldError{Field: "gambar", Message: msgImageTooLarge})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
