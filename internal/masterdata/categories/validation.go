package categories

import internalShared "github.com/dailymart/admin-dashboard/internal/shared"

var categoryMessages = internalShared.Messages{
	"nama_kategori.required": "Nama kategori tidak boleh kosong",
}

func (s *Service) validate(f Form) error {
	return s.validator.Check(f, categoryMessages)
}
