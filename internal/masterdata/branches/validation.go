package branches

import internalShared "github.com/dailymart/admin-dashboard/internal/shared"

var branchMessages = internalShared.Messages{
	"nama_cabang.required": "Nama cabang tidak boleh kosong",
	"alamat.required":      "Alamat tidak boleh kosong",
}

func (s *Service) validate(f BranchForm) error {
	return s.validator.Check(f, branchMessages)
}
