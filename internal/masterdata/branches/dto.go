package branches

import "strings"

// BranchForm is the create/edit modal payload. It doubles as the JSON body
// sent to the API.
type BranchForm struct {
	Name    string `form:"nama_cabang" json:"nama_cabang" validate:"required"`
	Address string `form:"alamat" json:"alamat" validate:"required"`
	Phone   string `form:"no_telp" json:"no_telp"`
}

func (f BranchForm) normalize() BranchForm {
	return BranchForm{
		Name:    strings.TrimSpace(f.Name),
		Address: strings.TrimSpace(f.Address),
		Phone:   strings.TrimSpace(f.Phone),
	}
}

func seedForm(b Branch) BranchForm {
	return BranchForm{Name: b.Name, Address: b.Address, Phone: b.Phone}
}
