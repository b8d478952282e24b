package users

// Roster describes one read-only, role-scoped account list.
type Roster struct {
	Key        string
	Title      string
	Noun       string
	Path       string
	Endpoint   string
	LoadFailed string
	Search     func(Account) []string
}

// The role rosters of the user management menu.
var (
	Staff = Roster{
		Key:        "petugas",
		Title:      "Kelola Petugas",
		Noun:       "petugas",
		Path:       "/admin/kelola-petugas",
		Endpoint:   "/petugas",
		LoadFailed: "Gagal mengambil data petugas",
		Search: func(a Account) []string {
			return []string{a.Name(), a.Email(), a.BranchName()}
		},
	}
	Couriers = Roster{
		Key:        "kurir",
		Title:      "Kelola Kurir",
		Noun:       "kurir",
		Path:       "/admin/kelola-kurir",
		Endpoint:   "/kurir",
		LoadFailed: "Gagal mengambil data kurir",
		Search: func(a Account) []string {
			return []string{a.Name(), a.Email(), a.Phone, a.BranchName()}
		},
	}
	Customers = Roster{
		Key:        "pelanggan",
		Title:      "Kelola Pelanggan",
		Noun:       "pelanggan",
		Path:       "/admin/kelola-pelanggan",
		Endpoint:   "/pelanggan",
		LoadFailed: "Gagal mengambil data pelanggan",
		Search: func(a Account) []string {
			return []string{a.Name(), a.Email(), a.Phone, a.Address, a.BranchName()}
		},
	}
)

// IsCustomers reports whether the roster lists customers, which carry an
// address and a guest flag.
func (r Roster) IsCustomers() bool { return r.Key == Customers.Key }
