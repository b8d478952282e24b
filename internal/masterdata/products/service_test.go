package products

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/masterdata/categories"
	"github.com/dailymart/admin-dashboard/internal/masterdata/shared"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
)

type mockRepository struct {
	mu         sync.Mutex
	branches   []branches.Branch
	products   map[int64][]Product
	failFor    map[int64]error
	categories []categories.Category
	catErr     error
	created    []Form
}

func (m *mockRepository) ListByBranch(_ context.Context, branchID int64) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failFor[branchID]; err != nil {
		return nil, err
	}
	return m.products[branchID], nil
}

func (m *mockRepository) Branches(context.Context) ([]branches.Branch, error) {
	return m.branches, nil
}

func (m *mockRepository) Categories(context.Context) ([]categories.Category, error) {
	return m.categories, m.catErr
}

func (m *mockRepository) Create(_ context.Context, _ int64, form Form) error {
	m.created = append(m.created, form)
	return nil
}

func (m *mockRepository) Update(context.Context, int64, int64, Form) error { return nil }

func (m *mockRepository) Delete(context.Context, int64) error { return nil }

func TestBranchesWithCountsTreatsFailureAsZero(t *testing.T) {
	repo := &mockRepository{
		branches: []branches.Branch{{ID: 1, Name: "Pusat"}, {ID: 2, Name: "Timur"}, {ID: 3, Name: "Barat"}},
		products: map[int64][]Product{1: {{ID: 10}, {ID: 11}}, 3: {{ID: 12}}},
		failFor:  map[int64]error{2: errors.New("timeout")},
	}
	got, err := NewService(repo, nil).BranchesWithCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Pusat", got[0].Branch.Name)
	assert.Equal(t, 2, got[0].Products)
	assert.Equal(t, 0, got[1].Products)
	assert.Equal(t, 1, got[2].Products)
}

func TestCatalogBranchNameFromFirstProduct(t *testing.T) {
	repo := &mockRepository{
		branches: []branches.Branch{{ID: 4, Name: "Nama dari daftar"}},
		products: map[int64][]Product{4: {{ID: 1, Branch: &shared.BranchRef{ID: 4, Name: "Cabang Utara"}}}},
		catErr:   errors.New("categories down"),
	}
	cat, err := NewService(repo, nil).Catalog(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Cabang Utara", cat.Branch.Name)
	assert.Empty(t, cat.Categories, "category failure leaves the dropdown empty")

	repo.products[4] = nil
	cat, err = NewService(repo, nil).Catalog(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Nama dari daftar", cat.Branch.Name)
}

func TestCatalogPropagatesProductFailure(t *testing.T) {
	boom := errors.New("boom")
	repo := &mockRepository{failFor: map[int64]error{5: boom}}
	_, err := NewService(repo, nil).Catalog(context.Background(), 5)
	assert.ErrorIs(t, err, boom)
}

func TestValidatePrice(t *testing.T) {
	svc := NewService(&mockRepository{}, nil)
	valid := Form{Name: "Teh", Code: "TH-1", Unit: "botol", Price: "3500", CategoryID: "2"}
	require.NoError(t, svc.validate(valid))

	for _, price := range []string{"abc", "0", "-10", "NaN", "Inf", "-Inf", "1e400"} {
		f := valid
		f.Price = price
		err := svc.validate(f)
		var verrs internalShared.ValidationErrors
		require.ErrorAs(t, err, &verrs, "price %q", price)
		assert.Equal(t, msgInvalidPrice, verrs.Fields()["harga"])
	}

	big := valid
	big.ImageTooLarge = true
	var imgErrs internalShared.ValidationErrors
	require.ErrorAs(t, svc.validate(big), &imgErrs)
	assert.Equal(t, msgImageTooLarge, imgErrs.Fields()["gambar"])

	err := svc.validate(Form{})
	var verrs internalShared.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Nama produk tidak boleh kosong", verrs.Error())
	assert.Equal(t, "Kategori harus dipilih", verrs.Fields()["kategori_id"])
}

func TestProductStockHelpers(t *testing.T) {
	p := Product{}
	assert.Equal(t, 0.0, p.Stock())
	assert.True(t, p.LowStock())

	p.Stocks = []Stock{{Qty: 12}, {Qty: 1}}
	assert.Equal(t, 12.0, p.Stock())
	assert.False(t, p.LowStock())

	p.Category = &shared.CategoryRef{ID: 7, Name: "Minuman"}
	assert.Equal(t, "7", p.CategoryKey())
	assert.Equal(t, "Minuman", p.CategoryName())
}
