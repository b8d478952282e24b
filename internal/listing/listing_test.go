package listing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
)

type account struct {
	ID     int
	Name   string
	Email  string
	Role   string
	Branch *string
}

func accountFields(a account) []string {
	branch := ""
	if a.Branch != nil {
		branch = *a.Branch
	}
	return []string{a.Name, a.Email, branch}
}

func strptr(s string) *string { return &s }

func sampleAccounts() []account {
	return []account{
		{ID: 1, Name: "Andi", Email: "andi@dailymart.id", Role: "admin", Branch: strptr("Pusat")},
		{ID: 2, Name: "Budi", Email: "budi@dailymart.id", Role: "kurir"},
		{ID: 3, Name: "Citra", Email: "citra@contoh.id", Role: "petugas", Branch: strptr("Cabang Timur")},
		{ID: 4, Name: "Dewi", Email: "dewi@dailymart.id", Role: "kurir", Branch: strptr("Cabang Barat")},
	}
}

func TestFilterSearchIsCaseInsensitiveAndNilSafe(t *testing.T) {
	got := Filter(sampleAccounts(), "TIMUR", accountFields)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	got = Filter(sampleAccounts(), "dailymart", accountFields)
	assert.Equal(t, []int{1, 2, 4}, ids(got), "order must be preserved")
}

func TestFilterEmptySearchAndAllFilterReturnsEverything(t *testing.T) {
	items := sampleAccounts()
	got := Filter(items, "", accountFields, Equals(All, func(a account) string { return a.Role }))
	assert.Equal(t, ids(items), ids(got))
}

func TestFilterCombinesSearchAndCategory(t *testing.T) {
	role := func(a account) string { return a.Role }
	got := Filter(sampleAccounts(), "dailymart", accountFields, Equals("kurir", role))
	assert.Equal(t, []int{2, 4}, ids(got))

	got = Filter(sampleAccounts(), "andi", accountFields, Equals("kurir", role))
	assert.Empty(t, got)
}

func TestFilterSoundness(t *testing.T) {
	items := sampleAccounts()
	role := func(a account) string { return a.Role }
	for _, search := range []string{"", "a", "DEWI", "cabang", "zzz"} {
		for _, r := range []string{All, "kurir", "admin"} {
			got := Filter(items, search, accountFields, Equals(r, role))
			for _, item := range items {
				assert.Equal(t, Matches(item, search, accountFields, Equals(r, role)), containsID(got, item.ID),
					"search=%q role=%q id=%d", search, r, item.ID)
			}
		}
	}
}

func TestWhereIgnoresInactivePredicate(t *testing.T) {
	got := Filter(sampleAccounts(), "", accountFields, Where(false, func(account) bool { return false }))
	assert.Len(t, got, 4)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i + 1
	}

	p := Paginate(items, 3, 5)
	assert.Equal(t, []int{11, 12}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, 11, p.From())
	assert.Equal(t, 12, p.To())

	first := Paginate(items, 1, 5)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())
	assert.Equal(t, 2, first.NextPage())

	empty := Paginate([]int{}, 1, 5)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)

	beyond := Paginate(items, 9, 5)
	assert.Equal(t, 9, beyond.Page, "out-of-range pages are not clamped")
	assert.Empty(t, beyond.Items)
}

func TestPaginatePartitionsTheList(t *testing.T) {
	for n := 0; n <= 17; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for _, size := range []int{1, 3, 5, 10} {
			first := Paginate(items, 1, size)
			var joined []int
			for page := 1; page <= first.TotalPages; page++ {
				joined = append(joined, Paginate(items, page, size).Items...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, items, joined, fmt.Sprintf("n=%d size=%d", n, size))
		}
	}
}

func TestStateResetsPageOnSearchOrFilterChange(t *testing.T) {
	s := NewState("role").WithPage(3)
	assert.Equal(t, 1, s.WithSearch("x").Page)
	assert.Equal(t, 1, s.WithFilter("role", "kurir").Page)
	assert.Equal(t, 3, s.Page, "state is a value")
	assert.Equal(t, 4, s.WithPage(4).Page)
}

func TestParseStateAndLinks(t *testing.T) {
	s := ParseState(url.Values{"q": {" budi "}, "role": {"kurir"}, "page": {"2"}, "other": {"x"}}, "role")
	assert.Equal(t, "budi", s.Search)
	assert.Equal(t, "kurir", s.Filter("role"))
	assert.Equal(t, 2, s.Page)
	assert.True(t, s.Active())

	assert.Equal(t, "?page=3&q=budi&role=kurir", s.PageLink(3))
	assert.Equal(t, "?id=7&modal=edit&page=2&q=budi&role=kurir", s.Link("modal", "edit", "id", "7"))

	def := ParseState(url.Values{"page": {"-4"}}, "role")
	assert.Equal(t, 1, def.Page)
	assert.Equal(t, All, def.Filter("role"))
	assert.False(t, def.Active())
	assert.Equal(t, "?", def.Link())
}

func TestLoadMapsErrorTaxonomy(t *testing.T) {
	ctx := context.Background()
	ok, err := Load(ctx, func(context.Context) ([]account, error) { return nil, nil }, "Gagal mengambil data")
	require.NoError(t, err)
	assert.NotNil(t, ok.Items)
	assert.False(t, ok.Failed())

	cases := []struct {
		err  error
		want string
	}{
		{apiclient.ErrNoCredential, MsgNoCredential},
		{&apiclient.Error{Status: 401}, MsgUnauthorized},
		{&apiclient.Error{Status: 500, Message: "boom"}, "Gagal mengambil data pengguna"},
		{errors.New("dial tcp"), "Gagal mengambil data pengguna"},
	}
	for _, tc := range cases {
		col, err := Load(ctx, func(context.Context) ([]account, error) {
			return sampleAccounts(), tc.err
		}, "Gagal mengambil data pengguna")
		assert.Error(t, err)
		assert.Equal(t, tc.want, col.Error)
		assert.Empty(t, col.Items, "collection is cleared on failure")
	}
}

func ids(items []account) []int {
	out := make([]int, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

func containsID(items []account, id int) bool {
	for _, a := range items {
		if a.ID == id {
			return true
		}
	}
	return false
}

func TestStateURL(t *testing.T) {
	assert.Equal(t, "/admin/cabang", NewState().URL("/admin/cabang"))
	assert.Equal(t, "/admin/cabang?page=2&q=pusat", NewState().WithSearch("pusat").WithPage(2).URL("/admin/cabang"))
}
