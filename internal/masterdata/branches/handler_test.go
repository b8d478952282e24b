package branches_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/testkit"
	_ "github.com/dailymart/admin-dashboard/testing"
)

func branchFixtures() []map[string]any {
	return []map[string]any{
		{"id": 1, "nama_cabang": "Cabang Pusat", "alamat": "Jl. Merdeka 1", "no_telp": "021-111"},
		{"id": 2, "nama_cabang": "Cabang Timur", "alamat": "Jl. Timur 2", "no_telp": "021-222"},
		{"id": 3, "nama_cabang": "Cabang Barat", "alamat": "Jl. Barat 3", "no_telp": ""},
		{"id": 4, "nama_cabang": "Cabang Utara", "alamat": "Jl. Utara 4", "no_telp": "021-444"},
		{"id": 5, "nama_cabang": "Cabang Selatan", "alamat": "Jl. Selatan 5", "no_telp": "021-555"},
		{"id": 6, "nama_cabang": "Cabang Bandara", "alamat": "Terminal 3", "no_telp": "021-666"},
	}
}

func setup(t *testing.T) (*testkit.Env, *testkit.API, http.Handler) {
	t.Helper()
	api := testkit.NewAPI()
	api.JSON(http.MethodGet, "/branches", http.StatusOK, map[string]any{"data": branchFixtures()})
	env := testkit.New(t, api)
	h := branches.NewHandler(env.Logger, env.Credentials, env.Responder)
	return env, api, testkit.Mount("/admin/cabang", h.MountRoutes)
}

func TestListPaginatesAndSearches(t *testing.T) {
	env, api, router := setup(t)
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodGet, "/admin/cabang", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Cabang Pusat")
	assert.Contains(t, body, "Cabang Selatan")
	assert.NotContains(t, body, "Cabang Bandara", "sixth branch is on page 2")
	assert.Contains(t, body, "Menampilkan 1–5 dari 6 data")

	calls := api.Calls(http.MethodGet, "/branches")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer "+testkit.AdminToken, calls[0].Auth)

	rec = env.Do(t, router, sess, http.MethodGet, "/admin/cabang?q=terminal", nil)
	body = rec.Body.String()
	assert.Contains(t, body, "Cabang Bandara")
	assert.NotContains(t, body, "Cabang Pusat")
}

func TestListWithoutCredentialSkipsRequest(t *testing.T) {
	env, api, router := setup(t)
	rec := env.Do(t, router, env.Session(t, false), http.MethodGet, "/admin/cabang", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Silakan login terlebih dahulu.")
	assert.Equal(t, 0, api.Total())
}

func TestListUnauthorizedClearsCredential(t *testing.T) {
	api := testkit.NewAPI()
	api.JSON(http.MethodGet, "/branches", http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
	env := testkit.New(t, api)
	router := testkit.Mount("/admin/cabang", branches.NewHandler(env.Logger, env.Credentials, env.Responder).MountRoutes)
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodGet, "/admin/cabang", nil)
	assert.Contains(t, rec.Body.String(), "Unauthorized: silakan login terlebih dahulu")
	_, ok := sess.Credential()
	assert.False(t, ok)
}

func TestEditModalSeedsForm(t *testing.T) {
	env, _, router := setup(t)
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, "/admin/cabang?modal=edit&id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Edit Cabang")
	assert.Contains(t, body, `value="Cabang Timur"`)
	assert.Contains(t, body, `action="/admin/cabang/2?"`)
}

func TestUnknownRecordClosesModal(t *testing.T) {
	env, _, router := setup(t)
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, "/admin/cabang?modal=edit&id=99", nil)
	assert.NotContains(t, rec.Body.String(), "Edit Cabang")
	assert.Contains(t, rec.Body.String(), "Data tidak ditemukan")
}

func TestCreateValidationBlocksRequest(t *testing.T) {
	env, api, router := setup(t)
	rec := env.Do(t, router, env.Session(t, true), http.MethodPost, "/admin/cabang?q=pusat", url.Values{"nama_cabang": {"  "}, "alamat": {"Jl. Baru"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nama cabang tidak boleh kosong")
	assert.Contains(t, rec.Body.String(), "Jl. Baru", "submitted fields are kept")
	assert.Empty(t, api.Calls(http.MethodPost, "/branches"))
}

func TestCreateSuccessRedirectsWithFlash(t *testing.T) {
	env, api, router := setup(t)
	api.JSON(http.MethodPost, "/branches", http.StatusCreated, map[string]any{"message": "ok"})
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodPost, "/admin/cabang?q=pusat&page=2", url.Values{"nama_cabang": {" Cabang Baru "}, "alamat": {"Jl. Baru"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/cabang?page=2&q=pusat", rec.Header().Get("Location"))

	calls := api.Calls(http.MethodPost, "/branches")
	require.Len(t, calls, 1)
	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &sent))
	assert.Equal(t, "Cabang Baru", sent["nama_cabang"])

	flash := testkit.Flash(sess)
	require.NotNil(t, flash)
	assert.Equal(t, "Cabang berhasil ditambahkan", flash.Message)
}

func TestUpdateFailureShowsServerMessage(t *testing.T) {
	env, api, router := setup(t)
	api.JSON(http.MethodPut, "/branches/2", http.StatusUnprocessableEntity, map[string]any{"message": "Nama cabang sudah dipakai"})

	rec := env.Do(t, router, env.Session(t, true), http.MethodPost, "/admin/cabang/2", url.Values{"nama_cabang": {"Cabang Pusat"}, "alamat": {"Jl. Timur 2"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Nama cabang sudah dipakai")
	assert.Contains(t, body, "Edit Cabang")
	assert.True(t, strings.Contains(body, `value="Cabang Pusat"`))
}

func TestDeleteSuccessAndFailure(t *testing.T) {
	env, api, router := setup(t)
	api.JSON(http.MethodDelete, "/branches/3", http.StatusOK, map[string]any{"message": "deleted"})
	api.JSON(http.MethodDelete, "/branches/4", http.StatusInternalServerError, map[string]any{})
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodPost, "/admin/cabang/3/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Cabang berhasil dihapus", testkit.Flash(sess).Message)

	rec = env.Do(t, router, sess, http.MethodPost, "/admin/cabang/4/delete", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gagal menghapus cabang")
	assert.Contains(t, rec.Body.String(), "Cabang Utara", "list is still shown behind the dialog")
}
