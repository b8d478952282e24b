package users_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/internal/testkit"
	"github.com/dailymart/admin-dashboard/internal/users"
	_ "github.com/dailymart/admin-dashboard/testing"
)

func fakeAPI() *testkit.API {
	api := testkit.NewAPI()
	api.JSON(http.MethodGet, "/user", http.StatusOK, map[string]any{"user": []map[string]any{
		{"id": 1, "name": "Admin Utama", "email": "admin@dailymart.id", "role": "admin"},
		{"id": 2, "name": "Sari Petugas", "email": "sari@dailymart.id", "role": "petugas"},
		{"id": 3, "name": "Joko Kurir", "email": "joko@dailymart.id", "role": "kurir"},
		{"id": 4, "name": "Rina", "email": "rina@gmail.com", "role": "user"},
	}})
	api.JSON(http.MethodGet, "/admin/2/detail", http.StatusOK, map[string]any{"data": map[string]any{
		"user_name": "Sari Petugas", "email": "sari@dailymart.id", "role": "petugas", "phone": "0812-3456",
	}})
	api.JSON(http.MethodGet, "/admin/3/detail", http.StatusInternalServerError, map[string]any{})
	api.JSON(http.MethodGet, "/pelanggan", http.StatusOK, map[string]any{"data": []map[string]any{
		{"id": 7, "no_hp": "0857", "alamat": "Jl. Mawar 3", "is_guest": 1,
			"user": map[string]any{"id": 4, "name": "Rina", "email": "rina@gmail.com"}},
		{"id": 8, "no_hp": "0858", "alamat": "Jl. Melati 9", "is_guest": false,
			"user":   map[string]any{"id": 5, "name": "Tono", "email": "tono@gmail.com"},
			"branch": map[string]any{"id": 1, "nama_cabang": "Cabang Pusat"}},
	}})
	api.JSON(http.MethodGet, "/kurir", http.StatusInternalServerError, map[string]any{})
	return api
}

func setup(t *testing.T, api *testkit.API) (*testkit.Env, http.Handler) {
	t.Helper()
	env := testkit.New(t, api)
	h := users.NewHandler(env.Logger, env.Credentials, env.Responder)
	return env, testkit.Mount("/admin/kelola-pengguna", h.MountRoutes)
}

func TestListFiltersByRole(t *testing.T) {
	env, router := setup(t, fakeAPI())
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, "/admin/kelola-pengguna?role=kurir", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Joko Kurir")
	assert.NotContains(t, body, "Sari Petugas")
	assert.Contains(t, body, "Kurir (1)")
}

func TestDetailModalFetchesProfile(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, "/admin/kelola-pengguna?modal=detail&id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Detail User")
	assert.Contains(t, rec.Body.String(), "0812-3456")
	assert.Len(t, api.Calls(http.MethodGet, "/admin/2/detail"), 1)
}

func TestDetailFailureShowsMessage(t *testing.T) {
	env, router := setup(t, fakeAPI())
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, "/admin/kelola-pengguna?modal=detail&id=3", nil)
	assert.Contains(t, rec.Body.String(), "Gagal mengambil detail user")
	assert.Contains(t, rec.Body.String(), "joko@dailymart.id")
}

func TestCreateRequiresPassword(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	rec := env.Do(t, router, env.Session(t, true), http.MethodPost, "/admin/kelola-pengguna",
		url.Values{"name": {"Budi"}, "email": {"budi@dailymart.id"}, "role": {"user"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password tidak boleh kosong")
	assert.Empty(t, api.Calls(http.MethodPost, "/create-user"))
}

func TestFailedCreateKeepsFieldsButNotPassword(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	rec := env.Do(t, router, env.Session(t, true), http.MethodPost, "/admin/kelola-pengguna",
		url.Values{"name": {"Budi"}, "email": {"bukan-email"}, "role": {"user"}, "password": {"rahasia99"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="Budi"`)
	assert.Contains(t, body, `value="bukan-email"`)
	assert.NotContains(t, body, "rahasia99")
	assert.Empty(t, api.Calls(http.MethodPost, "/create-user"))
}

func TestCreateSendsPassword(t *testing.T) {
	api := fakeAPI()
	api.JSON(http.MethodPost, "/create-user", http.StatusCreated, map[string]any{"message": "ok"})
	env, router := setup(t, api)
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodPost, "/admin/kelola-pengguna?role=user",
		url.Values{"name": {"Budi"}, "email": {"budi@dailymart.id"}, "role": {"user"}, "password": {"rahasia1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/kelola-pengguna?role=user", rec.Header().Get("Location"))

	calls := api.Calls(http.MethodPost, "/create-user")
	require.Len(t, calls, 1)
	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &sent))
	assert.Equal(t, "rahasia1", sent["password"])
	assert.Equal(t, "user", sent["role"])
	assert.Equal(t, "User berhasil ditambahkan", testkit.Flash(sess).Message)
}

func TestUpdateOmitsPassword(t *testing.T) {
	api := fakeAPI()
	api.JSON(http.MethodPut, "/user/{id}/update", http.StatusOK, map[string]any{"message": "ok"})
	env, router := setup(t, api)

	rec := env.Do(t, router, env.Session(t, true), http.MethodPost, "/admin/kelola-pengguna/4",
		url.Values{"name": {"Rina S"}, "email": {"rina@gmail.com"}, "role": {"petugas"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	calls := api.Calls(http.MethodPut, "/user/4/update")
	require.Len(t, calls, 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &sent))
	assert.NotContains(t, sent, "password")
	assert.Equal(t, "petugas", sent["role"])
}

func TestCustomerRosterSearchAndDetail(t *testing.T) {
	api := fakeAPI()
	env := testkit.New(t, api)
	h := users.NewRosterHandler(users.Customers, env.Logger, env.Credentials, env.Responder)
	router := testkit.Mount(users.Customers.Path, h.MountRoutes)
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodGet, "/admin/kelola-pelanggan?q=melati", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Tono")
	assert.NotContains(t, body, "Rina")

	rec = env.Do(t, router, sess, http.MethodGet, "/admin/kelola-pelanggan?modal=detail&id=7", nil)
	body = rec.Body.String()
	assert.Contains(t, body, "Detail Pelanggan")
	assert.Contains(t, body, "Guest")
}

func TestCourierRosterFailure(t *testing.T) {
	api := fakeAPI()
	env := testkit.New(t, api)
	h := users.NewRosterHandler(users.Couriers, env.Logger, env.Credentials, env.Responder)
	router := testkit.Mount(users.Couriers.Path, h.MountRoutes)

	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, "/admin/kelola-kurir", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gagal mengambil data kurir")
}
