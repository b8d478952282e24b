package stockrequests_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/internal/stockrequests"
	"github.com/dailymart/admin-dashboard/internal/testkit"
	_ "github.com/dailymart/admin-dashboard/testing"
)

func fixtures() []map[string]any {
	statuses := []string{"pending", "approved", "pending", "rejected", "pending", "approved",
		"approved", "pending", "rejected", "approved", "pending", "rejected"}
	out := make([]map[string]any, len(statuses))
	for i, st := range statuses {
		out[i] = map[string]any{
			"id":          i + 1,
			"qty_request": 10 + i,
			"status":      st,
			"created_at":  fmt.Sprintf("2024-05-%02dT08:00:00.000000Z", 1+i%3),
			"branch":      map[string]any{"id": 1, "nama_cabang": "Cabang Pusat"},
			"product":     map[string]any{"id": 100 + i, "nama_produk": fmt.Sprintf("Produk %02d", i+1)},
			"petugas":     map[string]any{"id": 5, "user": map[string]any{"id": 9, "name": "Sari"}},
		}
	}
	return out
}

func setup(t *testing.T) (*testkit.Env, *testkit.API, http.Handler) {
	t.Helper()
	api := testkit.NewAPI()
	api.JSON(http.MethodGet, "/stock-requests", http.StatusOK, fixtures())
	env := testkit.New(t, api)
	h := stockrequests.NewHandler(env.Logger, env.Credentials, env.Responder)
	return env, api, testkit.Mount("/admin/request-stok", h.MountRoutes)
}

func TestPendingTabShowsFiveOnOnePage(t *testing.T) {
	env, _, router := setup(t)
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, "/admin/request-stok?status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, name := range []string{"Produk 01", "Produk 03", "Produk 05", "Produk 08", "Produk 11"} {
		assert.Contains(t, body, name)
	}
	assert.NotContains(t, body, "Produk 02")
	assert.Contains(t, body, "Menampilkan 1–5 dari 5 data")
	assert.NotContains(t, body, "Berikutnya</a>")
	assert.Contains(t, body, `Semua <span class="tab-count">12</span>`)
	assert.Contains(t, body, `Pending <span class="tab-count">5</span>`)
}

func TestApproveConfirmOnlyForPending(t *testing.T) {
	env, _, router := setup(t)
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodGet, "/admin/request-stok?modal=approve&id=1", nil)
	assert.Contains(t, rec.Body.String(), "Setujui Permintaan")

	rec = env.Do(t, router, sess, http.MethodGet, "/admin/request-stok?modal=approve&id=2", nil)
	assert.NotContains(t, rec.Body.String(), "Setujui Permintaan")
	assert.Contains(t, rec.Body.String(), "Permintaan stok sudah diproses")
}

func TestApproveSuccess(t *testing.T) {
	env, api, router := setup(t)
	api.JSON(http.MethodPut, "/stock-requests/{id}/approve", http.StatusOK, map[string]any{"message": "ok"})
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodPost, "/admin/request-stok/3/approve?status=pending", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/request-stok?status=pending", rec.Header().Get("Location"))
	assert.Len(t, api.Calls(http.MethodPut, "/stock-requests/3/approve"), 1)
	assert.Equal(t, "Permintaan stok berhasil disetujui!", testkit.Flash(sess).Message)
}

func TestApproveDecidedRequestSkipsAPI(t *testing.T) {
	env, api, router := setup(t)
	rec := env.Do(t, router, env.Session(t, true), http.MethodPost, "/admin/request-stok/2/approve", url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Permintaan stok sudah diproses")
	assert.Empty(t, api.Calls(http.MethodPut, "/stock-requests/2/approve"))
}

func TestRejectNeedsReason(t *testing.T) {
	env, api, router := setup(t)
	api.JSON(http.MethodPut, "/stock-requests/{id}/reject", http.StatusOK, map[string]any{"message": "ok"})
	sess := env.Session(t, true)

	rec := env.Do(t, router, sess, http.MethodPost, "/admin/request-stok/5/reject", url.Values{"reason": {" "}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alasan penolakan harus diisi")
	assert.Contains(t, rec.Body.String(), "Tolak Permintaan", "reject dialog stays open")
	assert.Empty(t, api.Calls(http.MethodPut, "/stock-requests/5/reject"))

	rec = env.Do(t, router, sess, http.MethodPost, "/admin/request-stok/5/reject", url.Values{"reason": {"Stok gudang kosong"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	calls := api.Calls(http.MethodPut, "/stock-requests/5/reject")
	require.Len(t, calls, 1)
	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &sent))
	assert.Equal(t, "Stok gudang kosong", sent["reason"])
	assert.Equal(t, "Permintaan stok berhasil ditolak!", testkit.Flash(sess).Message)
}

func TestRejectFailureShowsServerMessage(t *testing.T) {
	env, api, router := setup(t)
	api.JSON(http.MethodPut, "/stock-requests/{id}/reject", http.StatusConflict, map[string]any{"message": "Permintaan sedang diproses gudang"})
	rec := env.Do(t, router, env.Session(t, true), http.MethodPost, "/admin/request-stok/8/reject", url.Values{"reason": {"Duplikat"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Permintaan sedang diproses gudang")
}
