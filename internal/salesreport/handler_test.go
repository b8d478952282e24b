package salesreport_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/internal/salesreport"
	"github.com/dailymart/admin-dashboard/internal/testkit"
	_ "github.com/dailymart/admin-dashboard/testing"
)

func transactionsPayload() map[string]any {
	return map[string]any{
		"transactions": map[string]any{
			"data": []map[string]any{
				{
					"id": 501, "is_online": 1, "total": "45000.00", "payment_method": "transfer", "status": "completed",
					"delivery_status": "delivered", "created_at": "2024-05-02 09:15:00",
					"pelanggan": map[string]any{"id": 7, "no_hp": "0812", "user": map[string]any{"name": "Budi Santoso"}},
					"details": []map[string]any{
						{"id": 1, "product": map[string]any{"id": 10, "nama_produk": "Teh Botol", "harga": 3500}, "qty": 2, "subtotal": 7000},
						{"id": 2, "product": map[string]any{"id": 11, "nama_produk": "Roti Tawar", "harga": 38000}, "qty": 1, "subtotal": 38000},
					},
				},
				{"id": 502, "is_online": 0, "total": 12000, "payment_method": "cash", "status": "pending", "created_at": "2024-05-03 10:00:00"},
			},
			"current_page": 1, "last_page": 3, "total": 22,
		},
		"summary": map[string]any{"total_transactions": 22, "total_revenue": 1250000, "average_transaction": 56818, "completed_count": 15, "pending_count": 7},
	}
}

func fakeAPI() *testkit.API {
	api := testkit.NewAPI()
	api.JSON(http.MethodGet, "/branches", http.StatusOK, []map[string]any{
		{"id": 1, "nama_cabang": "Cabang Pusat", "alamat": "Jl. 1"},
		{"id": 2, "nama_cabang": "Cabang Timur", "alamat": "Jl. 2"},
	})
	api.Router.Get("/laporan/branch-transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("branch_id") == "2" {
			testkit.WriteJSON(w, http.StatusInternalServerError, map[string]any{"message": "Server sibuk"})
			return
		}
		testkit.WriteJSON(w, http.StatusOK, transactionsPayload())
	})
	api.JSON(http.MethodGet, "/laporan/daily-sales", http.StatusOK, []map[string]any{
		{"date": "2024-05-01", "transaction_count": 4, "total_sales": 250000},
		{"date": "2024-05-02", "transaction_count": 6, "total_sales": 410000},
	})
	return api
}

func setup(t *testing.T, api *testkit.API) (*testkit.Env, http.Handler) {
	t.Helper()
	env := testkit.New(t, api)
	store := salesreport.NewSnapshotStore(env.RedisClient, 0)
	h := salesreport.NewHandler(env.Logger, env.Credentials, env.Responder, store)
	return env, testkit.Mount(salesreport.Path, h.MountRoutes)
}

func TestShowWithoutBranchOnlyListsBranches(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, salesreport.Path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Cabang Timur")
	assert.Contains(t, body, "Pilih cabang untuk menampilkan laporan transaksi")
	assert.Empty(t, api.Calls(http.MethodGet, "/laporan/branch-transactions"))
}

func TestShowLoadsReportAndForwardsFilters(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet,
		salesreport.Path+"?branch_id=1&start_date=2024-05-01&end_date=2024-05-07&status=completed&type=online&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Budi Santoso")
	assert.Contains(t, body, "Walk-in")
	assert.Contains(t, body, "Rp 1.250.000", "server summary")
	assert.Contains(t, body, "Menampilkan 1–2 dari 22 data")
	assert.Contains(t, body, "<svg", "daily trend")

	calls := api.Calls(http.MethodGet, "/laporan/branch-transactions")
	require.Len(t, calls, 1)
	q := calls[0].Query
	assert.Equal(t, "1", q.Get("branch_id"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("per_page"))
	assert.Equal(t, "completed", q.Get("status"))
	assert.Equal(t, "1", q.Get("is_online"))
	assert.Len(t, api.Calls(http.MethodGet, "/laporan/daily-sales"), 1)
}

func TestShowWithoutRangeSkipsDailySeries(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, salesreport.Path+"?branch_id=1&start_date=2024-05-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<svg")
	assert.Empty(t, api.Calls(http.MethodGet, "/laporan/daily-sales"))
}

func TestSearchNarrowsLoadedPage(t *testing.T) {
	env, router := setup(t, fakeAPI())
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, salesreport.Path+"?branch_id=1&q=budi", nil)
	body := rec.Body.String()
	assert.Contains(t, body, "#501")
	assert.NotContains(t, body, "#502")
}

func TestDetailModal(t *testing.T) {
	env, router := setup(t, fakeAPI())
	rec := env.Do(t, router, env.Session(t, true), http.MethodGet, salesreport.Path+"?branch_id=1&modal=detail&id=501", nil)
	body := rec.Body.String()
	assert.Contains(t, body, "Detail Transaksi #501")
	assert.Contains(t, body, "Roti Tawar")
	assert.Contains(t, body, "Budi Santoso (0812)")
}

func TestExportWithoutSnapshotRedirects(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	sess := env.Session(t, true)
	rec := env.Do(t, router, sess, http.MethodGet, salesreport.Path+"/export.csv?branch_id=1", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, salesreport.Path+"?branch_id=1", rec.Header().Get("Location"))
	assert.Equal(t, "Tidak ada data untuk diekspor", testkit.Flash(sess).Message)
	assert.Empty(t, api.Calls(http.MethodGet, "/laporan/branch-transactions"))
}

func TestExportsReadTheLoadedSnapshot(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	sess := env.Session(t, true)
	env.Do(t, router, sess, http.MethodGet, salesreport.Path+"?branch_id=1", nil)
	before := api.Total()

	rec := env.Do(t, router, sess, http.MethodGet, salesreport.Path+"/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, salesreport.ContentTypeCSV, rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="Laporan_Transaksi_Cabang_Pusat_`))
	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Roti Tawar", records[2][8])

	rec = env.Do(t, router, sess, http.MethodGet, salesreport.Path+"/export.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, salesreport.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())

	rec = env.Do(t, router, sess, http.MethodGet, salesreport.Path+"/print", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOTAL KESELURUHAN")

	assert.Equal(t, before, api.Total(), "exports never call the API")
}

func TestFailedRefetchKeepsLastKnownGood(t *testing.T) {
	env, router := setup(t, fakeAPI())
	sess := env.Session(t, true)
	env.Do(t, router, sess, http.MethodGet, salesreport.Path+"?branch_id=1", nil)

	rec := env.Do(t, router, sess, http.MethodGet, salesreport.Path+"?branch_id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Server sibuk")
	assert.Contains(t, body, "Menampilkan data terakhir yang berhasil dimuat: Cabang Pusat")
	assert.Contains(t, body, "Budi Santoso")

	rec = env.Do(t, router, sess, http.MethodGet, salesreport.Path+"/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Cabang_Pusat")
}

func TestShowWithoutCredential(t *testing.T) {
	api := fakeAPI()
	env, router := setup(t, api)
	rec := env.Do(t, router, env.Session(t, false), http.MethodGet, salesreport.Path+"?branch_id=1", nil)
	assert.Contains(t, rec.Body.String(), "Silakan login terlebih dahulu.")
	assert.Equal(t, 0, api.Total())
}
