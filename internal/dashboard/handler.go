package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/stockrequests"
	"github.com/dailymart/admin-dashboard/internal/users"
	"github.com/dailymart/admin-dashboard/internal/view"
)

const (
	pageTemplate = "pages/dashboard.html"
	pageTitle    = "Dashboard"
)

type Handler struct {
	logger      *slog.Logger
	credentials *auth.Credentials
	responder   *view.Responder
}

func NewHandler(logger *slog.Logger, credentials *auth.Credentials, responder *view.Responder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, credentials: credentials, responder: responder}
}

// MountRoutes registers the dashboard page.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Show)
}

type page struct {
	Cards []Card
}

// Counters lists the dashboard cards for one credential.
func Counters(api *apiclient.Client) []Counter {
	branchRepo := branches.NewRepository(api)
	userRepo := users.NewRepository(api)
	requestRepo := stockrequests.NewRepository(api)
	return []Counter{
		{
			Key: "branches", Title: "Total Cabang", Link: "/admin/cabang",
			LoadFailed: "Gagal mengambil data cabang",
			Count:      CountOf(branchRepo.List),
		},
		{
			Key: "users", Title: "Total Pengguna", Link: "/admin/kelola-pengguna",
			LoadFailed: "Gagal mengambil data user",
			Count:      CountOf(userRepo.ListUsers),
		},
		{
			Key: "customers", Title: "Total Pelanggan", Link: users.Customers.Path,
			LoadFailed: users.Customers.LoadFailed,
			Count: CountOf(func(ctx context.Context) ([]users.Account, error) {
				return userRepo.ListAccounts(ctx, users.Customers.Endpoint)
			}),
		},
		{
			Key: "pending_requests", Title: "Request Stok Pending", Link: "/admin/request-stok?status=pending",
			LoadFailed: "Gagal mengambil data permintaan stok",
			Count:      CountWhere(requestRepo.List, stockrequests.StockRequest.Pending),
		},
	}
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	svc := NewService(h.logger, Counters(h.credentials.Client(r))...)
	cards, err := svc.Cards(r.Context())
	h.credentials.Observe(r, err)
	h.responder.Render(w, r, pageTemplate, pageTitle, page{Cards: cards}, http.StatusOK)
}
