package app

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/dashboard"
	"github.com/dailymart/admin-dashboard/internal/masterdata/branches"
	"github.com/dailymart/admin-dashboard/internal/masterdata/categories"
	"github.com/dailymart/admin-dashboard/internal/masterdata/products"
	"github.com/dailymart/admin-dashboard/internal/observability"
	"github.com/dailymart/admin-dashboard/internal/platform/httpx"
	"github.com/dailymart/admin-dashboard/internal/profile"
	"github.com/dailymart/admin-dashboard/internal/salesreport"
	"github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/stockrequests"
	"github.com/dailymart/admin-dashboard/internal/users"
	"github.com/dailymart/admin-dashboard/internal/view"
	"github.com/dailymart/admin-dashboard/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Responder      *view.Responder
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics
	Now            func() time.Time

	AuthHandler          *auth.Handler
	DashboardHandler     *dashboard.Handler
	BranchesHandler      *branches.Handler
	ProductsHandler      *products.Handler
	CategoriesHandler    *categories.Handler
	UsersHandler         *users.Handler
	RosterHandlers       []*users.RosterHandler
	StockRequestsHandler *stockrequests.Handler
	SalesReportHandler   *salesreport.Handler
	ProfileHandler       *profile.Handler
}

// HomePath is where "/" and a fresh login land.
const HomePath = "/admin/dashboard"

// NewRouter constructs the chi.Router serving the dashboard, optionally
// below Config.AppBasePath.
func NewRouter(params RouterParams) http.Handler {
	if params.Logger == nil {
		params.Logger = slog.Default()
	}
	base := ""
	if params.Config != nil {
		base = params.Config.AppBasePath
	}

	r := chi.NewRouter()
	if base == "" {
		mountApp(r, params)
		return r
	}
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, base+HomePath, http.StatusSeeOther)
	})
	r.Route(base, func(r chi.Router) {
		mountApp(r, params)
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		params.Responder.NotFound(w, req)
	})
	return r
}

func mountApp(r chi.Router, params RouterParams) {
	base := ""
	if params.Config != nil {
		base = params.Config.AppBasePath
	}

	r.Get("/healthz", httpx.Healthz)
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix(base+"/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Metrics:        params.Metrics,
			UploadPrefixes: []string{base + "/admin/produk/"},
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			params.Responder.Redirect(w, r, HomePath)
		})
		if params.AuthHandler != nil {
			params.AuthHandler.MountRoutes(r)
		}

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin(base+"/login", params.Now))
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				params.Responder.Redirect(w, r, HomePath)
			})
			mount(r, "/dashboard", params.DashboardHandler)
			mount(r, "/cabang", params.BranchesHandler)
			mount(r, "/produk", params.ProductsHandler)
			mount(r, "/kategori-produk", params.CategoriesHandler)
			mount(r, "/kelola-pengguna", params.UsersHandler)
			for _, roster := range params.RosterHandlers {
				mount(r, roster.Prefix(), roster)
			}
			mount(r, "/request-stok", params.StockRequestsHandler)
			mount(r, "/laporan-penjualan-cabang", params.SalesReportHandler)
			mount(r, "/profil", params.ProfileHandler)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			params.Responder.NotFound(w, r)
		})
	})
}

type routeMounter interface {
	MountRoutes(chi.Router)
}

// mount registers h under prefix. Handlers left nil in RouterParams are
// skipped.
func mount[H interface {
	*E
	routeMounter
}, E any](r chi.Router, prefix string, h H) {
	if h == nil {
		return
	}
	r.Route(prefix, h.MountRoutes)
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Static assets are cached for one hour in the browser.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
