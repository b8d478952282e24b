package stockrequests

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/listing"
	"github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/view"
)

const (
	pagePath     = "/admin/request-stok"
	pageTemplate = "pages/stock_requests.html"
	pageTitle    = "Request Stok"
	loadFailed   = "Gagal mengambil data permintaan stok"
)

type Handler struct {
	logger      *slog.Logger
	credentials *auth.Credentials
	responder   *view.Responder
	validator   *shared.Validator
}

func NewHandler(logger *slog.Logger, credentials *auth.Credentials, responder *view.Responder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, credentials: credentials, responder: responder, validator: shared.NewValidator()}
}

// MountRoutes registers the stock request screen.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/reject", h.Reject)
}

type listPage struct {
	State listing.State
	Tabs  []Tab
	Page  listing.Page[StockRequest]
	Error string
	Modal crud.State[StockRequest, RejectForm]
}

func (h *Handler) service(r *http.Request) *Service {
	return NewService(NewRepository(h.credentials.Client(r)), h.validator)
}

func parseState(r *http.Request) listing.State {
	return listing.ParseState(r.URL.Query(), StatusKey, DateKey)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)
	col := h.load(r, svc)
	modal, _ := svc.Controller().FromQuery(r.URL.Query(), crud.FindByID(col.Items, requestID))
	if modal.Mode == crud.ModeConfirm && modal.Entity != nil {
		if err := Decidable(*modal.Entity); err != nil {
			closed := svc.Controller().Closed()
			closed.Error = err.Error()
			modal = closed
		}
	}
	h.render(w, r, col, modal, http.StatusOK)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, crud.ActionApprove, "Permintaan stok berhasil disetujui!")
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, crud.ActionReject, "Permintaan stok berhasil ditolak!")
}

// decide runs action against the request named by {id}. The list is loaded
// first so a request that is no longer pending is refused without calling
// the API.
func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action, success string) {
	id, err := crud.ParseID(r)
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	svc := h.service(r)
	ctrl := svc.Controller()
	col := h.load(r, svc)
	target, found := crud.FindLoaded(col.Items, id, requestID)
	if !found {
		target = StockRequest{ID: id}
	}

	next, ok, err := ctrl.Execute(r.Context(), ctrl.Confirm(target, action), RejectForm{Reason: r.PostFormValue("reason")})
	if ok {
		h.responder.RedirectWithFlash(w, r, parseState(r).URL(pagePath), "success", success)
		return
	}
	h.credentials.Observe(r, err)
	h.logger.Warn("stock request decision failed", slog.Any("error", err), slog.Int64("request_id", id), slog.String("action", action))
	if verr := Decidable(target); verr != nil {
		next.Error = verr.Error()
	}
	h.render(w, r, col, next, crud.StatusFor(err))
}

func (h *Handler) load(r *http.Request, svc *Service) listing.Collection[StockRequest] {
	col, err := listing.Load(r.Context(), svc.List, loadFailed)
	if err != nil {
		h.credentials.Observe(r, err)
		h.logger.Error("list stock requests failed", slog.Any("error", err))
	}
	return col
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, col listing.Collection[StockRequest], modal crud.State[StockRequest, RejectForm], status int) {
	state := parseState(r)
	h.responder.Render(w, r, pageTemplate, pageTitle, listPage{
		State: state,
		Tabs:  Tabs(col.Items, state.Filter(StatusKey)),
		Page:  listing.Paginate(Visible(col.Items, state), state.Page, listing.DefaultPerPage),
		Error: col.Error,
		Modal: modal,
	}, status)
}
