package branches

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/listing"
	internalShared "github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/view"
)

const (
	pagePath     = "/admin/cabang"
	pageTemplate = "pages/branches.html"
	pageTitle    = "Master Cabang"
	loadFailed   = "Gagal mengambil data cabang"
)

type Handler struct {
	logger      *slog.Logger
	credentials *auth.Credentials
	responder   *view.Responder
	validator   *internalShared.Validator
}

func NewHandler(logger *slog.Logger, credentials *auth.Credentials, responder *view.Responder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, credentials: credentials, responder: responder, validator: internalShared.NewValidator()}
}

// MountRoutes registers the branch screen under /admin/cabang.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)
}

type listPage struct {
	State listing.State
	Page  listing.Page[Branch]
	Error string
	Modal crud.State[Branch, BranchForm]
}

func (h *Handler) service(r *http.Request) *Service {
	return NewService(NewRepository(h.credentials.Client(r)), h.validator)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)
	state := listing.ParseState(r.URL.Query())
	col := h.load(r, svc)
	modal, _ := svc.Controller().FromQuery(r.URL.Query(), crud.FindByID(col.Items, branchID))
	h.render(w, r, state, col, modal, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	svc := h.service(r)
	ctrl := svc.Controller()
	state := listing.ParseState(r.URL.Query())

	next, ok, err := ctrl.Submit(r.Context(), ctrl.OpenCreate(), formFromRequest(r))
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(pagePath), "success", "Cabang berhasil ditambahkan")
		return
	}
	h.fail(w, r, svc, state, next, err)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
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
	state := listing.ParseState(r.URL.Query())

	next, ok, err := ctrl.Submit(r.Context(), ctrl.OpenEdit(Branch{ID: id}), formFromRequest(r))
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(pagePath), "success", "Cabang berhasil diperbarui")
		return
	}
	h.fail(w, r, svc, state, next, err)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := crud.ParseID(r)
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	svc := h.service(r)
	ctrl := svc.Controller()
	state := listing.ParseState(r.URL.Query())

	next, ok, err := ctrl.Execute(r.Context(), ctrl.Confirm(Branch{ID: id}, crud.ActionDelete), BranchForm{})
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(pagePath), "success", "Cabang berhasil dihapus")
		return
	}
	h.fail(w, r, svc, state, next, err)
}

// fail re-renders the list behind the still-open modal.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, svc *Service, state listing.State, modal crud.State[Branch, BranchForm], err error) {
	h.credentials.Observe(r, err)
	h.logger.Warn("branch action failed", slog.Any("error", err), slog.String("mode", string(modal.Mode)))
	col := h.load(r, svc)
	if modal.Entity != nil {
		if loaded, found := crud.FindLoaded(col.Items, modal.Entity.ID, branchID); found {
			modal.Entity = &loaded
		}
	}
	h.render(w, r, state, col, modal, crud.StatusFor(err))
}

func (h *Handler) load(r *http.Request, svc *Service) listing.Collection[Branch] {
	col, err := listing.Load(r.Context(), svc.List, loadFailed)
	if err != nil {
		h.credentials.Observe(r, err)
		h.logger.Error("list branches failed", slog.Any("error", err))
	}
	return col
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, state listing.State, col listing.Collection[Branch], modal crud.State[Branch, BranchForm], status int) {
	filtered := listing.Filter(col.Items, state.Search, searchFields)
	h.responder.Render(w, r, pageTemplate, pageTitle, listPage{
		State: state,
		Page:  listing.Paginate(filtered, state.Page, listing.DefaultPerPage),
		Error: col.Error,
		Modal: modal,
	}, status)
}

func formFromRequest(r *http.Request) BranchForm {
	return BranchForm{
		Name:    r.PostFormValue("nama_cabang"),
		Address: r.PostFormValue("alamat"),
		Phone:   r.PostFormValue("no_telp"),
	}
}
