package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/listing"
	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/view"
)

const (
	usersPath     = "/admin/kelola-pengguna"
	usersTemplate = "pages/users.html"
	usersTitle    = "Kelola Pengguna"
	usersFailed   = "Gagal mengambil data user"
	detailFailed  = "Gagal mengambil detail user"
)

// Handler serves the user management screen.
type Handler struct {
	logger      *slog.Logger
	credentials *auth.Credentials
	responder   *view.Responder
	validator   *shared.Validator
}

// NewHandler creates a new user handler.
func NewHandler(logger *slog.Logger, credentials *auth.Credentials, responder *view.Responder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, credentials: credentials, responder: responder, validator: shared.NewValidator()}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/delete", h.Delete)
}

type usersPage struct {
	State      listing.State
	Page       listing.Page[User]
	Roles      []RoleOption
	Error      string
	Modal      crud.State[User, Form]
	Detail     *Detail
	RoleCounts map[string]int
}

func (h *Handler) service(r *http.Request) *Service {
	return NewService(NewRepository(h.credentials.Client(r)), h.validator)
}

// List renders the user table and whichever modal the query names.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)
	state := listing.ParseState(r.URL.Query(), RoleKey)
	col := h.load(r, svc)
	modal, _ := svc.Controller().FromQuery(r.URL.Query(), crud.FindByID(col.Items, userID))

	var detail *Detail
	if modal.IsDetail() && modal.Entity != nil {
		d, err := svc.Detail(r.Context(), modal.Entity.ID)
		if err != nil {
			h.credentials.Observe(r, err)
			h.logger.Warn("user detail failed", slog.Any("error", err), slog.Int64("user_id", modal.Entity.ID))
			modal.Error = apiclient.MessageOf(err, detailFailed)
		} else {
			detail = &d
		}
	}
	h.render(w, r, state, col, modal, detail, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	svc := h.service(r)
	ctrl := svc.Controller()
	state := listing.ParseState(r.URL.Query(), RoleKey)

	next, ok, err := ctrl.Submit(r.Context(), ctrl.OpenCreate(), formFromRequest(r))
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(usersPath), "success", "User berhasil ditambahkan")
		return
	}
	next.Form.Password = ""
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
	state := listing.ParseState(r.URL.Query(), RoleKey)

	next, ok, err := ctrl.Submit(r.Context(), ctrl.OpenEdit(User{ID: id}), formFromRequest(r))
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(usersPath), "success", "User berhasil diperbarui")
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
	state := listing.ParseState(r.URL.Query(), RoleKey)

	next, ok, err := ctrl.Execute(r.Context(), ctrl.Confirm(User{ID: id}, crud.ActionDelete), Form{})
	if ok {
		h.responder.RedirectWithFlash(w, r, state.URL(usersPath), "success", "User berhasil dihapus")
		return
	}
	h.fail(w, r, svc, state, next, err)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, svc *Service, state listing.State, modal crud.State[User, Form], err error) {
	h.credentials.Observe(r, err)
	h.logger.Warn("user action failed", slog.Any("error", err), slog.String("mode", string(modal.Mode)))
	col := h.load(r, svc)
	if modal.Entity != nil {
		if loaded, found := crud.FindLoaded(col.Items, modal.Entity.ID, userID); found {
			modal.Entity = &loaded
		}
	}
	h.render(w, r, state, col, modal, nil, crud.StatusFor(err))
}

func (h *Handler) load(r *http.Request, svc *Service) listing.Collection[User] {
	col, err := listing.Load(r.Context(), svc.ListUsers, usersFailed)
	if err != nil {
		h.credentials.Observe(r, err)
		h.logger.Error("list users failed", slog.Any("error", err))
	}
	return col
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, state listing.State, col listing.Collection[User], modal crud.State[User, Form], detail *Detail, status int) {
	filtered := listing.Filter(col.Items, state.Search, userSearchFields,
		listing.Equals(state.Filter(RoleKey), func(u User) string { return u.Role }))
	counted := make(map[string]int, len(RoleOptions))
	for _, opt := range RoleOptions {
		role := opt.Value
		counted[role] = listing.Count(col.Items, func(u User) bool { return u.Role == role })
	}
	h.responder.Render(w, r, usersTemplate, usersTitle, usersPage{
		State:      state,
		Page:       listing.Paginate(filtered, state.Page, listing.DefaultPerPage),
		Roles:      RoleOptions,
		Error:      col.Error,
		Modal:      modal,
		Detail:     detail,
		RoleCounts: counted,
	}, status)
}

func formFromRequest(r *http.Request) Form {
	return Form{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Role:     r.PostFormValue("role"),
		Password: r.PostFormValue("password"),
	}
}
