package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/view"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	responder      *view.Responder
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	validator      *shared.Validator
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, responder *view.Responder, sessions *shared.SessionManager, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		service:        service,
		responder:      responder,
		sessionManager: sessions,
		csrfManager:    csrf,
		validator:      shared.NewValidator(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showLogin)
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

var loginMessages = shared.Messages{
	"email.required":    "Email tidak boleh kosong",
	"email.email":       "Format email tidak valid",
	"password.required": "Password tidak boleh kosong",
}

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if user, ok := CurrentUser(r); ok && user.IsAdmin() {
		h.responder.Redirect(w, r, "/admin/dashboard")
		return
	}
	h.responder.Render(w, r, "pages/login.html", "Masuk", loginPageData{Form: loginForm{}}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())

	form := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	errs := make(map[string]string)
	if err := h.validator.Check(form, loginMessages); err != nil {
		var verrs shared.ValidationErrors
		if errors.As(err, &verrs) {
			errs = verrs.Fields()
		}
	}

	if len(errs) == 0 {
		cred, err := h.service.Authenticate(r.Context(), form.Email, form.Password)
		switch {
		case err == nil:
			if sess == nil {
				h.logger.Error("session missing during login")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if err := h.sessionManager.Renew(r.Context(), sess); err != nil {
				h.logger.Warn("renew session", slog.Any("error", err))
			}
			if _, err := h.csrfManager.RotateToken(r.Context(), sess); err != nil {
				h.logger.Warn("rotate csrf token", slog.Any("error", err))
			}
			sess.SetCredential(cred)
			h.logger.Info("admin signed in", slog.Int64("user_id", cred.User.ID))
			h.responder.RedirectWithFlash(w, r, "/admin/dashboard", "success", "Selamat datang kembali, "+cred.User.Name)
			return
		case errors.Is(err, ErrNotAdmin):
			errs["general"] = "Akses ditolak: hanya admin yang dapat masuk"
		case errors.Is(err, shared.ErrInvalidCredentials):
			errs["general"] = "Email atau password tidak valid"
		default:
			h.logger.Error("login request failed", slog.Any("error", err))
			errs["general"] = "Login gagal, silakan coba lagi"
		}
	}

	form.Password = ""
	h.responder.Render(w, r, "pages/login.html", "Masuk", loginPageData{Form: form, Errors: errs}, http.StatusBadRequest)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if cred, ok := sess.Credential(); ok {
		if err := h.service.Revoke(r.Context(), cred.Token); err != nil {
			h.logger.Warn("revoke token", slog.Any("error", err))
		}
	}
	h.sessionManager.Destroy(sess)
	h.responder.Redirect(w, r, "/login")
}

// ShowLoginForTest exposes the GET handler for tests.
func (h *Handler) ShowLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.showLogin(w, r)
}

// HandleLoginForTest exposes the POST handler for tests.
func (h *Handler) HandleLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r)
}

// HandleLogoutForTest exposes the logout handler for tests.
func (h *Handler) HandleLogoutForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogout(w, r)
}
