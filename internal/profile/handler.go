package profile

import (
	"errors"
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
	pagePath     = "/admin/profil"
	pageTemplate = "pages/profile.html"
	pageTitle    = "Profil Admin"
	loadFailed   = "Gagal mengambil data profil"
	saveFailed   = "Gagal memperbarui profil"
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

// MountRoutes registers the profile page.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Show)
	r.Post("/", h.Update)
}

type page struct {
	Profile        *Profile
	Form           Form
	ChangePassword bool
	Error          string
	Fields         map[string]string
}

func (h *Handler) service(r *http.Request) *Service {
	return NewService(NewRepository(h.credentials.Client(r)), h.validator)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	data := h.load(r, h.service(r))
	if data.Profile != nil {
		data.Form = Form{Name: data.Profile.Name, Email: data.Profile.Email}
	}
	data.ChangePassword = r.URL.Query().Get("password") == "1"
	h.responder.Render(w, r, pageTemplate, pageTitle, data, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := Form{
		Name:           r.PostFormValue("name"),
		Email:          r.PostFormValue("email"),
		ChangePassword: r.PostFormValue("change_password") == "1",
		Password: PasswordChange{
			New:     r.PostFormValue("password"),
			Confirm: r.PostFormValue("password_confirmation"),
			Current: r.PostFormValue("current_password"),
		},
	}
	svc := h.service(r)
	err := svc.Update(r.Context(), form)
	if err == nil {
		h.refreshSessionUser(r, form)
		h.responder.RedirectWithFlash(w, r, pagePath, "success", "Profil berhasil diperbarui!")
		return
	}

	h.credentials.Observe(r, err)
	h.logger.Warn("profile update failed", slog.Any("error", err))
	data := h.load(r, svc)
	data.Form = Form{Name: form.Name, Email: form.Email, ChangePassword: form.ChangePassword}
	data.ChangePassword = form.ChangePassword
	var verrs shared.ValidationErrors
	if errors.As(err, &verrs) {
		data.Error, data.Fields = verrs.Error(), verrs.Fields()
	} else {
		data.Error = apiclient.MessageOf(err, saveFailed)
	}
	h.responder.Render(w, r, pageTemplate, pageTitle, data, crud.StatusFor(err))
}

func (h *Handler) load(r *http.Request, svc *Service) page {
	p, err := svc.Get(r.Context())
	if err != nil {
		h.credentials.Observe(r, err)
		h.logger.Error("load profile failed", slog.Any("error", err))
		return page{Error: listing.FailureMessage(err, apiclient.MessageOf(err, loadFailed))}
	}
	return page{Profile: &p}
}

// refreshSessionUser keeps the header in step with the saved name and email.
func (h *Handler) refreshSessionUser(r *http.Request, form Form) {
	sess := shared.SessionFromContext(r.Context())
	cred, ok := sess.Credential()
	if !ok {
		return
	}
	form = normalize(form)
	cred.User.Name = form.Name
	cred.User.Email = form.Email
	sess.SetCredential(cred)
}
