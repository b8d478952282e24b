package view

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dailymart/admin-dashboard/internal/shared"
)

// Responder renders pages with the layout data every admin screen needs and
// issues flash redirects. Handlers share one Responder.
type Responder struct {
	logger    *slog.Logger
	templates *Engine
	csrf      *shared.CSRFManager
	nav       *Navigation
}

// NewResponder constructs a Responder.
func NewResponder(logger *slog.Logger, templates *Engine, csrf *shared.CSRFManager, nav *Navigation) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{logger: logger, templates: templates, csrf: csrf, nav: nav}
}

// URL prefixes path with the base path.
func (rs *Responder) URL(path string) string {
	return rs.templates.BasePath() + path
}

// Render writes template with status. The flash, CSRF token, signed-in user
// and sidebar are filled in from the request.
func (rs *Responder) Render(w http.ResponseWriter, r *http.Request, template, title string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := rs.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	var user *shared.SessionUser
	if sess != nil {
		flash = sess.PopFlash()
		if cred, ok := sess.Credential(); ok {
			user = &cred.User
		}
	}
	current := strings.TrimPrefix(r.URL.Path, rs.templates.BasePath())
	if current == "" {
		current = "/"
	}
	viewData := TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: current,
		BasePath:    rs.templates.BasePath(),
		User:        user,
		Menu:        rs.nav.Resolve(current, rs.templates.BasePath()),
		Data:        data,
	}
	if err := rs.templates.RenderStatus(w, template, viewData, status); err != nil {
		rs.logger.Error("render template", slog.Any("error", err), slog.String("template", template))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// RedirectWithFlash queues a flash and redirects to location, which is a
// path without the base prefix.
func (rs *Responder) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil && message != "" {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, rs.URL(location), http.StatusSeeOther)
}

// Redirect sends the browser to location without a flash.
func (rs *Responder) Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, rs.URL(location), http.StatusSeeOther)
}

// NotFound renders the 404 panel.
func (rs *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rs.Render(w, r, "pages/not_found.html", "Halaman tidak ditemukan", nil, http.StatusNotFound)
}
