package users

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/crud"
	"github.com/dailymart/admin-dashboard/internal/listing"
	"github.com/dailymart/admin-dashboard/internal/view"
)

const rosterTemplate = "pages/accounts.html"

// RosterHandler serves one read-only role roster.
type RosterHandler struct {
	roster      Roster
	logger      *slog.Logger
	credentials *auth.Credentials
	responder   *view.Responder
}

// NewRosterHandler creates a handler for roster.
func NewRosterHandler(roster Roster, logger *slog.Logger, credentials *auth.Credentials, responder *view.Responder) *RosterHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterHandler{roster: roster, logger: logger, credentials: credentials, responder: responder}
}

// Prefix is the roster's mount point below /admin.
func (h *RosterHandler) Prefix() string {
	return strings.TrimPrefix(h.roster.Path, "/admin")
}

// MountRoutes registers the roster list.
func (h *RosterHandler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
}

type rosterPage struct {
	Roster Roster
	State  listing.State
	Page   listing.Page[Account]
	Error  string
	Modal  crud.State[Account, struct{}]
}

// rosterController only opens the detail modal.
var rosterController = crud.Controller[Account, struct{}]{}

func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	svc := NewService(NewRepository(h.credentials.Client(r)), nil)
	state := listing.ParseState(r.URL.Query())
	col, err := listing.Load(r.Context(), func(ctx context.Context) ([]Account, error) {
		return svc.ListAccounts(ctx, h.roster)
	}, h.roster.LoadFailed)
	if err != nil {
		h.credentials.Observe(r, err)
		h.logger.Error("list accounts failed", slog.Any("error", err), slog.String("roster", h.roster.Key))
	}
	modal, _ := rosterController.FromQuery(r.URL.Query(), crud.FindByID(col.Items, accountID))
	filtered := listing.Filter(col.Items, state.Search, h.roster.Search)
	h.responder.Render(w, r, rosterTemplate, h.roster.Title, rosterPage{
		Roster: h.roster,
		State:  state,
		Page:   listing.Paginate(filtered, state.Page, listing.DefaultPerPage),
		Error:  col.Error,
		Modal:  modal,
	}, http.StatusOK)
}
