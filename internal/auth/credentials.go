package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/shared"
)

// Credentials hands out API clients bound to the signed-in admin's token.
type Credentials struct {
	base   *apiclient.Client
	logger *slog.Logger
}

// NewCredentials wraps the credential-less base client.
func NewCredentials(base *apiclient.Client, logger *slog.Logger) *Credentials {
	if logger == nil {
		logger = slog.Default()
	}
	return &Credentials{base: base, logger: logger}
}

// Client returns a client carrying the session token. Without a stored
// token the client fails every call with apiclient.ErrNoCredential and
// never touches the network.
func (c *Credentials) Client(r *http.Request) *apiclient.Client {
	sess := shared.SessionFromContext(r.Context())
	cred, ok := sess.Credential()
	if !ok {
		return c.base.WithToken("")
	}
	return c.base.WithToken(cred.Token)
}

// Observe forgets the session token once the API has rejected it, so the
// next navigation lands on the login page.
func (c *Credentials) Observe(r *http.Request, err error) {
	if err == nil || !apiclient.IsUnauthorized(err) {
		return
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.ClearCredential()
		c.logger.Info("api rejected session token", slog.String("path", r.URL.Path))
	}
}

// CurrentUser returns the signed-in admin, if any.
func CurrentUser(r *http.Request) (shared.SessionUser, bool) {
	cred, ok := shared.SessionFromContext(r.Context()).Credential()
	if !ok {
		return shared.SessionUser{}, false
	}
	return cred.User, true
}

// RequireAdmin redirects to the login page unless the session holds an
// unexpired admin credential.
func RequireAdmin(loginURL string, now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			cred, ok := sess.Credential()
			if !ok || !cred.User.IsAdmin() || cred.Expired(now()) {
				if sess != nil {
					sess.ClearCredential()
					sess.AddFlash(shared.FlashMessage{Kind: "error", Message: "Silakan login terlebih dahulu."})
				}
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
