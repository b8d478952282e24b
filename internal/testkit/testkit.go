// Package testkit wires the pieces handler tests need: a Redis-backed session
// store on miniredis, a fake Daily Mart API, the real template engine and a
// signed-in admin session.
package testkit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dailymart/admin-dashboard/internal/auth"
	"github.com/dailymart/admin-dashboard/internal/platform/apiclient"
	"github.com/dailymart/admin-dashboard/internal/shared"
	"github.com/dailymart/admin-dashboard/internal/view"
	"github.com/dailymart/admin-dashboard/web"
)

// AdminToken is the bearer token of the signed-in test admin.
const AdminToken = "test-admin-token"

// Admin is the signed-in test admin.
var Admin = shared.SessionUser{ID: 1, Name: "Admin Pusat", Email: "admin@dailymart.id", Role: "admin"}

// Env is one test's dashboard environment.
type Env struct {
	Logger      *slog.Logger
	Redis       *miniredis.Miniredis
	RedisClient *redis.Client
	API         *httptest.Server
	APIClient   *apiclient.Client
	Sessions    *shared.SessionManager
	CSRF        *shared.CSRFManager
	Templates   *view.Engine
	Responder   *view.Responder
	Credentials *auth.Credentials
}

// New starts miniredis and a fake API serving api. api may be nil when the
// test never reaches the network.
func New(t *testing.T, api http.Handler) *Env {
	t.Helper()
	if api == nil {
		api = http.NotFoundHandler()
	}
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: 5 * time.Second, Logger: logger})

	engine, err := view.NewEngine("")
	require.NoError(t, err)
	nav, err := view.ParseNavigation(web.Navigation)
	require.NoError(t, err)
	csrf := shared.NewCSRFManager("test-csrf-secret")

	return &Env{
		Logger:      logger,
		Redis:       mr,
		RedisClient: rdb,
		API:         srv,
		APIClient:   client,
		Sessions:    shared.NewSessionManager(rdb, "dailymart_session", "test-session-secret", time.Hour, false),
		CSRF:        csrf,
		Templates:   engine,
		Responder:   view.NewResponder(logger, engine, csrf, nav),
		Credentials: auth.NewCredentials(client, logger),
	}
}

// Session returns a fresh session, signed in as Admin when signedIn is set.
func (e *Env) Session(t *testing.T, signedIn bool) *shared.Session {
	t.Helper()
	sess, err := e.Sessions.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	if signedIn {
		sess.SetCredential(shared.Credential{Token: AdminToken, User: Admin})
	}
	return sess
}

// Do serves one request through h with sess attached. form, when not nil,
// is sent url-encoded.
func (e *Env) Do(t *testing.T, h http.Handler, sess *shared.Session, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sess != nil {
		req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Mount builds a router with mount registered under prefix.
func Mount(prefix string, mount func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Route(prefix, mount)
	return r
}

// API is a fake Daily Mart API. Routes answer with canned JSON; every request
// is recorded.
type API struct {
	Router chi.Router

	mu       sync.Mutex
	requests []Recorded
}

// Recorded is one request the fake API received.
type Recorded struct {
	Method string
	Path   string
	Query  url.Values
	Auth   string
	Body   string
	Form   url.Values
}

// NewAPI returns an empty fake API.
func NewAPI() *API {
	a := &API{Router: chi.NewRouter()}
	a.Router.Use(a.record)
	return a
}

func (a *API) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Auth: r.Header.Get("Authorization")}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				rec.Form = r.MultipartForm.Value
			}
		} else if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			rec.Body = string(raw)
			r.Body = io.NopCloser(strings.NewReader(rec.Body))
		}
		a.mu.Lock()
		a.requests = append(a.requests, rec)
		a.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Router.ServeHTTP(w, r)
}

// JSON registers a route answering status with payload.
func (a *API) JSON(method, pattern string, status int, payload any) {
	a.Router.MethodFunc(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, payload)
	})
}

// Total is the number of requests received.
func (a *API) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

// Calls returns the recorded requests for method and path.
func (a *API) Calls(method, path string) []Recorded {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []Recorded
	for _, rec := range a.requests {
		if rec.Method == method && rec.Path == path {
			out = append(out, rec)
		}
	}
	return out
}

// WriteJSON writes payload as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Flash pops the pending flash from sess.
func Flash(sess *shared.Session) *shared.FlashMessage {
	return sess.PopFlash()
}
