package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type branch struct {
	ID   int64  `json:"id"`
	Name string `json:"nama_cabang"`
}

func (b branch) Validate() error {
	if b.ID <= 0 {
		return errors.New("id missing")
	}
	return nil
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveAPICall(method, endpoint string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, method+" "+endpoint)
}

func TestClientWithoutTokenIssuesNoRequest(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL})
	var out List[branch]
	err := client.Get(context.Background(), "/branches", nil, &out)
	require.ErrorIs(t, err, ErrNoCredential)

	err = client.WithToken("   ").Get(context.Background(), "/branches", nil, &out)
	require.ErrorIs(t, err, ErrNoCredential)
	assert.Zero(t, hits)
}

func TestClientAttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "7", r.URL.Query().Get("branch_id"))
		_, _ = io.WriteString(w, `[{"id":1,"nama_cabang":"Pusat"},{"id":2,"nama_cabang":"Timur"}]`)
	}))
	defer srv.Close()

	base := New(Options{BaseURL: srv.URL + "/"})
	var out List[branch]
	err := base.WithToken("tok-1").Get(context.Background(), "/branches", url.Values{"branch_id": {"7"}}, &out)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Timur", out[1].Name)
	assert.False(t, base.HasCredential(), "deriving a token client must not mutate the base client")
}

func TestClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Unauthenticated."}`)
	}))
	defer srv.Close()

	err := New(Options{BaseURL: srv.URL}).WithToken("expired").Get(context.Background(), "/user", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Equal(t, "Unauthenticated.", MessageOf(err, "fallback"))
}

func TestClientServerMessageAndFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/create-user":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"errors":{"email":["Email sudah digunakan"]}}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `<html>oops</html>`)
		}
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL}).WithToken("t")
	err := client.Post(context.Background(), "/create-user", map[string]string{"name": "A"}, nil)
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "Email sudah digunakan", MessageOf(err, "Gagal menyimpan"))

	err = client.Delete(context.Background(), "/user/3/delete", nil)
	require.Error(t, err)
	assert.Equal(t, "Gagal menghapus", MessageOf(err, "Gagal menghapus"))
	assert.Equal(t, "Gagal", MessageOf(errors.New("dial tcp: refused"), "Gagal"))
}

func TestClientRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad-shape" {
			_, _ = io.WriteString(w, `[{"nama_cabang":"tanpa id"}]`)
			return
		}
		_, _ = io.WriteString(w, `"not a list"`)
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL}).WithToken("t")
	var out List[branch]
	err := client.Get(context.Background(), "/bad-shape", nil, &out)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	err = client.Get(context.Background(), "/not-json", nil, &out)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestListEnvelopes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			_, _ = io.WriteString(w, `{"user":[{"id":5,"nama_cabang":"x"}]}`)
		case "/paged":
			_, _ = io.WriteString(w, `{"data":{"data":[{"id":6}],"last_page":1}}`)
		default:
			_, _ = io.WriteString(w, `{"data":[{"id":7}]}`)
		}
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL}).WithToken("t")
	for path, want := range map[string]int64{"/user": 5, "/paged": 6, "/plain": 7} {
		var out List[branch]
		require.NoError(t, client.Get(context.Background(), path, nil, &out), path)
		require.Len(t, out, 1, path)
		assert.Equal(t, want, out[0].ID, path)
	}
}

func TestPostMultipartAndObserver(t *testing.T) {
	obs := &recordingObserver{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "PUT", r.URL.Query().Get("_method"))
		assert.Equal(t, "Beras", r.FormValue("nama_produk"))
		file, header, err := r.FormFile("gambar")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, "beras.png", header.Filename)
		assert.Equal(t, "PNGDATA", string(body))
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL, Observer: obs}).WithToken("t")
	err := client.PostMultipart(context.Background(), "/products/12?_method=PUT", nil,
		url.Values{"nama_produk": {"Beras"}},
		&File{Field: "gambar", Name: "beras.png", Content: strings.NewReader("PNGDATA")}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"POST /products/:id"}, obs.calls)
}

func TestPublicClientSkipsCredentialCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"token":"abc"}`)
	}))
	defer srv.Close()

	var out struct {
		Token string `json:"token"`
	}
	err := New(Options{BaseURL: srv.URL}).Public().Post(context.Background(), "/login", map[string]string{"email": "a@b.c"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "abc", out.Token)
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/stock-requests/:id/approve", endpointLabel("/stock-requests/41/approve"))
	assert.Equal(t, "/laporan/daily-sales", endpointLabel("/laporan/daily-sales"))
}
