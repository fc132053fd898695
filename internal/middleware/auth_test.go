package middleware

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AdamBeresnev/beach-volley/internal/organizer"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrganizers map[uuid.UUID]*organizer.Organizer

func (f fakeOrganizers) Get(ctx context.Context, id uuid.UUID) (*organizer.Organizer, error) {
	if o, ok := f[id]; ok {
		return o, nil
	}
	return nil, sql.ErrNoRows
}

// newAuthServer serves /login-as/{id} plus a protected page and API route
// that echo the organizer's name.
func newAuthServer(t *testing.T, organizers fakeOrganizers) *httptest.Server {
	t.Helper()

	sessionManager := scs.New()
	mux := http.NewServeMux()
	mux.HandleFunc("/login-as/", func(w http.ResponseWriter, r *http.Request) {
		id := uuid.MustParse(r.URL.Path[len("/login-as/"):])
		if err := Login(r.Context(), sessionManager, id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	protected := RequireOrganizer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetOrganizer(r.Context()).Username))
	}))
	mux.Handle("/api/me", protected)
	mux.Handle("/page", protected)

	handler := sessionManager.LoadAndSave(LoadOrganizer(sessionManager, organizers)(mux))
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestRequireOrganizerWithoutSession(t *testing.T) {
	srv := newAuthServer(t, fakeOrganizers{})
	client := noRedirectClient()

	resp, err := client.Get(srv.URL + "/api/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/page")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginLoadsOrganizer(t *testing.T) {
	o := &organizer.Organizer{ID: uuid.New(), Username: "Mario"}
	srv := newAuthServer(t, fakeOrganizers{o.ID: o})
	client := noRedirectClient()

	resp, err := client.Get(srv.URL + "/login-as/" + o.ID.String())
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/me", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Mario", string(body))
}

func TestLoadOrganizerDropsUnknownID(t *testing.T) {
	srv := newAuthServer(t, fakeOrganizers{})
	client := noRedirectClient()

	resp, err := client.Get(srv.URL + "/login-as/" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/me", nil)
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		req.AddCookie(c)
	}
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
