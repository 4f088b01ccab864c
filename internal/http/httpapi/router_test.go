package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubgoods/internal/http/handlers"
	"pubgoods/internal/infra"
)

func newTestRouter(t *testing.T) *httptest.Server {
	t.Helper()
	app := &handlers.App{
		Config: &infra.Config{
			SessionJWTSecret: "test-secret",
			DefaultLocale:    "en",
			RateLimitPerMin:  1000,
		},
	}
	srv := httptest.NewServer(NewRouter(app, nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Health(t *testing.T) {
	srv := newTestRouter(t)

	res, err := srv.Client().Get(srv.URL + "/v1/healthz")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, 200, res.StatusCode)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Equal(t, "ok", payload["status"])
}

func TestRouter_WrongMethodAdvertisesAllowed(t *testing.T) {
	srv := newTestRouter(t)

	res, err := srv.Client().Post(srv.URL+"/donations/recent", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, 405, res.StatusCode)
	assert.Contains(t, res.Header.Get("Allow"), "GET")

	var payload map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Equal(t, "Method not allowed", payload["error"])
}

func TestRouter_ProfileUpsertRequiresToken(t *testing.T) {
	srv := newTestRouter(t)

	req, err := http.NewRequest("PUT", srv.URL+"/profiles/me", nil)
	require.NoError(t, err)
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, 401, res.StatusCode)
}
