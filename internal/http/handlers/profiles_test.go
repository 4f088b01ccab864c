package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubgoods/internal/domain"
	"pubgoods/internal/middleware"
	"pubgoods/internal/sqlinline"
)

func TestProfilesUpsert_RequiresSession(t *testing.T) {
	sqlFake := &fakeSQL{}
	app := &App{SQL: sqlFake}

	req := httptest.NewRequest("PUT", "/profiles/me", strings.NewReader(`{"username":"ada"}`))
	rr := httptest.NewRecorder()

	app.ProfilesUpsert(rr, req)

	require.Equal(t, 401, rr.Code)
	assert.Empty(t, sqlFake.queryRowCalls)
}

func TestProfilesUpsert_RejectsTooManySocialLinks(t *testing.T) {
	sqlFake := &fakeSQL{}
	app := &App{SQL: sqlFake}

	body := `{"username":"ada","social_links":["a","b","c","d","e","f"]}`
	req := httptest.NewRequest("PUT", "/profiles/me", strings.NewReader(body))
	req = req.WithContext(middleware.ContextWithSession(req.Context(), domain.Authenticated("user-3")))
	rr := httptest.NewRecorder()

	app.ProfilesUpsert(rr, req)

	require.Equal(t, 400, rr.Code)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	assert.Equal(t, "A maximum of 5 social links is allowed.", payload["error"])
	assert.Empty(t, sqlFake.queryRowCalls)
}

func TestProfilesUpsert_DefaultsOmittedLists(t *testing.T) {
	sqlFake := &fakeSQL{queryRowFn: func(query string, args []any) pgx.Row {
		if query != sqlinline.QUpsertProfile {
			t.Fatalf("unexpected query: %s", query)
		}
		return scanID("user-3")
	}}
	app := &App{SQL: sqlFake}

	req := httptest.NewRequest("PUT", "/profiles/me", strings.NewReader(`{"username":"ada","bio":"builder"}`))
	req = req.WithContext(middleware.ContextWithSession(req.Context(), domain.Authenticated("user-3")))
	rr := httptest.NewRecorder()

	app.ProfilesUpsert(rr, req)

	require.Equal(t, 200, rr.Code)
	require.Len(t, sqlFake.queryRowCalls, 1)
	args := sqlFake.queryRowCalls[0].args
	require.Len(t, args, 7)
	assert.Equal(t, "user-3", args[0], "the key is the session user, never client input")
	assert.Equal(t, []string{}, args[5], "omitted interests store as an empty list")
	assert.Equal(t, []string{}, args[6], "omitted social links store as an empty list")

	var payload map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	assert.Equal(t, "user-3", payload["user_id"])
}

func TestProfilesGet_DistinguishesAbsenceFromFailure(t *testing.T) {
	req := httptest.NewRequest("GET", "/profiles/user-1", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "user-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	// The default fake scans as no rows: absence, not failure.
	app := &App{SQL: &fakeSQL{}}
	rr := httptest.NewRecorder()
	app.ProfilesGet(rr, req)
	require.Equal(t, 404, rr.Code)

	app = &App{SQL: &fakeSQL{queryRowFn: func(string, []any) pgx.Row {
		return simpleRow{scan: func(...any) error {
			return errors.New("connection refused")
		}}
	}}}
	rr = httptest.NewRecorder()
	app.ProfilesGet(rr, req)
	require.Equal(t, 500, rr.Code)
}

func TestProfilesSearch_MatchesUsernameAndBio(t *testing.T) {
	sqlFake := &fakeSQL{queryFn: func(query string, args []any) (pgx.Rows, error) {
		if query != sqlinline.QSearchProfiles {
			t.Fatalf("unexpected query: %s", query)
		}
		require.Len(t, args, 1)
		assert.Equal(t, "ada", args[0])
		return &sliceRows{}, nil
	}}
	app := &App{SQL: sqlFake}

	req := httptest.NewRequest("GET", "/profiles?query=ada", nil)
	rr := httptest.NewRecorder()

	app.ProfilesSearch(rr, req)

	require.Equal(t, 200, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}
