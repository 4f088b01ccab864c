package handlers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"pubgoods/internal/domain"
	"pubgoods/internal/identity"
	"pubgoods/internal/infra"
	"pubgoods/internal/middleware"
	"pubgoods/internal/providers/summary"
	"pubgoods/internal/storage"
)

// App bundles the dependencies the HTTP handlers need. Every external
// collaborator is an interface or small struct so tests can swap in fakes.
type App struct {
	SQL        infra.SQLExecutor
	Logger     zerolog.Logger
	Config     *infra.Config
	Identity   identity.Client
	Store      *storage.FileStore
	Summarizer summary.Summarizer

	// ListingSeed feeds the landing-page shuffle. Nil means a time-based
	// seed; tests inject a fixed one for reproducible order.
	ListingSeed func() rand.Source
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "error": message})
}

// currentUserID returns the session user id or "" for anonymous requests.
func (a *App) currentUserID(r *http.Request) string {
	userID, _ := middleware.SessionFromContext(r.Context()).UserID()
	return userID
}

func (a *App) listingSource() rand.Source {
	if a.ListingSeed != nil {
		return a.ListingSeed()
	}
	return rand.NewSource(time.Now().UnixNano())
}

// lookupErr classifies a single-row fetch failure: absence maps to
// domain.ErrNotFound, anything else stays a store error.
func lookupErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
