package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pubgoods/internal/http/handlers"
	"pubgoods/internal/middleware"
)

// NewRouter assembles the HTTP surface: middleware chain, versioned health
// probe, and the public API routes. The country lookup may be nil when no
// GeoIP database is configured.
func NewRouter(app *handlers.App, lookup middleware.CountryLookup) http.Handler {
	cfg := app.Config
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.Locale(cfg.DefaultLocale, lookup),
		middleware.Logger(app.Logger),
	)
	r.MethodNotAllowed(methodNotAllowed(r))

	optional := middleware.OptionalSession(cfg.SessionJWTSecret)
	required := middleware.RequireSession(cfg.SessionJWTSecret)

	r.Get("/v1/healthz", app.Health)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", app.ProjectsSearch)
		r.Get("/{id}", app.ProjectsGet)
		r.With(optional).Post("/", app.ProjectsCreate)
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", app.ProfilesSearch)
		r.Get("/{id}", app.ProfilesGet)
		r.With(required).Put("/me", app.ProfilesUpsert)
	})

	r.Route("/donations", func(r chi.Router) {
		r.With(optional).Post("/", app.DonationsCreate)
		r.Get("/recent", app.DonationsRecent)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", app.AuthSignUp)
		r.Post("/signin", app.AuthSignIn)
		r.With(optional).Get("/session", app.AuthSession)
	})

	r.Post("/summaries", app.SummaryGenerate)
	r.With(optional).Post("/uploads", app.UploadsCreate)
	r.Get("/recommendations", app.Recommendations)

	// Uploaded blobs are served straight off the store; records only ever
	// reference the public URL.
	if app.Store != nil {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(app.Store.BasePath())))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	return r
}

var probeMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost,
	http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// methodNotAllowed answers wrong-method requests with 405 and an Allow header
// listing the methods the path does accept.
func methodNotAllowed(r chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		allowed := make([]string, 0, len(probeMethods))
		for _, method := range probeMethods {
			if r.Match(chi.NewRouteContext(), method, req.URL.Path) {
				allowed = append(allowed, method)
			}
		}
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":  "method_not_allowed",
			"error": "Method not allowed",
		})
	}
}
