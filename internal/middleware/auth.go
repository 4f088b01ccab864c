package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pubgoods/internal/domain"
)

type sessionContextKey struct{}

var sessionKey = sessionContextKey{}

const (
	tokenIssuer   = "pubgoods"
	tokenAudience = "pubgoods-clients"
)

// SessionClaims are the registered claims carried by a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SignSessionToken issues an HS256 session token for the given user id.
func SignSessionToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifySessionToken parses and validates a session token, returning the
// bound user id. Any rejection wraps domain.ErrUnauthorized so callers can
// classify it without inspecting jwt internals.
func VerifySessionToken(secret, token string) (string, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token carries no subject", domain.ErrUnauthorized)
	}
	return claims.Subject, nil
}

// RequireSession rejects requests without a valid bearer token. The verified
// session is stored on the request context.
func RequireSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := sessionFromRequest(secret, r)
			if !ok {
				http.Error(w, "invalid or missing token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), session)))
		})
	}
}

// OptionalSession attaches a session when a valid bearer token is present and
// lets anonymous requests through untouched. Donations and uploads use this:
// both are allowed without an account.
func OptionalSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, ok := sessionFromRequest(secret, r); ok {
				r = r.WithContext(ContextWithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionFromRequest(secret string, r *http.Request) (domain.Session, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return domain.Anonymous(), false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Anonymous(), false
	}
	userID, err := VerifySessionToken(secret, parts[1])
	if err != nil || userID == "" {
		return domain.Anonymous(), false
	}
	return domain.Authenticated(userID), true
}

// ContextWithSession stores the session on the context.
func ContextWithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext returns the request session, defaulting to Anonymous.
func SessionFromContext(ctx context.Context) domain.Session {
	if v, ok := ctx.Value(sessionKey).(domain.Session); ok {
		return v
	}
	return domain.Anonymous()
}
