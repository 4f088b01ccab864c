package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pubgoods/internal/identity"
	"pubgoods/internal/middleware"
)

const sessionTTL = 24 * time.Hour

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Accepted for wire compatibility; the identity provider does not use it.
	WalletAddress string `json:"wallet_address"`
}

type authResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type authVerb func(ctx context.Context, creds identity.Credentials) (*identity.Account, error)

// AuthSignUp delegates registration to the identity provider and issues a
// session token for the new identity.
func (a *App) AuthSignUp(w http.ResponseWriter, r *http.Request) {
	a.authenticate(w, r, a.Identity.SignUp, "Failed to sign up")
}

// AuthSignIn exchanges credentials for a session token.
func (a *App) AuthSignIn(w http.ResponseWriter, r *http.Request) {
	a.authenticate(w, r, a.Identity.SignIn, "Failed to sign in")
}

func (a *App) authenticate(w http.ResponseWriter, r *http.Request, verb authVerb, failMsg string) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Email and password are required")
		return
	}
	account, err := verb(r.Context(), identity.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		a.Logger.Error().Err(err).Msg("identity provider call failed")
		a.error(w, http.StatusInternalServerError, "internal", failMsg)
		return
	}
	token, err := middleware.SignSessionToken(a.Config.SessionJWTSecret, account.UserID, sessionTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign session token failed")
		a.error(w, http.StatusInternalServerError, "internal", failMsg)
		return
	}
	a.json(w, http.StatusOK, authResponse{UserID: account.UserID, Email: account.Email, Token: token})
}

// AuthSession reports the request's auth state as a tagged value: anonymous
// or authenticated with a user id.
func (a *App) AuthSession(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if userID, ok := session.UserID(); ok {
		a.json(w, http.StatusOK, map[string]any{"authenticated": true, "user_id": userID})
		return
	}
	a.json(w, http.StatusOK, map[string]any{"authenticated": false})
}
