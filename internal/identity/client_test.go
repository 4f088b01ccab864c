package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubgoods/internal/domain"
)

func TestSignUpParsesUserObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/signup", r.URL.Path)
		require.Equal(t, "svc-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"user":         map[string]string{"id": "user-1", "email": "a@example.com"},
		})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{BaseURL: srv.URL, ServiceKey: "svc-key"})
	require.NoError(t, err)

	account, err := client.SignUp(context.Background(), Credentials{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", account.UserID)
	assert.Equal(t, "tok-1", account.AccessToken)
}

func TestSignInProviderErrorIsShortAndTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.SignIn(context.Background(), Credentials{Email: "a@example.com", Password: "nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderFailure))
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(Options{})
	assert.Error(t, err)
}

func TestSignUpRejectsResponseWithoutUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok"})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.SignUp(context.Background(), Credentials{Email: "a@example.com", Password: "pw"})
	assert.True(t, errors.Is(err, domain.ErrProviderFailure))
}
