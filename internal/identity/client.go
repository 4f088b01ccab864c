package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pubgoods/internal/domain"
)

// The identity provider is consumed through two verbs only: sign up and sign
// in with password. Session verification happens locally against the shared
// token secret; see the middleware package.

const defaultTimeout = 10 * time.Second

// Credentials are the email/password pair forwarded to the provider.
type Credentials struct {
	Email    string
	Password string
}

// Account is the provider's view of an authenticated identity.
type Account struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token,omitempty"`
}

// Client is the delegated auth surface used by the handlers.
type Client interface {
	SignUp(ctx context.Context, creds Credentials) (*Account, error)
	SignIn(ctx context.Context, creds Credentials) (*Account, error)
}

// Options configures the HTTP identity client.
type Options struct {
	BaseURL    string
	ServiceKey string
	HTTPClient *http.Client
}

// HTTPClient talks to a GoTrue-style identity service over JSON.
type HTTPClient struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

// NewHTTPClient builds an identity client for the configured provider.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("identity: base url is required")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPClient{baseURL: baseURL, serviceKey: opts.ServiceKey, client: client}, nil
}

// SignUp registers a new identity with the provider.
func (c *HTTPClient) SignUp(ctx context.Context, creds Credentials) (*Account, error) {
	return c.post(ctx, "/signup", creds)
}

// SignIn exchanges credentials for an access token.
func (c *HTTPClient) SignIn(ctx context.Context, creds Credentials) (*Account, error) {
	return c.post(ctx, "/token?grant_type=password", creds)
}

type providerResponse struct {
	AccessToken string `json:"access_token"`
	ID          string `json:"id"`
	Email       string `json:"email"`
	User        *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Msg          string `json:"msg"`
	ErrorMessage string `json:"error_description"`
}

func (c *HTTPClient) post(ctx context.Context, path string, creds Credentials) (*Account, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.serviceKey != "" {
		req.Header.Set("apikey", c.serviceKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: %w: %v", domain.ErrProviderFailure, err)
	}
	defer res.Body.Close()

	var parsed providerResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("identity: decode response: %w", domain.ErrProviderFailure)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := parsed.ErrorMessage
		if msg == "" {
			msg = parsed.Msg
		}
		if msg == "" {
			msg = res.Status
		}
		return nil, fmt.Errorf("identity: %w: %s", domain.ErrProviderFailure, msg)
	}

	account := &Account{AccessToken: parsed.AccessToken, UserID: parsed.ID, Email: parsed.Email}
	if parsed.User != nil {
		account.UserID = parsed.User.ID
		account.Email = parsed.User.Email
	}
	if account.UserID == "" {
		return nil, fmt.Errorf("identity: %w: response missing user id", domain.ErrProviderFailure)
	}
	return account, nil
}

var _ Client = (*HTTPClient)(nil)
