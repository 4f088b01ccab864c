package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const geminiDefaultTimeout = 15 * time.Second

// GeminiOptions configures the Gemini-backed summarizer.
type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Fallback   Summarizer
	OnFallback func(reason string, err error)
}

// GeminiSummarizer generates summaries through the generateContent API.
type GeminiSummarizer struct {
	apiKey     string
	model      string
	baseURL    string
	client     *http.Client
	fallback   Summarizer
	onFallback func(reason string, err error)
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func NewGeminiSummarizer(opts GeminiOptions) (*GeminiSummarizer, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &GeminiSummarizer{
		apiKey:     opts.APIKey,
		model:      model,
		baseURL:    baseURL,
		client:     client,
		fallback:   opts.Fallback,
		onFallback: opts.OnFallback,
	}, nil
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, req Request) (*Response, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: buildPrompt(req)}},
		}},
	}
	body, _ := json.Marshal(payload)
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return g.useFallback(ctx, req, "build_request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(httpReq)
	if err != nil {
		return g.useFallback(ctx, req, "http_request", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return g.useFallback(ctx, req, "provider_status", errors.New(res.Status))
	}
	var parsed geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return g.useFallback(ctx, req, "decode_response", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return g.useFallback(ctx, req, "empty_candidates", errors.New("no candidates"))
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return g.useFallback(ctx, req, "empty_candidates", errors.New("empty candidate text"))
	}
	return &Response{Summary: text, Provider: geminiProviderName}, nil
}

func (g *GeminiSummarizer) useFallback(ctx context.Context, req Request, reason string, cause error) (*Response, error) {
	if g.onFallback != nil {
		g.onFallback(reason, cause)
	}
	if g.fallback == nil {
		return nil, fmt.Errorf("gemini summarize (%s): %w", reason, cause)
	}
	return g.fallback.Summarize(ctx, req)
}

var _ Summarizer = (*GeminiSummarizer)(nil)
