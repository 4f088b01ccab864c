package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const openAIDefaultTimeout = 15 * time.Second

// OpenAIOptions configures the OpenAI-backed summarizer.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	Org        string
	HTTPClient *http.Client
	Fallback   Summarizer
	OnFallback func(reason string, err error)
}

// OpenAISummarizer generates summaries through the completions API.
type OpenAISummarizer struct {
	apiKey     string
	model      string
	baseURL    string
	org        string
	client     *http.Client
	fallback   Summarizer
	onFallback func(reason string, err error)
}

type openAIRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewOpenAISummarizer(opts OpenAIOptions) (*OpenAISummarizer, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gpt-4"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAISummarizer{
		apiKey:     opts.APIKey,
		model:      model,
		baseURL:    baseURL,
		org:        opts.Org,
		client:     client,
		fallback:   opts.Fallback,
		onFallback: opts.OnFallback,
	}, nil
}

func (o *OpenAISummarizer) Summarize(ctx context.Context, req Request) (*Response, error) {
	payload := openAIRequest{
		Model:       o.model,
		Prompt:      buildPrompt(req),
		MaxTokens:   200,
		Temperature: 0.7,
	}
	body, _ := json.Marshal(payload)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/completions", bytes.NewReader(body))
	if err != nil {
		return o.useFallback(ctx, req, "build_request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	if o.org != "" {
		httpReq.Header.Set("OpenAI-Organization", o.org)
	}

	res, err := o.client.Do(httpReq)
	if err != nil {
		return o.useFallback(ctx, req, "http_request", err)
	}
	defer res.Body.Close()

	var parsed openAIResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return o.useFallback(ctx, req, "decode_response", err)
	}
	if res.StatusCode != http.StatusOK {
		msg := res.Status
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return o.useFallback(ctx, req, "provider_status", errors.New(msg))
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Text) == "" {
		return o.useFallback(ctx, req, "empty_completion", errors.New("no completion choices"))
	}
	return &Response{
		Summary:  strings.TrimSpace(parsed.Choices[0].Text),
		Provider: openAIProviderName,
	}, nil
}

func (o *OpenAISummarizer) useFallback(ctx context.Context, req Request, reason string, cause error) (*Response, error) {
	if o.onFallback != nil {
		o.onFallback(reason, cause)
	}
	if o.fallback == nil {
		return nil, fmt.Errorf("openai summarize (%s): %w", reason, cause)
	}
	return o.fallback.Summarize(ctx, req)
}

var _ Summarizer = (*OpenAISummarizer)(nil)
