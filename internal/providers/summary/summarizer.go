package summary

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Request carries the project text to summarize.
type Request struct {
	ProjectID   string
	ProjectName string
	Description string
}

// Response is the generated summary plus which provider produced it.
type Response struct {
	Summary  string
	Provider string
}

// Summarizer produces a short description of a public-goods project.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (*Response, error)
}

const (
	openAIProviderName = "openai"
	geminiProviderName = "gemini"
	staticProviderName = "static"
)

// StaticSummarizer is the no-credentials fallback: it produces a trivially
// derived summary so the endpoint keeps working in development.
type StaticSummarizer struct{}

func NewStaticSummarizer() *StaticSummarizer {
	return &StaticSummarizer{}
}

func (s *StaticSummarizer) Summarize(ctx context.Context, req Request) (*Response, error) {
	c := cases.Title(language.Und)
	name := strings.TrimSpace(req.ProjectName)
	if name == "" {
		name = "This Project"
	}
	desc := strings.TrimSpace(req.Description)
	if len(desc) > 160 {
		desc = strings.TrimSpace(desc[:160]) + "..."
	}
	return &Response{
		Summary:  fmt.Sprintf("%s: %s", c.String(name), desc),
		Provider: staticProviderName,
	}, nil
}

func buildPrompt(req Request) string {
	return fmt.Sprintf("Summarize this Web3 public goods project:\n\n%s", req.Description)
}
