package llm

import (
	"context"
	"errors"
)

// OptimizeResult is the structured output of an optimize invocation.
type OptimizeResult struct {
	MatchScore float64 `json:"match_score"`
	Feedback   string  `json:"feedback"`
	Markdown   string  `json:"optimized_resume"`
}

// CreateResult is the structured output of a create invocation.
type CreateResult struct {
	Markdown string `json:"created_resume"`
}

// Client abstracts generative providers for resume content.
type Client interface {
	// Optimize scores and rewrites an existing resume against the prompt.
	Optimize(ctx context.Context, resumeText, prompt string) (OptimizeResult, error)
	// Create authors a new resume from the prompt, optionally seeded with
	// existing resume text.
	Create(ctx context.Context, resumeText, prompt string) (CreateResult, error)
}

// ErrParse indicates the model response was not valid JSON after cleaning.
var ErrParse = errors.New("generative response is not valid JSON")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is wired when no provider is configured.
type PlaceholderClient struct{}

func (PlaceholderClient) Optimize(ctx context.Context, resumeText, prompt string) (OptimizeResult, error) {
	return OptimizeResult{}, ErrNotConfigured
}

func (PlaceholderClient) Create(ctx context.Context, resumeText, prompt string) (CreateResult, error) {
	return CreateResult{}, ErrNotConfigured
}
