package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resume-ai-backend/internal/llm"
)

// Client implements llm.Client using the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Optimize runs the optimize invocation and parses the structured result.
func (c *Client) Optimize(ctx context.Context, resumeText, prompt string) (llm.OptimizeResult, error) {
	raw, err := c.generate(ctx, llm.OptimizeSystemPrompt, llm.OptimizeUserContent(resumeText, prompt))
	if err != nil {
		return llm.OptimizeResult{}, err
	}
	return llm.ParseOptimize(raw)
}

// Create runs the create invocation and parses the structured result.
func (c *Client) Create(ctx context.Context, resumeText, prompt string) (llm.CreateResult, error) {
	raw, err := c.generate(ctx, llm.CreateSystemPrompt, llm.CreateUserContent(resumeText, prompt))
	if err != nil {
		return llm.CreateResult{}, err
	}
	return llm.ParseCreate(raw)
}

func (c *Client) generate(ctx context.Context, systemPrompt, userContent string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userContent), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content model=%s: %w", c.model, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini response empty content model=%s", c.model)
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
