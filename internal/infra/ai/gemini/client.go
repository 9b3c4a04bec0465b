package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
	infraai "github.com/bryanwahyu/song-critic/internal/infra/ai"
	"github.com/bryanwahyu/song-critic/internal/infra/ai/prompt"
)

type Client struct {
	api   *genai.Client
	model string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{api: cli, model: model}, nil
}

// Analyze performs one generateContent round trip constrained to the critique
// schema and post-processes the reply into a domain result.
func (c *Client) Analyze(ctx context.Context, req domain.Request) (*domain.Result, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System(), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    resultSchema(),
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(prompt.User(req)), cfg)
	if err != nil {
		return nil, domain.ClassifyProviderError(err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrSafetyBlocked, resp.PromptFeedback.BlockReason)
	}
	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty candidate", domain.ErrInvalidAnalysis)
	}

	return infraai.ParseResult(text, req)
}
