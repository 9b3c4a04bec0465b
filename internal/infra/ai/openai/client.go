package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
	infraai "github.com/bryanwahyu/song-critic/internal/infra/ai"
	"github.com/bryanwahyu/song-critic/internal/infra/ai/prompt"
)

const maxTokens = 4096

type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), model: model}
}

// Analyze performs one chat completion with a strict json_schema response
// format and post-processes the reply into a domain result.
func (c *Client) Analyze(ctx context.Context, req domain.Request) (*domain.Result, error) {
	model := c.model
	if model == "" {
		model = "gpt-4o-2024-08-06"
	}

	chat := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "song_analysis",
				Schema: resultSchema(),
				Strict: true,
			},
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User(req)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		chat.MaxCompletionTokens = maxTokens
	} else {
		chat.MaxTokens = maxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, domain.ClassifyProviderError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", domain.ErrInvalidAnalysis)
	}

	return infraai.ParseResult(resp.Choices[0].Message.Content, req)
}
