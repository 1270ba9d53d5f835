package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/prompts"
)

// OpenAIGateway calls the Chat Completions API through the official SDK.
type OpenAIGateway struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAIGateway builds an SDK-backed gateway. SDK retries are disabled so a
// call is a single attempt, like the resty gateway.
func NewOpenAIGateway(cfg *VLMConfig) *OpenAIGateway {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(baseURL, "/")+"/"))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &OpenAIGateway{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

// Model returns the model name being used.
func (g *OpenAIGateway) Model() string {
	return g.model
}

// Analyze asks the model for the nutrition of the pictured food.
func (g *OpenAIGateway) Analyze(ctx context.Context, image []byte) (string, error) {
	dataURL, err := imageDataURL(image)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(g.model),
		MaxTokens: openai.Int(g.maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompts.AnalyzeInstruction),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domain.ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
