package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/imaging"
	"github.com/timmy/calsnap/internal/prompts"
)

// Gateway sends a food photo to a vision language model and returns its raw reply.
// Implementations make exactly one attempt per call.
type Gateway interface {
	Analyze(ctx context.Context, image []byte) (string, error)
	Model() string
}

// VLMConfig holds configuration for the model gateway.
type VLMConfig struct {
	Provider  string // openai-compatible (default) or openai
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration // 0 leaves the transport default in place
}

const (
	ProviderOpenAICompatible = "openai-compatible"
	ProviderOpenAI           = "openai"

	defaultBaseURL   = "https://api.openai.com/v1"
	defaultMaxTokens = 500
)

// NewGateway builds the gateway for the configured provider.
// Parameters:
//   - cfg: provider, model, credentials and limits.
// Returns:
//   - Gateway: ready-to-use gateway.
//   - error: non-nil for an unknown provider.
func NewGateway(cfg *VLMConfig) (Gateway, error) {
	switch cfg.Provider {
	case "", ProviderOpenAICompatible:
		return NewVLMGateway(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIGateway(cfg), nil
	default:
		return nil, fmt.Errorf("unknown vlm provider %q", cfg.Provider)
	}
}

// VLMGateway talks to any OpenAI-compatible chat completions endpoint over resty.
type VLMGateway struct {
	client    *resty.Client
	model     string
	maxTokens int
	endpoint  string
}

// NewVLMGateway creates a gateway for an OpenAI-compatible endpoint.
// Parameters:
//   - cfg: VLM configuration including model, API key and base URL.
// Returns:
//   - *VLMGateway: initialized client wrapper.
func NewVLMGateway(cfg *VLMConfig) *VLMGateway {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &VLMGateway{
		client:    client,
		model:     cfg.Model,
		maxTokens: maxTokens,
		endpoint:  baseURL + "/chat/completions",
	}
}

// Model returns the model name being used.
func (g *VLMGateway) Model() string {
	return g.model
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []interface{} `json:"content"`
}

type chatTextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatImageContent struct {
	Type     string       `json:"type"`
	ImageURL chatImageURL `json:"image_url"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Analyze asks the model for the nutrition of the pictured food.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - image: encoded image bytes (jpeg, png, gif or webp).
// Returns:
//   - string: the model's reply, untouched.
//   - error: domain.ErrEmptyInput, a wrapped domain.ErrUpstream, or domain.ErrEmptyResponse.
func (g *VLMGateway) Analyze(ctx context.Context, image []byte) (string, error) {
	dataURL, err := imageDataURL(image)
	if err != nil {
		return "", err
	}

	req := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []interface{}{
					chatTextContent{Type: "text", Text: prompts.AnalyzeInstruction},
					chatImageContent{Type: "image_url", ImageURL: chatImageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens: g.maxTokens,
	}

	var resp chatResponse
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("%w: %s", domain.ErrUpstream, errorMsg)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUpstream, resp.Error.Message)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domain.ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// imageDataURL validates the bytes and renders them for the request body.
func imageDataURL(image []byte) (string, error) {
	if len(image) == 0 {
		return "", domain.ErrEmptyInput
	}
	format := "jpeg"
	if info, err := imaging.Sniff(image); err == nil {
		format = info.Format
	}
	return imaging.EncodeDataURL(image, format), nil
}
