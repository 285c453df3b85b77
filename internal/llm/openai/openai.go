// Package openai implements llm.Client with the OpenAI chat completions API.
package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mj1618/desktop-relay/internal/llm"
)

// DefaultModel is the vision model used when none is configured.
const DefaultModel = "gpt-4o"

type Provider struct {
	client     openai.Client
	model      string
	baseURL    string
	httpClient *http.Client
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithModel sets the model to use for completions.
func WithModel(model string) ProviderOption {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithBaseURL points the client at an OpenAI-compatible API.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *Provider) { p.baseURL = baseURL }
}

// WithHTTPClient replaces the transport, mainly for tests.
func WithHTTPClient(c *http.Client) ProviderOption {
	return func(p *Provider) { p.httpClient = c }
}

// NewProvider returns a Provider for apiKey.
func NewProvider(apiKey string, opts ...ProviderOption) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", llm.ErrNoAPIKey)
	}
	p := &Provider{model: DefaultModel}
	for _, opt := range opts {
		opt(p)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if p.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(p.baseURL))
	}
	if p.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(p.httpClient))
	}
	p.client = openai.NewClient(reqOpts...)
	return p, nil
}

// Name implements llm.Client.
func (p *Provider) Name() string { return "openai:" + p.model }

// Generate implements llm.Client. Images are sent inline as data URLs.
func (p *Provider) Generate(ctx context.Context, req llm.Request) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{openai.TextContentPart(req.Prompt)}
	if req.ImageBase64 != "" {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:" + req.MIME() + ";base64," + req.ImageBase64,
		}))
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", llm.ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}
