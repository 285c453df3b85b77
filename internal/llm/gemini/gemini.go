// Package gemini implements llm.Client with the Gemini API.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mj1618/desktop-relay/internal/llm"
)

const DefaultModel = "gemini-2.5-flash"

type Provider struct {
	client *genai.Client
	model  string
}

// Config holds the connection settings. BaseURL is only set in tests.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// NewProvider creates a Gemini API client.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", llm.ErrNoAPIKey)
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	model := cfg.Model
	// The default model name targets OpenAI; swap it for a Gemini one.
	if model == "" || strings.HasPrefix(model, "gpt-") {
		model = DefaultModel
	}
	return &Provider{client: client, model: model}, nil
}

// Name implements llm.Client.
func (p *Provider) Name() string { return "gemini:" + p.model }

// Generate implements llm.Client. Images are sent as inline bytes.
func (p *Provider) Generate(ctx context.Context, req llm.Request) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return "", fmt.Errorf("decode image: %w", err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, req.MIME()))
	}

	var config *genai.GenerateContentConfig
	if req.JSON {
		config = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", llm.ErrEmptyReply
	}
	return text, nil
}
