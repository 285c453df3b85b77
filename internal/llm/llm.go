// Package llm defines the model capability the extraction stages use.
package llm

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned by constructors when the provider key is missing.
var ErrNoAPIKey = errors.New("model API key is not set")

// ErrEmptyReply is returned when the model answers without content.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Request is a single-turn prompt, optionally with one image.
type Request struct {
	Prompt      string
	ImageBase64 string
	// ImageMIME defaults to image/jpeg.
	ImageMIME string
	// JSON constrains the reply to a JSON object.
	JSON bool
}

// MIME returns the image MIME type, defaulting to JPEG.
func (r Request) MIME() string {
	if r.ImageMIME == "" {
		return "image/jpeg"
	}
	return r.ImageMIME
}

// Client generates a text reply for a request.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Name identifies provider and model for logs, e.g. "openai:gpt-4o".
	Name() string
}
