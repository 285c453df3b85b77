// Package extract turns captured screen content into typed records by
// asking a model for JSON and decoding the reply.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/imaging"
	"github.com/mj1618/desktop-relay/internal/llm"
	"github.com/mj1618/desktop-relay/internal/model"
)

var (
	ErrNoScreenshot      = errors.New("no usable screenshot")
	ErrNoElements        = errors.New("window has no automation tree")
	ErrNoText            = errors.New("no text to summarise")
	ErrMissingCustomerID = errors.New("model did not identify the customer name element")
)

// Extractor wraps a model client with the fixed prompts.
type Extractor struct {
	model        llm.Client
	logger       *zap.Logger
	imageScale   float64
	imageQuality int
	pruneTree    bool
}

// Option configures an Extractor.
type Option func(*Extractor)

func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithImageScale downsizes screenshots by factor before upload.
func WithImageScale(factor float64) Option {
	return func(e *Extractor) { e.imageScale = factor }
}

// WithPruneTree drops anonymous structural nodes from automation trees
// before they are sent to the model.
func WithPruneTree(prune bool) Option {
	return func(e *Extractor) { e.pruneTree = prune }
}

// New returns an Extractor that asks m.
func New(m llm.Client, opts ...Option) *Extractor {
	e := &Extractor{model: m, logger: zap.NewNop(), imageScale: 1, imageQuality: 85}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractOrder reads the order shown in an email screenshot.
func (e *Extractor) ExtractOrder(ctx context.Context, shot *model.Screenshot) (*model.Order, error) {
	if shot == nil || !shot.Success || shot.ImageBase64 == "" {
		return nil, ErrNoScreenshot
	}

	image, mime := shot.ImageBase64, shot.MimeType
	if e.imageScale > 0 && e.imageScale < 1 {
		scaled, err := imaging.Downscale(image, e.imageScale, e.imageQuality)
		if err != nil {
			e.logger.Warn("screenshot downscale failed, sending original", zap.Error(err))
		} else {
			image, mime = scaled, "image/jpeg"
		}
	}

	e.logger.Info("asking model to extract order data from screenshot", zap.String("model", e.model.Name()))
	reply, err := e.model.Generate(ctx, llm.Request{Prompt: OrderPrompt, ImageBase64: image, ImageMIME: mime, JSON: true})
	if err != nil {
		e.logger.Error("order extraction call failed", zap.Error(err))
		return nil, fmt.Errorf("order extraction: %w", err)
	}
	e.logger.Debug("order extraction reply", zap.String("reply", reply))

	order, err := ParseOrder(reply)
	if err != nil {
		e.logger.Error("order extraction reply unusable", zap.Error(err), zap.String("reply", reply))
		return nil, fmt.Errorf("order extraction: %w", err)
	}
	e.logger.Info("extracted order",
		zap.String("customer", order.CustomerName),
		zap.Int("articles", len(order.OrderedArticles)))
	return order, nil
}

// MapElements asks the model which elements of the ERP window hold each
// form field. Only the customer name ID is required; IDs that do not occur
// in the tree are logged.
func (e *Extractor) MapElements(ctx context.Context, details *model.WindowDetails) (*model.ErpElementIDs, error) {
	if details == nil || details.Root == nil {
		return nil, ErrNoElements
	}
	treeJSON, err := e.treeJSON(details)
	if err != nil {
		return nil, err
	}

	e.logger.Info("asking model to identify ERP element IDs", zap.String("window", details.Title))
	reply, err := e.model.Generate(ctx, llm.Request{Prompt: fmt.Sprintf(elementIDsPrompt, treeJSON), JSON: true})
	if err != nil {
		e.logger.Error("element mapping call failed", zap.Error(err))
		return nil, fmt.Errorf("element mapping: %w", err)
	}
	e.logger.Debug("element mapping reply", zap.String("reply", reply))

	ids, err := ParseElementIDs(reply)
	if err != nil {
		e.logger.Error("element mapping reply unusable", zap.Error(err), zap.String("reply", reply))
		return nil, fmt.Errorf("element mapping: %w", err)
	}
	if ids.CustomerName == "" {
		return nil, ErrMissingCustomerID
	}

	tree := details.Elements()
	for _, f := range ids.Fields() {
		if f.ID == "" {
			e.logger.Warn("model left element ID empty", zap.String("field", f.Name))
			continue
		}
		if model.FindByID(tree, f.ID) == nil {
			e.logger.Warn("mapped element ID not found in window tree", zap.String("field", f.Name), zap.String("id", f.ID))
		}
	}
	return ids, nil
}

// Digest summarises collected timeline text.
func (e *Extractor) Digest(ctx context.Context, text string) (*model.NewsDigest, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}
	e.logger.Info("asking model for a news digest", zap.Int("chars", len(text)))
	reply, err := e.model.Generate(ctx, llm.Request{Prompt: fmt.Sprintf(digestPrompt, text), JSON: true})
	if err != nil {
		e.logger.Error("digest call failed", zap.Error(err))
		return nil, fmt.Errorf("digest: %w", err)
	}
	digest, err := ParseDigest(reply)
	if err != nil {
		e.logger.Error("digest reply unusable", zap.Error(err), zap.String("reply", reply))
		return nil, fmt.Errorf("digest: %w", err)
	}
	return digest, nil
}

// Ask poses a free-text question about a window's automation tree.
func (e *Extractor) Ask(ctx context.Context, question string, details *model.WindowDetails) (string, error) {
	if details == nil || details.Root == nil {
		return "", ErrNoElements
	}
	treeJSON, err := e.treeJSON(details)
	if err != nil {
		return "", err
	}
	reply, err := e.model.Generate(ctx, llm.Request{Prompt: fmt.Sprintf(askTreePrompt, question, treeJSON)})
	if err != nil {
		e.logger.Error("question call failed", zap.Error(err))
		return "", fmt.Errorf("ask: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func (e *Extractor) treeJSON(details *model.WindowDetails) (string, error) {
	if !e.pruneTree {
		return details.JSON()
	}
	pruned := *details
	if roots := model.PruneEmptyGroups(details.Elements()); len(roots) > 0 {
		root := roots[0]
		pruned.Root = &root
	}
	return pruned.JSON()
}
