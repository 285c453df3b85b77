package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/config"
	"github.com/mj1618/desktop-relay/internal/llm"
	"github.com/mj1618/desktop-relay/internal/llm/gemini"
	"github.com/mj1618/desktop-relay/internal/llm/openai"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/platform/backend"
	"github.com/mj1618/desktop-relay/internal/platform/chromium"
	"github.com/mj1618/desktop-relay/internal/session"
)

// newProvider builds the capability provider from cfg: the automation
// server for everything, with Chrome swapped for a chromedp-driven one
// when browser.driver is chromedp.
func newProvider(cfg *config.Config, logger *zap.Logger) (*platform.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := backend.New(backend.Config{
		URL:            cfg.Backend.URL,
		APIKey:         cfg.Backend.APIKey,
		Executable:     cfg.Backend.Executable,
		StartupTimeout: cfg.Backend.StartupTimeout,
		RequestTimeout: cfg.Backend.RequestTimeout,
	}, backend.WithLogger(logger.Named("backend")))
	p := client.Provider()

	if cfg.Browser.Driver == "chromedp" {
		driver := chromium.New(chromium.Config{
			Headless: cfg.Browser.Headless,
			ExecPath: cfg.Browser.ExecPath,
			Quality:  cfg.Browser.Quality,
		}, logger.Named("chromium"))
		p.Browser = driver
		p.Screenshotter = driver
		p.Backend = platform.Backends{client, driver}
	}
	return p, p.Validate()
}

// newModel returns the configured model client, or nil with a warning when
// its API key is missing so that the model stages are skipped.
func newModel(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Client, error) {
	key := cfg.LLM.APIKey()
	if key == "" {
		env := config.EnvOpenAIKey
		if cfg.LLM.Provider == "gemini" {
			env = config.EnvGeminiKey
		}
		logger.Warn(fmt.Sprintf("%s is not set, model stages will be skipped", env))
		return nil, nil
	}

	switch cfg.LLM.Provider {
	case "gemini":
		m, err := gemini.NewProvider(ctx, gemini.Config{
			APIKey:  key,
			Model:   cfg.LLM.Model,
			BaseURL: cfg.LLM.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		opts := []openai.ProviderOption{openai.WithModel(cfg.LLM.Model)}
		if cfg.LLM.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.LLM.BaseURL))
		}
		m, err := openai.NewProvider(key, opts...)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// withSession starts a short-lived session for a utility command and
// stops it when fn returns.
func withSession(ctx context.Context, fn func(ctx context.Context, p *platform.Provider) error) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	sess := session.New(provider, logger())
	if err := sess.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := sess.Stop(ctx); err != nil {
			logger().Warn("teardown failed", zap.Error(err))
		}
	}()
	p, err := sess.Provider()
	if err != nil {
		return err
	}
	return fn(ctx, p)
}
