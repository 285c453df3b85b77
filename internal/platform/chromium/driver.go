// Package chromium drives a local Chrome through the DevTools protocol. It
// serves the Browser and Screenshotter capabilities when the automation
// server should not own the browser.
package chromium

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
)

// ErrNotOpen is returned by page operations before OpenChrome.
var ErrNotOpen = errors.New("chrome is not open")

// Config controls how Chrome is launched.
type Config struct {
	Headless bool
	// ExecPath overrides the Chrome binary lookup.
	ExecPath string
	// Quality is the JPEG quality of screenshots, 1-100.
	Quality int
}

// Driver owns one Chrome process and one tab.
type Driver struct {
	cfg    Config
	logger *zap.Logger

	mu          sync.Mutex
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
}

// New returns a Driver. Chrome is launched on the first OpenChrome.
func New(cfg Config, logger *zap.Logger) *Driver {
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = 80
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{cfg: cfg, logger: logger}
}

func (d *Driver) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", d.cfg.Headless),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1280, 900),
	)
	if d.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(d.cfg.ExecPath))
	}
	return opts
}

// Start implements platform.Backend. Chrome is launched lazily, so there is
// nothing to do here.
func (d *Driver) Start(ctx context.Context) error { return nil }

// Stop closes the tab and the Chrome process.
func (d *Driver) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tabCancel != nil {
		d.tabCancel()
		d.tabCancel = nil
		d.tabCtx = nil
	}
	if d.allocCancel != nil {
		d.allocCancel()
		d.allocCancel = nil
		d.logger.Info("chrome closed")
	}
	return nil
}

// OpenChrome launches Chrome if needed and loads url. Chrome always runs
// with a fresh profile here, so ForceClose and StartWithoutUserProfile
// behave the same.
func (d *Driver) OpenChrome(ctx context.Context, url string, strategy platform.ChromeStrategy) (platform.ActionResult, error) {
	d.mu.Lock()
	if d.tabCtx == nil {
		allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), d.allocatorOptions()...)
		tabCtx, tabCancel := chromedp.NewContext(allocCtx)
		d.allocCancel, d.tabCtx, d.tabCancel = allocCancel, tabCtx, tabCancel
		d.logger.Info("launching chrome", zap.Bool("headless", d.cfg.Headless), zap.Stringer("strategy", strategy))
	}
	d.mu.Unlock()
	return d.Navigate(ctx, url)
}

// Navigate loads url in the open tab.
func (d *Driver) Navigate(ctx context.Context, url string) (platform.ActionResult, error) {
	if err := d.run(ctx, chromedp.Navigate(url)); err != nil {
		return platform.ActionResult{Message: "Error: " + err.Error()}, fmt.Errorf("%w: navigate %s: %v", platform.ErrOpenFailed, url, err)
	}
	return platform.ActionResult{Success: true, Message: "Navigated to " + url}, nil
}

// GetText returns the text content of the document body.
func (d *Driver) GetText(ctx context.Context) (*model.TextCapture, error) {
	var text string
	if err := d.run(ctx, chromedp.Text("body", &text, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("get page text: %w", err)
	}
	return &model.TextCapture{Success: true, Text: text}, nil
}

// Take captures the visible viewport as JPEG.
func (d *Driver) Take(ctx context.Context) (*model.Screenshot, error) {
	var buf []byte
	err := d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatJpeg).
			WithQuality(int64(d.cfg.Quality)).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return &model.Screenshot{
		Success:     true,
		ImageBase64: base64.StdEncoding.EncodeToString(buf),
		MimeType:    "image/jpeg",
	}, nil
}

// run executes actions on the tab, aborting when ctx is cancelled.
func (d *Driver) run(ctx context.Context, actions ...chromedp.Action) error {
	d.mu.Lock()
	tabCtx := d.tabCtx
	d.mu.Unlock()
	if tabCtx == nil {
		return ErrNotOpen
	}
	runCtx, cancel := context.WithCancel(tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}
