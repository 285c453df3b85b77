// Package backend is the JSON-over-HTTP client of the automation server.
// It implements every capability in the platform package.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
)

const apiPrefix = "/tools-api"

// ErrRejected is returned when the server answers a call with success=false.
var ErrRejected = errors.New("rejected by automation server")

// Config holds the connection settings for the automation server.
type Config struct {
	URL    string
	APIKey string

	// Executable, when set, is launched by Start and killed by Stop.
	Executable     string
	StartupTimeout time.Duration
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

// Client talks to the automation server.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// New returns a Client for cfg.
func New(cfg Config, opts ...Option) *Client {
	if cfg.URL == "" {
		cfg.URL = "http://localhost:54321"
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = 30 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns a platform.Provider backed entirely by c.
func (c *Client) Provider() *platform.Provider {
	return &platform.Provider{
		Backend:       c,
		Browser:       c,
		System:        c,
		Screenshotter: c,
		Inputter:      c,
		Automation:    c,
	}
}

// Start launches the configured server executable, if any, and waits until
// the server answers a ping.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.cfg.Executable != "" && c.cmd == nil {
		cmd := exec.Command(c.cfg.Executable)
		if err := cmd.Start(); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("launch automation server %s: %w", c.cfg.Executable, err)
		}
		c.cmd = cmd
		c.logger.Info("launched automation server", zap.String("executable", c.cfg.Executable), zap.Int("pid", cmd.Process.Pid))
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.StartupTimeout)
	defer cancel()
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()
	for {
		err := c.Ping(ctx)
		if err == nil {
			return nil
		}
		c.logger.Debug("automation server not ready", zap.Error(err))
		select {
		case <-ctx.Done():
			return fmt.Errorf("automation server did not become ready: %w", err)
		case <-ticker.C:
		}
	}
}

// Stop kills a server launched by Start. It is a no-op otherwise.
func (c *Client) Stop(ctx context.Context) error {
	c.mu.Lock()
	cmd := c.cmd
	c.cmd = nil
	c.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop automation server: %w", err)
	}
	// Exit status after a kill is always an error; only reap.
	_ = cmd.Wait()
	c.logger.Info("stopped automation server")
	return nil
}

// Ping checks that the server is reachable and accepts the API key.
func (c *Client) Ping(ctx context.Context) error {
	var res platform.ActionResult
	return c.do(ctx, http.MethodGet, "/ping", nil, &res)
}

// OpenChrome implements platform.Browser.
func (c *Client) OpenChrome(ctx context.Context, url string, strategy platform.ChromeStrategy) (platform.ActionResult, error) {
	req := openChromeRequest{URL: url, Strategy: int(strategy)}
	return c.open(ctx, "/chrome/open", req)
}

// Navigate implements platform.Browser.
func (c *Client) Navigate(ctx context.Context, url string) (platform.ActionResult, error) {
	return c.open(ctx, "/chrome/navigate", navigateRequest{URL: url})
}

// GetText implements platform.Browser.
func (c *Client) GetText(ctx context.Context) (*model.TextCapture, error) {
	var res model.TextCapture
	if err := c.do(ctx, http.MethodPost, "/chrome/get-text", struct{}{}, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("get text: %w: %s", ErrRejected, res.Message)
	}
	return &res, nil
}

// OpenApplication implements platform.System.
func (c *Client) OpenApplication(ctx context.Context, nameOrPath string) (platform.ActionResult, error) {
	return c.open(ctx, "/system/open-application", openApplicationRequest{AppNameOrPath: nameOrPath})
}

// GetOverview implements platform.System.
func (c *Client) GetOverview(ctx context.Context) (*model.Overview, error) {
	var res model.Overview
	if err := c.do(ctx, http.MethodPost, "/system/overview", struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetWindowDetails implements platform.System.
func (c *Client) GetWindowDetails(ctx context.Context, windowID string) (*model.WindowDetails, error) {
	var res model.WindowDetails
	if err := c.do(ctx, http.MethodPost, "/system/window-details", windowRequest{WindowID: windowID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Take implements platform.Screenshotter.
func (c *Client) Take(ctx context.Context) (*model.Screenshot, error) {
	var res model.Screenshot
	if err := c.do(ctx, http.MethodPost, "/screenshot", struct{}{}, &res); err != nil {
		return nil, err
	}
	if res.MimeType == "" {
		res.MimeType = "image/jpeg"
	}
	return &res, nil
}

// Click implements platform.Inputter.
func (c *Client) Click(ctx context.Context, x, y int) error {
	return c.action(ctx, "/mouse/click", clickRequest{X: x, Y: y})
}

// ClickByDescription implements platform.Inputter.
func (c *Client) ClickByDescription(ctx context.Context, description string) error {
	return c.action(ctx, "/mouse/click-by-description", describeRequest{Description: description})
}

// Scroll implements platform.Inputter.
func (c *Client) Scroll(ctx context.Context, x, y, clicks int) error {
	return c.action(ctx, "/mouse/scroll", scrollRequest{X: x, Y: y, Clicks: clicks})
}

// Type implements platform.Inputter.
func (c *Client) Type(ctx context.Context, text string) error {
	return c.action(ctx, "/keyboard/type", typeRequest{Text: text})
}

// Press implements platform.Inputter.
func (c *Client) Press(ctx context.Context, keys string) error {
	return c.action(ctx, "/keyboard/press", pressRequest{Keys: keys})
}

// SetValue implements platform.Automation.
func (c *Client) SetValue(ctx context.Context, elementID, value string) error {
	return c.action(ctx, "/automation/set-value", setValueRequest{ElementID: elementID, Value: value})
}

// Invoke implements platform.Automation.
func (c *Client) Invoke(ctx context.Context, elementID string) error {
	return c.action(ctx, "/automation/invoke", elementRequest{ElementID: elementID})
}

func (c *Client) open(ctx context.Context, path string, body any) (platform.ActionResult, error) {
	var res platform.ActionResult
	if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
		return res, err
	}
	return platform.CheckOpen(res)
}

func (c *Client) action(ctx context.Context, path string, body any) error {
	var res platform.ActionResult
	if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%s: %w: %s", path, ErrRejected, res.Message)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.URL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("automation call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
