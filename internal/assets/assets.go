// Package assets fetches the mock ERP executable the order pipeline
// replays into.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// MockErpFile is the file name the executable is stored under.
const MockErpFile = "mini-erp-mock.exe"

type Option func(*Fetcher)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.http = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// Fetcher downloads files into a directory, reusing earlier downloads.
type Fetcher struct {
	dir    string
	http   *http.Client
	logger *zap.Logger
}

// New returns a Fetcher storing into dir, or os.TempDir() when dir is empty.
func New(dir string, opts ...Option) *Fetcher {
	if dir == "" {
		dir = os.TempDir()
	}
	f := &Fetcher{dir: dir, http: http.DefaultClient, logger: zap.NewNop()}
	for _, o := range opts {
		o(f)
	}
	return f
}

// EnsureMockErp returns the path of the mock ERP, downloading it from url
// when it is not already present.
func (f *Fetcher) EnsureMockErp(ctx context.Context, url string) (string, error) {
	return f.Ensure(ctx, url, MockErpFile)
}

// Ensure returns dir/name, downloading url into it first if the file does
// not exist. The body is written to a temporary file and renamed so an
// interrupted download never leaves a truncated file behind.
func (f *Fetcher) Ensure(ctx context.Context, url, name string) (string, error) {
	dest := filepath.Join(f.dir, name)
	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		f.logger.Info("using existing download", zap.String("path", dest))
		return dest, nil
	}

	f.logger.Info("downloading", zap.String("url", url), zap.String("path", dest))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(f.dir, name+".*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o755); err != nil {
		return "", fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("rename to %s: %w", dest, err)
	}
	f.logger.Info("download complete", zap.String("path", dest))
	return dest, nil
}
