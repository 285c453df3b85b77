package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureMockErp_DownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("MZ-binary"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(dir, WithHTTPClient(srv.Client()))

	path, err := f.EnsureMockErp(context.Background(), srv.URL+"/mini-erp-mock.exe")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, MockErpFile), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MZ-binary", string(data))

	_, err = f.EnsureMockErp(context.Background(), srv.URL+"/mini-erp-mock.exe")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestEnsureMockErp_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := New(dir, WithHTTPClient(srv.Client())).EnsureMockErp(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file should remain")
}

func TestEnsure_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(t.TempDir()).Ensure(ctx, "http://127.0.0.1:1/x", "x")
	assert.ErrorIs(t, err, context.Canceled)
}
