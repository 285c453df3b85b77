package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mj1618/desktop-relay/internal/platform"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingBackend struct {
	starts, stops int
	startErr      error
	stopCtxErr    error
}

func (b *countingBackend) Start(context.Context) error {
	b.starts++
	return b.startErr
}

func (b *countingBackend) Stop(ctx context.Context) error {
	b.stops++
	b.stopCtxErr = ctx.Err()
	return nil
}

func newSession(b *countingBackend) *Session {
	return New(&platform.Provider{Backend: b}, nil)
}

func TestSession_Lifecycle(t *testing.T) {
	b := &countingBackend{}
	s := newSession(b)
	ctx := context.Background()

	assert.Equal(t, NotStarted, s.State())
	_, err := s.Provider()
	assert.ErrorIs(t, err, ErrNotRunning)

	require.NoError(t, s.Start(ctx))
	assert.Equal(t, Running, s.State())
	p, err := s.Provider()
	require.NoError(t, err)
	assert.NotNil(t, p)

	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, 1, b.starts)
	assert.Equal(t, 1, b.stops)

	_, err = s.Provider()
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_CannotRestart(t *testing.T) {
	b := &countingBackend{}
	s := newSession(b)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))

	assert.ErrorIs(t, s.Start(context.Background()), ErrSessionClosed)
	assert.Equal(t, 1, b.starts)
}

func TestSession_StartTwiceIsNoop(t *testing.T) {
	b := &countingBackend{}
	s := newSession(b)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 1, b.starts)
}

func TestSession_FailedStartCleansUpOnce(t *testing.T) {
	b := &countingBackend{startErr: errors.New("server not installed")}
	s := newSession(b)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, Stopped, s.State())

	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, 1, b.stops)
}

func TestSession_StopNeverStarted(t *testing.T) {
	b := &countingBackend{}
	s := newSession(b)
	require.NoError(t, s.Stop(context.Background()))
	assert.Zero(t, b.stops)
	assert.ErrorIs(t, s.Start(context.Background()), ErrSessionClosed)
}

func TestSession_StopAfterCancel(t *testing.T) {
	b := &countingBackend{}
	s := newSession(b)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	require.NoError(t, s.Stop(ctx))
	assert.Equal(t, 1, b.stops)
	assert.NoError(t, b.stopCtxErr)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "not_started", NotStarted.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
}
