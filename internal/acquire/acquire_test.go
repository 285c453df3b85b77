package acquire

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-relay/internal/config"
	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/platform/fake"
)

func noSleep(context.Context, time.Duration) error { return nil }

func newAcquirer(f *fake.Fake) *Acquirer {
	return New(f.Provider(), config.NewDefaultConfig().Pacing, noSleep, nil)
}

func TestGmailOrder_Sequence(t *testing.T) {
	f := fake.New()
	shot, err := newAcquirer(f).GmailOrder(context.Background(), "New Computerstuff.com Order")
	require.NoError(t, err)
	assert.True(t, shot.Success)
	assert.Equal(t, []string{
		"open-chrome https://mail.google.com/ force-close",
		"click-by-description the search mail input field",
		"type New Computerstuff.com Order",
		"press Enter",
		"click-by-description the first email result in the list",
		"screenshot",
	}, f.Calls)
}

func TestGmailOrder_OpenErrorSkipsCapture(t *testing.T) {
	f := fake.New()
	f.OpenMessage = "Error: Chrome is already running"
	shot, err := newAcquirer(f).GmailOrder(context.Background(), "subject")
	require.ErrorIs(t, err, platform.ErrOpenFailed)
	assert.Nil(t, shot)
	assert.Zero(t, f.Called("screenshot"))
	assert.Zero(t, f.Called("type"))
}

func TestGmailOrder_PacingFromConfig(t *testing.T) {
	f := fake.New()
	var waits []time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	pacing := config.NewDefaultConfig().Pacing
	_, err := New(f.Provider(), pacing, sleep, nil).GmailOrder(context.Background(), "s")
	require.NoError(t, err)
	g := pacing.Gmail
	assert.Equal(t, []time.Duration{g.Load, g.Focus, g.Type, g.Search, g.Open}, waits)
}

func TestOutlookOrder_Sequence(t *testing.T) {
	f := fake.New()
	_, err := newAcquirer(f).OutlookOrder(context.Background(), "New Computerstuff.com Order")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"open-application outlook",
		"press Ctrl+E",
		"type New Computerstuff.com Order",
		"press Enter",
		"click-by-description the first email shown in the list pane",
		"screenshot",
	}, f.Calls)
}

func TestOutlookOrder_StepFailureStops(t *testing.T) {
	f := fake.New()
	f.Fail["type"] = errors.New("no focus")
	_, err := newAcquirer(f).OutlookOrder(context.Background(), "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type subject")
	assert.Zero(t, f.Called("screenshot"))
}

func TestCapture_UnsuccessfulScreenshot(t *testing.T) {
	f := fake.New()
	f.Shot = &model.Screenshot{Success: false, Message: "display locked"}
	_, err := newAcquirer(f).GmailOrder(context.Background(), "s")
	require.ErrorIs(t, err, ErrCaptureFailed)
	assert.Contains(t, err.Error(), "display locked")
}

func TestAccountTimelines(t *testing.T) {
	f := fake.New()
	f.Texts = []string{"first feed", "", "third feed"}
	text, err := newAcquirer(f).AccountTimelines(context.Background(), []string{"a", "b", "c"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "first feed"+TimelineMarker+"third feed"+TimelineMarker, text)
	assert.Equal(t, 1, f.Called("open-chrome"))
	assert.Equal(t, 2, f.Called("navigate"))
	assert.Equal(t, 6, f.Called("scroll"))
	assert.Contains(t, f.Calls, "open-chrome https://x.com/a throw")
	assert.Contains(t, f.Calls, "scroll 200,200,20")
}

func TestAccountTimelines_OpenFailureAborts(t *testing.T) {
	f := fake.New()
	f.OpenMessage = "Error: could not start"
	_, err := newAcquirer(f).AccountTimelines(context.Background(), []string{"a", "b"}, 3)
	require.ErrorIs(t, err, platform.ErrOpenFailed)
	assert.Zero(t, f.Called("get-text"))
	assert.Zero(t, f.Called("navigate"))
}

func TestAccountTimelines_TextFailureSkipsAccount(t *testing.T) {
	f := fake.New()
	f.Fail["get-text"] = errors.New("page not loaded")
	text, err := newAcquirer(f).AccountTimelines(context.Background(), []string{"a"}, 1)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestAccountTimelines_Cancelled(t *testing.T) {
	f := fake.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sleep := func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	a := New(f.Provider(), config.NewDefaultConfig().Pacing, sleep, nil)
	_, err := a.AccountTimelines(ctx, []string{"a", "b"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculator(t *testing.T) {
	f := fake.New()
	display := &model.WindowDetails{Window: model.Window{ID: "7", Title: "Calculator"}}
	f.Overview = &model.Overview{FocusInfo: &model.FocusInfo{FocusedElementParentWindow: display}}

	w, err := newAcquirer(f).Calculator(context.Background(), "calc", "3+4")
	require.NoError(t, err)
	assert.Equal(t, "Calculator", w.Title)
	assert.Equal(t, []string{
		"open-application calc",
		"type 3+4",
		"click-by-description the equals sign",
		"overview",
	}, f.Calls)
}

func TestCalculator_NoFocusedWindow(t *testing.T) {
	f := fake.New()
	_, err := newAcquirer(f).Calculator(context.Background(), "calc", "1+1")
	assert.ErrorIs(t, err, ErrNoFocusedWindow)
}

func TestNilProvider(t *testing.T) {
	a := New(nil, config.PacingConfig{}, nil, nil)
	_, err := a.GmailOrder(context.Background(), "s")
	assert.Error(t, err)
}
