// Package acquire opens a source application, waits for it, and captures
// what it shows.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/config"
	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/session"
)

const (
	GmailURL       = "https://mail.google.com/"
	OutlookApp     = "outlook"
	TimelineURL    = "https://x.com/"
	TimelineMarker = "\n--------------------\n"

	scrollClicks = 20
)

var (
	ErrCaptureFailed   = errors.New("screenshot capture failed")
	ErrNoFocusedWindow = errors.New("no focused window in overview")
	errMissingProvider = errors.New("acquire: provider is nil")
)

// Acquirer runs the source-side UI flows against one provider.
type Acquirer struct {
	p      *platform.Provider
	pacing config.PacingConfig
	sleep  session.SleepFunc
	logger *zap.Logger
}

// New returns an Acquirer. A nil sleep uses session.Sleep.
func New(p *platform.Provider, pacing config.PacingConfig, sleep session.SleepFunc, logger *zap.Logger) *Acquirer {
	if sleep == nil {
		sleep = session.Sleep
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{p: p, pacing: pacing, sleep: sleep, logger: logger}
}

// GmailOrder opens Gmail, searches for subject, opens the first hit and
// captures the screen. An open failure returns before any capture.
func (a *Acquirer) GmailOrder(ctx context.Context, subject string) (*model.Screenshot, error) {
	if a.p == nil {
		return nil, errMissingProvider
	}
	pace := a.pacing.Gmail

	a.logger.Info("opening Gmail in Chrome")
	res, err := a.p.Browser.OpenChrome(ctx, GmailURL, platform.ForceClose)
	if err != nil {
		a.logger.Error("could not open Gmail", zap.Error(err))
		return nil, err
	}
	a.logger.Info(res.Message)

	steps := []step{
		{"wait for Gmail to load", nil, pace.Load},
		{"click search field", func(ctx context.Context) error {
			return a.p.Inputter.ClickByDescription(ctx, "the search mail input field")
		}, pace.Focus},
		{"type subject", func(ctx context.Context) error { return a.p.Inputter.Type(ctx, subject) }, pace.Type},
		{"submit search", func(ctx context.Context) error { return a.p.Inputter.Press(ctx, "Enter") }, pace.Search},
		{"open first result", func(ctx context.Context) error {
			return a.p.Inputter.ClickByDescription(ctx, "the first email result in the list")
		}, pace.Open},
	}
	if err := a.run(ctx, steps); err != nil {
		return nil, err
	}
	return a.capture(ctx)
}

// OutlookOrder is GmailOrder for the Outlook desktop client.
func (a *Acquirer) OutlookOrder(ctx context.Context, subject string) (*model.Screenshot, error) {
	if a.p == nil {
		return nil, errMissingProvider
	}
	pace := a.pacing.Outlook

	a.logger.Info("opening Outlook")
	if _, err := a.p.System.OpenApplication(ctx, OutlookApp); err != nil {
		a.logger.Error("could not open Outlook, make sure it is installed", zap.Error(err))
		return nil, err
	}

	steps := []step{
		{"wait for Outlook to load", nil, pace.Load},
		{"focus search", func(ctx context.Context) error { return a.p.Inputter.Press(ctx, "Ctrl+E") }, pace.Focus},
		{"type subject", func(ctx context.Context) error { return a.p.Inputter.Type(ctx, subject) }, pace.Type},
		{"submit search", func(ctx context.Context) error { return a.p.Inputter.Press(ctx, "Enter") }, pace.Search},
		{"open first result", func(ctx context.Context) error {
			return a.p.Inputter.ClickByDescription(ctx, "the first email shown in the list pane")
		}, pace.Open},
	}
	if err := a.run(ctx, steps); err != nil {
		return nil, err
	}
	return a.capture(ctx)
}

// AccountTimelines visits each account's timeline, scrolls it, and
// collects the page text. Accounts whose text cannot be read are skipped;
// only a failure to open the browser aborts.
func (a *Acquirer) AccountTimelines(ctx context.Context, accounts []string, scrolls int) (string, error) {
	if a.p == nil {
		return "", errMissingProvider
	}
	pace := a.pacing.News
	var text strings.Builder

	for i, account := range accounts {
		url := TimelineURL + account
		if i == 0 {
			a.logger.Info("opening browser", zap.String("url", url))
			res, err := a.p.Browser.OpenChrome(ctx, url, platform.ThrowError)
			if err != nil {
				a.logger.Error("could not open browser", zap.Error(err))
				return "", err
			}
			a.logger.Info(res.Message)
			if err := a.sleep(ctx, pace.FirstLoad); err != nil {
				return "", err
			}
		} else {
			if _, err := a.p.Browser.Navigate(ctx, url); err != nil {
				a.logger.Warn("navigation failed, skipping account", zap.String("url", url), zap.Error(err))
				continue
			}
			a.logger.Info("navigated, waiting", zap.String("url", url))
			if err := a.sleep(ctx, pace.Load); err != nil {
				return "", err
			}
		}

		for s := 0; s < scrolls; s++ {
			if err := a.p.Inputter.Scroll(ctx, 200, 200, scrollClicks); err != nil {
				a.logger.Warn("scroll failed", zap.String("url", url), zap.Error(err))
				break
			}
			if err := a.sleep(ctx, pace.Scroll); err != nil {
				return "", err
			}
		}

		capture, err := a.p.Browser.GetText(ctx)
		if err != nil || capture == nil || capture.Text == "" {
			a.logger.Warn("could not get text", zap.String("url", url), zap.Error(err))
		} else {
			text.WriteString(capture.Text)
			text.WriteString(TimelineMarker)
		}
		if err := a.sleep(ctx, pace.Between); err != nil {
			return "", err
		}
	}
	return text.String(), nil
}

// Calculator opens the calculator, types expression, presses equals and
// returns the focused window's automation tree.
func (a *Acquirer) Calculator(ctx context.Context, app, expression string) (*model.WindowDetails, error) {
	if a.p == nil {
		return nil, errMissingProvider
	}
	a.logger.Info("opening calculator", zap.String("app", app))
	if _, err := a.p.System.OpenApplication(ctx, app); err != nil {
		return nil, err
	}
	steps := []step{
		{"wait for calculator", nil, a.pacing.CalcLoad},
		{"type expression", func(ctx context.Context) error { return a.p.Inputter.Type(ctx, expression) }, 0},
		{"click equals", func(ctx context.Context) error {
			return a.p.Inputter.ClickByDescription(ctx, "the equals sign")
		}, 0},
	}
	if err := a.run(ctx, steps); err != nil {
		return nil, err
	}

	overview, err := a.p.System.GetOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("get overview: %w", err)
	}
	window := overview.FocusedWindow()
	if window == nil {
		return nil, ErrNoFocusedWindow
	}
	return window, nil
}

type step struct {
	name string
	do   func(ctx context.Context) error
	wait time.Duration
}

func (a *Acquirer) run(ctx context.Context, steps []step) error {
	for _, s := range steps {
		if s.do != nil {
			a.logger.Debug(s.name)
			if err := s.do(ctx); err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
		}
		if err := a.sleep(ctx, s.wait); err != nil {
			return err
		}
	}
	return nil
}

func (a *Acquirer) capture(ctx context.Context) (*model.Screenshot, error) {
	a.logger.Info("taking screenshot")
	shot, err := a.p.Screenshotter.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("take screenshot: %w", err)
	}
	if !shot.Success || shot.ImageBase64 == "" {
		return nil, fmt.Errorf("%w: %s", ErrCaptureFailed, shot.Message)
	}
	return shot, nil
}
