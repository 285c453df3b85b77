package platform

import (
	"context"

	"github.com/mj1618/desktop-relay/internal/model"
)

// Backend controls the lifecycle of the automation server session.
type Backend interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Browser drives a Chrome instance.
type Browser interface {
	// OpenChrome opens url in Chrome. A result message starting with
	// "Error" is reported as ErrOpenFailed.
	OpenChrome(ctx context.Context, url string, strategy ChromeStrategy) (ActionResult, error)

	// Navigate loads url in the already opened tab.
	Navigate(ctx context.Context, url string) (ActionResult, error)

	// GetText returns the visible text of the current document.
	GetText(ctx context.Context) (*model.TextCapture, error)
}

// System opens applications and inspects the window list.
type System interface {
	OpenApplication(ctx context.Context, nameOrPath string) (ActionResult, error)
	GetOverview(ctx context.Context) (*model.Overview, error)
	GetWindowDetails(ctx context.Context, windowID string) (*model.WindowDetails, error)
}

// Screenshotter captures the full screen.
type Screenshotter interface {
	Take(ctx context.Context) (*model.Screenshot, error)
}

// Inputter simulates mouse and keyboard input.
type Inputter interface {
	Click(ctx context.Context, x, y int) error
	// ClickByDescription lets the automation server locate the target
	// from a natural language description.
	ClickByDescription(ctx context.Context, description string) error
	Scroll(ctx context.Context, x, y, clicks int) error
	Type(ctx context.Context, text string) error
	// Press sends a key or key combination such as "Enter" or "Ctrl+E".
	Press(ctx context.Context, keys string) error
}

// Automation performs UI-automation patterns directly on elements
// identified by their tree ID.
type Automation interface {
	SetValue(ctx context.Context, elementID, value string) error
	Invoke(ctx context.Context, elementID string) error
}
