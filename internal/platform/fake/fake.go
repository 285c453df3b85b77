// Package fake provides an in-memory platform.Provider that records every
// call. It is used by tests of the packages that drive the desktop.
package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
)

// Fake implements every platform capability. Calls are appended to Calls
// as "<method> <args>"; an entry in Fail keyed by method name makes that
// method return the error.
type Fake struct {
	mu sync.Mutex

	Calls []string
	Fail  map[string]error

	OpenMessage string
	Texts       []string
	Overview    *model.Overview
	Details     map[string]*model.WindowDetails
	Shot        *model.Screenshot

	Starts int
	Stops  int
}

// New returns a Fake whose opens succeed and whose screenshot is a
// one-pixel success.
func New() *Fake {
	return &Fake{
		Fail:        map[string]error{},
		OpenMessage: "Opened",
		Details:     map[string]*model.WindowDetails{},
		Shot:        &model.Screenshot{Success: true, ImageBase64: "aW1n", MimeType: "image/jpeg"},
	}
}

// Provider wraps f in a platform.Provider.
func (f *Fake) Provider() *platform.Provider {
	return &platform.Provider{
		Backend:       f,
		Browser:       f,
		System:        f,
		Screenshotter: f,
		Inputter:      f,
		Automation:    f,
	}
}

// Called reports how many recorded calls start with method.
func (f *Fake) Called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == method || len(c) > len(method) && c[:len(method)+1] == method+" " {
			n++
		}
	}
	return n
}

func (f *Fake) record(method string, format string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := method
	if format != "" {
		call += " " + fmt.Sprintf(format, args...)
	}
	f.Calls = append(f.Calls, call)
	return f.Fail[method]
}

func (f *Fake) Start(context.Context) error {
	f.mu.Lock()
	f.Starts++
	f.mu.Unlock()
	return f.record("start", "")
}

func (f *Fake) Stop(context.Context) error {
	f.mu.Lock()
	f.Stops++
	f.mu.Unlock()
	return f.record("stop", "")
}

func (f *Fake) OpenChrome(_ context.Context, url string, s platform.ChromeStrategy) (platform.ActionResult, error) {
	if err := f.record("open-chrome", "%s %s", url, s); err != nil {
		return platform.ActionResult{}, err
	}
	return platform.CheckOpen(platform.ActionResult{Success: true, Message: f.OpenMessage})
}

func (f *Fake) Navigate(_ context.Context, url string) (platform.ActionResult, error) {
	if err := f.record("navigate", "%s", url); err != nil {
		return platform.ActionResult{}, err
	}
	return platform.ActionResult{Success: true, Message: "Navigated to " + url}, nil
}

// GetText returns the next entry of Texts, or an empty capture once they
// run out.
func (f *Fake) GetText(context.Context) (*model.TextCapture, error) {
	if err := f.record("get-text", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Texts) == 0 {
		return &model.TextCapture{Success: true}, nil
	}
	text := f.Texts[0]
	f.Texts = f.Texts[1:]
	return &model.TextCapture{Success: true, Text: text}, nil
}

func (f *Fake) OpenApplication(_ context.Context, nameOrPath string) (platform.ActionResult, error) {
	if err := f.record("open-application", "%s", nameOrPath); err != nil {
		return platform.ActionResult{}, err
	}
	return platform.CheckOpen(platform.ActionResult{Success: true, Message: f.OpenMessage})
}

func (f *Fake) GetOverview(context.Context) (*model.Overview, error) {
	if err := f.record("overview", ""); err != nil {
		return nil, err
	}
	if f.Overview == nil {
		return &model.Overview{}, nil
	}
	return f.Overview, nil
}

func (f *Fake) GetWindowDetails(_ context.Context, windowID string) (*model.WindowDetails, error) {
	if err := f.record("window-details", "%s", windowID); err != nil {
		return nil, err
	}
	d, ok := f.Details[windowID]
	if !ok {
		return nil, fmt.Errorf("window %s not found", windowID)
	}
	return d, nil
}

func (f *Fake) Take(context.Context) (*model.Screenshot, error) {
	if err := f.record("screenshot", ""); err != nil {
		return nil, err
	}
	return f.Shot, nil
}

func (f *Fake) Click(_ context.Context, x, y int) error {
	return f.record("click", "%d,%d", x, y)
}

func (f *Fake) ClickByDescription(_ context.Context, desc string) error {
	return f.record("click-by-description", "%s", desc)
}

func (f *Fake) Scroll(_ context.Context, x, y, clicks int) error {
	return f.record("scroll", "%d,%d,%d", x, y, clicks)
}

func (f *Fake) Type(_ context.Context, text string) error {
	return f.record("type", "%s", text)
}

func (f *Fake) Press(_ context.Context, keys string) error {
	return f.record("press", "%s", keys)
}

func (f *Fake) SetValue(_ context.Context, id, value string) error {
	return f.record("set-value", "%s=%s", id, value)
}

func (f *Fake) Invoke(_ context.Context, id string) error {
	return f.record("invoke", "%s", id)
}
