package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ActionResult is the generic reply of an open/navigate call.
type ActionResult struct {
	Success bool   `yaml:"success"           json:"success"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// ErrOpenFailed is returned when the automation server reports that an
// application or URL could not be opened.
var ErrOpenFailed = errors.New("open failed")

const errorMarker = "Error"

// CheckOpen converts a result whose message carries the server's error
// marker into ErrOpenFailed.
func CheckOpen(res ActionResult) (ActionResult, error) {
	if strings.HasPrefix(res.Message, errorMarker) {
		return res, fmt.Errorf("%w: %s", ErrOpenFailed, res.Message)
	}
	return res, nil
}

// ChromeStrategy decides what happens when Chrome is already running.
type ChromeStrategy int

const (
	ThrowError ChromeStrategy = iota
	ForceClose
	StartWithoutUserProfile
)

func (s ChromeStrategy) String() string {
	switch s {
	case ForceClose:
		return "force-close"
	case StartWithoutUserProfile:
		return "no-profile"
	default:
		return "throw"
	}
}

// ParseChromeStrategy converts a string flag value to ChromeStrategy.
func ParseChromeStrategy(s string) (ChromeStrategy, error) {
	switch strings.ToLower(s) {
	case "", "throw", "throw-error":
		return ThrowError, nil
	case "force-close", "force_close":
		return ForceClose, nil
	case "no-profile", "no_profile":
		return StartWithoutUserProfile, nil
	default:
		return ThrowError, fmt.Errorf("unknown chrome strategy: %q (expected throw, force-close, or no-profile)", s)
	}
}
