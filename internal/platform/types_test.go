package platform

import (
	"errors"
	"testing"
)

func TestCheckOpen_ErrorMarker(t *testing.T) {
	res := ActionResult{Success: false, Message: "Error: Chrome is already running"}
	_, err := CheckOpen(res)
	if !errors.Is(err, ErrOpenFailed) {
		t.Fatalf("expected ErrOpenFailed, got %v", err)
	}
}

func TestCheckOpen_OK(t *testing.T) {
	tests := []string{"", "Opened chrome", "No Error occurred"}
	for _, msg := range tests {
		if _, err := CheckOpen(ActionResult{Success: true, Message: msg}); err != nil {
			t.Errorf("CheckOpen(%q): unexpected error %v", msg, err)
		}
	}
}

func TestParseChromeStrategy_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  ChromeStrategy
	}{
		{"", ThrowError},
		{"throw", ThrowError},
		{"force-close", ForceClose},
		{"FORCE_CLOSE", ForceClose},
		{"no-profile", StartWithoutUserProfile},
	}
	for _, tt := range tests {
		got, err := ParseChromeStrategy(tt.input)
		if err != nil {
			t.Errorf("ParseChromeStrategy(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseChromeStrategy(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseChromeStrategy_Invalid(t *testing.T) {
	if _, err := ParseChromeStrategy("reuse"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestChromeStrategy_StringRoundTrip(t *testing.T) {
	for _, s := range []ChromeStrategy{ThrowError, ForceClose, StartWithoutUserProfile} {
		got, err := ParseChromeStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("round trip %v: got %v, %v", s, got, err)
		}
	}
}
