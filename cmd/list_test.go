package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

func TestListCommand_FlagDefaults(t *testing.T) {
	tests := []struct {
		name, typ, def string
	}{
		{"title", "string", ""},
		{"visible-only", "bool", "false"},
		{"focused", "bool", "false"},
	}
	for _, tt := range tests {
		f := listCmd.Flags().Lookup(tt.name)
		if f == nil {
			t.Errorf("flag --%s missing", tt.name)
			continue
		}
		if f.Value.Type() != tt.typ || f.DefValue != tt.def {
			t.Errorf("--%s: got %s default %q, want %s default %q", tt.name, f.Value.Type(), f.DefValue, tt.typ, tt.def)
		}
	}
}

func TestListCommand_FocusedPrintsWindow(t *testing.T) {
	f := erpFake()
	f.Overview.FocusInfo = &model.FocusInfo{FocusedElementParentWindow: f.Details["2"]}

	origProvider, origWriter, origFormat := platform.NewProviderFunc, output.Writer, output.OutputFormat
	defer func() {
		platform.NewProviderFunc, output.Writer, output.OutputFormat = origProvider, origWriter, origFormat
	}()
	platform.NewProviderFunc = func() (*platform.Provider, error) { return f.Provider(), nil }
	var buf bytes.Buffer
	output.Writer = &buf
	output.OutputFormat = output.FormatYAML

	listCmd.SetContext(context.Background())
	if err := listCmd.Flags().Set("focused", "true"); err != nil {
		t.Fatal(err)
	}
	defer listCmd.Flags().Set("focused", "false")

	if err := runList(listCmd, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "title: Mini ERP system") {
		t.Errorf("expected focused window in output, got:\n%s", buf.String())
	}
	if f.Starts != 1 || f.Stops != 1 {
		t.Errorf("expected one session, got %d starts, %d stops", f.Starts, f.Stops)
	}
}
