package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
)

// ActionResult is the output of the single-action commands.
type ActionResult struct {
	OK      bool   `yaml:"ok"                json:"ok"`
	Action  string `yaml:"action"            json:"action"`
	Target  string `yaml:"target,omitempty"  json:"target,omitempty"`
	Value   string `yaml:"value,omitempty"   json:"value,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// addWindowFlags adds --window (title substring) and --window-id.
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("window", "", "Window title substring (case-insensitive)")
	cmd.Flags().String("window-id", "", "Window ID from list output")
}

func getWindowFlags(cmd *cobra.Command) (title, id string) {
	title, _ = cmd.Flags().GetString("window")
	id, _ = cmd.Flags().GetString("window-id")
	return
}

// resolveWindow returns the details of the window with id, or of the first
// window whose title contains title. With neither set it uses the window
// holding focus.
func resolveWindow(ctx context.Context, p *platform.Provider, title, id string) (*model.WindowDetails, error) {
	if id != "" {
		return p.System.GetWindowDetails(ctx, id)
	}
	overview, err := p.System.GetOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("get overview: %w", err)
	}
	if title == "" {
		if fw := overview.FocusedWindow(); fw != nil {
			if fw.Root != nil {
				return fw, nil
			}
			return p.System.GetWindowDetails(ctx, fw.ID)
		}
		return nil, fmt.Errorf("no focused window; use --window or --window-id")
	}
	w := overview.FindWindowByTitle(title)
	if w == nil {
		return nil, fmt.Errorf("no window matching %q", title)
	}
	return p.System.GetWindowDetails(ctx, w.ID)
}

// parseRoles splits a comma-separated --roles value.
func parseRoles(s string) []string {
	var roles []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// filterWindows keeps windows whose title contains title and, when
// visibleOnly is set, drops minimised ones.
func filterWindows(windows []model.Window, title string, visibleOnly bool) []model.Window {
	needle := strings.ToLower(title)
	result := []model.Window{}
	for _, w := range windows {
		if needle != "" && !strings.Contains(strings.ToLower(w.Title), needle) {
			continue
		}
		if visibleOnly && w.Minimized {
			continue
		}
		result = append(result, w)
	}
	return result
}
