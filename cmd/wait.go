package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/session"
)

// WaitResult is the output of a wait command.
type WaitResult struct {
	OK       bool   `yaml:"ok"                  json:"ok"`
	Action   string `yaml:"action"              json:"action"`
	Elapsed  string `yaml:"elapsed"             json:"elapsed"`
	Match    string `yaml:"match,omitempty"     json:"match,omitempty"`
	TimedOut bool   `yaml:"timed_out,omitempty" json:"timedOut,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a window or element to appear",
	Long: `Poll the automation server until a window whose title contains --window
exists, and optionally until that window contains an element matching the
--for-* conditions. With --gone, wait until the condition no longer holds.`,
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("window", "", "Window title substring (required)")
	waitCmd.Flags().String("for-text", "", "Element whose name, value or automation ID contains this text")
	waitCmd.Flags().String("for-role", "", "Element with this role (e.g. btn, input)")
	waitCmd.Flags().String("for-id", "", "Element with this ID")
	waitCmd.Flags().Bool("gone", false, "Invert: wait until the condition is NO LONGER true")
	waitCmd.Flags().Duration("timeout", 30*time.Second, "Max time to wait")
	waitCmd.Flags().Duration("interval", 500*time.Millisecond, "Polling interval")
}

// waitSpec is what the wait command polls for.
type waitSpec struct {
	window  string
	forText string
	forRole string
	forID   string
	gone    bool
}

func (w waitSpec) needsElement() bool {
	return w.forText != "" || w.forRole != "" || w.forID != ""
}

func runWait(cmd *cobra.Command, args []string) error {
	var spec waitSpec
	spec.window, _ = cmd.Flags().GetString("window")
	spec.forText, _ = cmd.Flags().GetString("for-text")
	spec.forRole, _ = cmd.Flags().GetString("for-role")
	spec.forID, _ = cmd.Flags().GetString("for-id")
	spec.gone, _ = cmd.Flags().GetBool("gone")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	interval, _ := cmd.Flags().GetDuration("interval")

	if spec.window == "" {
		return fmt.Errorf("--window is required")
	}

	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		start := time.Now()
		err := session.WaitFor(ctx, waitCondition(p, spec), interval, timeout)
		res := WaitResult{
			OK:      err == nil,
			Action:  "wait",
			Elapsed: fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
			Match:   describeCondition(spec),
		}
		if errors.Is(err, session.ErrTimeout) {
			res.TimedOut = true
		}
		if printErr := output.Print(res); printErr != nil && err == nil {
			return printErr
		}
		return err
	})
}

// waitCondition reports whether spec currently holds on p.
func waitCondition(p *platform.Provider, spec waitSpec) session.Condition {
	return func(ctx context.Context) (bool, error) {
		overview, err := p.System.GetOverview(ctx)
		if err != nil {
			return false, err
		}
		w := overview.FindWindowByTitle(spec.window)
		matched := w != nil
		if matched && spec.needsElement() {
			details, err := p.System.GetWindowDetails(ctx, w.ID)
			if err != nil {
				return false, err
			}
			matched = checkWaitCondition(details.Elements(), spec)
		}
		return matched != spec.gone, nil
	}
}

// checkWaitCondition checks if any element in the tree matches the wait criteria.
func checkWaitCondition(elements []model.Element, spec waitSpec) bool {
	for _, elem := range elements {
		if matchesCondition(elem, spec) {
			return true
		}
		if checkWaitCondition(elem.Children, spec) {
			return true
		}
	}
	return false
}

// matchesCondition checks if a single element matches all specified criteria.
// When multiple criteria are given, ALL must match (AND logic).
func matchesCondition(elem model.Element, spec waitSpec) bool {
	if spec.forID != "" && elem.ID != spec.forID {
		return false
	}
	if spec.forRole != "" && elem.Role() != spec.forRole {
		return false
	}
	if spec.forText != "" {
		textLower := strings.ToLower(spec.forText)
		if !strings.Contains(strings.ToLower(elem.Name), textLower) &&
			!strings.Contains(strings.ToLower(elem.Value), textLower) &&
			!strings.Contains(strings.ToLower(elem.AutomationID), textLower) {
			return false
		}
	}
	return true
}

// describeCondition returns a human-readable description of what was waited for.
func describeCondition(spec waitSpec) string {
	parts := []string{fmt.Sprintf("window=%q", spec.window)}
	if spec.forRole != "" {
		parts = append(parts, fmt.Sprintf("role=%s", spec.forRole))
	}
	if spec.forText != "" {
		parts = append(parts, fmt.Sprintf("text=%q", spec.forText))
	}
	if spec.forID != "" {
		parts = append(parts, fmt.Sprintf("id=%s", spec.forID))
	}
	desc := strings.Join(parts, " ")
	if spec.gone {
		desc += " (gone)"
	}
	return desc
}
