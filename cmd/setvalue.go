package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

var setValueCmd = &cobra.Command{
	Use:   "set-value",
	Short: "Set the value of a UI element directly",
	Long: `Set an element's value through its automation value pattern, by ID.

This sets the value without simulating keystrokes, so it works on fields
that are not focused and is not affected by keyboard layout.`,
	RunE: runSetValue,
}

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Invoke a UI element",
	Long:  "Invoke an element (press a button, activate a menu item) through its automation invoke pattern, by ID.",
	RunE:  runAction,
}

func init() {
	rootCmd.AddCommand(setValueCmd, actionCmd)
	setValueCmd.Flags().String("id", "", "Element ID from read output (required)")
	setValueCmd.Flags().String("value", "", "Value to set")
	actionCmd.Flags().String("id", "", "Element ID from read output (required)")
}

func runSetValue(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	value, _ := cmd.Flags().GetString("value")
	if id == "" {
		return fmt.Errorf("--id is required")
	}
	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		if err := p.Automation.SetValue(ctx, id, value); err != nil {
			return err
		}
		return output.Print(ActionResult{OK: true, Action: "set-value", Target: id, Value: value})
	})
}

func runAction(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		return fmt.Errorf("--id is required")
	}
	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		if err := p.Automation.Invoke(ctx, id); err != nil {
			return err
		}
		return output.Print(ActionResult{OK: true, Action: "invoke", Target: id})
	})
}
