package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text or press key combinations",
	Long: `Type text into the focused element or press a key combination.
Text can be passed as a positional argument or via --text.

Examples:
  desktop-relay type "New Computerstuff.com Order"
  desktop-relay type --key Ctrl+E
  desktop-relay type --text 3+4 --key Enter`,
	Args: cobra.MaximumNArgs(1),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("text", "", "Text to type (alternative to positional arg)")
	typeCmd.Flags().String("key", "", "Key combination pressed after the text (e.g. \"Enter\", \"Ctrl+E\")")
}

func runType(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	key, _ := cmd.Flags().GetString("key")
	if text == "" && len(args) > 0 {
		text = args[0]
	}
	if text == "" && key == "" {
		return fmt.Errorf("specify text (positional or --text) or --key")
	}

	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		if text != "" {
			if err := p.Inputter.Type(ctx, text); err != nil {
				return err
			}
		}
		if key != "" {
			if err := p.Inputter.Press(ctx, key); err != nil {
				return err
			}
		}
		return output.Print(ActionResult{OK: true, Action: "type", Value: text, Target: key})
	})
}
