package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click at coordinates or on a described element",
	Long: `Click at absolute screen coordinates, or let the automation server find an
element from a plain-language description ("the equals sign").`,
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Int("x", 0, "Click at absolute X screen coordinate")
	clickCmd.Flags().Int("y", 0, "Click at absolute Y screen coordinate")
	clickCmd.Flags().String("description", "", "Describe the element to click")
}

func runClick(cmd *cobra.Command, args []string) error {
	desc, _ := cmd.Flags().GetString("description")
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	hasXY := cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
	if (desc == "") == !hasXY {
		return fmt.Errorf("specify either --description or --x/--y")
	}

	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		if desc != "" {
			if err := p.Inputter.ClickByDescription(ctx, desc); err != nil {
				return err
			}
			return output.Print(ActionResult{OK: true, Action: "click", Target: desc})
		}
		if err := p.Inputter.Click(ctx, x, y); err != nil {
			return err
		}
		return output.Print(ActionResult{OK: true, Action: "click", Target: fmt.Sprintf("%d,%d", x, y)})
	})
}
