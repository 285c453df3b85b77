package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Scroll the mouse wheel at a screen position",
	Long:  "Scroll the mouse wheel at absolute screen coordinates. Positive --clicks scroll down, negative scroll up.",
	RunE:  runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().Int("x", 200, "X screen coordinate")
	scrollCmd.Flags().Int("y", 200, "Y screen coordinate")
	scrollCmd.Flags().Int("clicks", 3, "Number of wheel clicks")
}

func runScroll(cmd *cobra.Command, args []string) error {
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	clicks, _ := cmd.Flags().GetInt("clicks")

	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		if err := p.Inputter.Scroll(ctx, x, y, clicks); err != nil {
			return err
		}
		return output.Print(ActionResult{OK: true, Action: "scroll", Target: fmt.Sprintf("%d,%d", x, y), Value: fmt.Sprint(clicks)})
	})
}
