package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open windows",
	Long:  "List the open windows reported by the automation server with their ID, title, process and bounds.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("title", "", "Only windows whose title contains this text")
	listCmd.Flags().Bool("visible-only", false, "Hide minimised windows")
	listCmd.Flags().Bool("focused", false, "Only the window holding focus")
}

func runList(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	visibleOnly, _ := cmd.Flags().GetBool("visible-only")
	focused, _ := cmd.Flags().GetBool("focused")

	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		overview, err := p.System.GetOverview(ctx)
		if err != nil {
			return err
		}
		if focused {
			if fw := overview.FocusedWindow(); fw != nil {
				return output.Print(fw.Window)
			}
			return output.Print(nil)
		}
		return output.Print(filterWindows(overview.Windows, title, visibleOnly))
	})
}
