package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
)

var openCmd = &cobra.Command{
	Use:   "open [url or application]",
	Short: "Open a URL in Chrome or launch an application",
	Long: `Open a URL in Chrome or launch an application by name or path.

Arguments starting with http:// or https:// are opened in Chrome; anything
else is launched as an application. --strategy decides what happens when
Chrome is already running: throw (fail), force-close, or no-profile.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().String("url", "", "URL to open in Chrome")
	openCmd.Flags().String("app", "", "Application name or executable path to launch")
	openCmd.Flags().String("strategy", "throw", "When Chrome is already running: throw, force-close, no-profile")
	openCmd.Flags().Bool("navigate", false, "Navigate the already open Chrome tab instead of starting Chrome")
}

func runOpen(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("url")
	app, _ := cmd.Flags().GetString("app")
	strategyStr, _ := cmd.Flags().GetString("strategy")
	navigate, _ := cmd.Flags().GetBool("navigate")

	if len(args) > 0 && url == "" && app == "" {
		if strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://") {
			url = args[0]
		} else {
			app = args[0]
		}
	}
	if (url == "") == (app == "") {
		return fmt.Errorf("specify exactly one of --url or --app")
	}
	strategy, err := platform.ParseChromeStrategy(strategyStr)
	if err != nil {
		return err
	}

	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		var res platform.ActionResult
		var err error
		action, target := "open-app", app
		switch {
		case url != "" && navigate:
			action, target = "navigate", url
			res, err = p.Browser.Navigate(ctx, url)
		case url != "":
			action, target = "open-chrome", url
			res, err = p.Browser.OpenChrome(ctx, url, strategy)
		default:
			res, err = p.System.OpenApplication(ctx, app)
		}
		if err != nil {
			return err
		}
		return output.Print(ActionResult{OK: res.Success, Action: action, Target: target, Message: res.Message})
	})
}
