package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/pipeline"
	"github.com/mj1618/desktop-relay/internal/platform"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Copy the newest order email into the ERP",
	Long: `Find the newest order email (Gmail in Chrome, or Outlook), read the
order from a screenshot with the model, launch the mock ERP, map its form
fields and type the order in.

If the ERP cannot be downloaded or launched, the order is still extracted
and printed but nothing is typed.`,
	RunE: runOrders,
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Type an expression into the calculator and read back the result",
	RunE:  runCalc,
}

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Summarise the latest posts of a few accounts",
	Long: `Open each configured account's timeline in Chrome, scroll it, collect the
page text, and ask the model for a three-point digest and the probability
that big news has just broken.`,
	RunE: runNews,
}

func init() {
	rootCmd.AddCommand(ordersCmd, calcCmd, newsCmd)
	ordersCmd.Flags().String("source", "", "Mail source: gmail, outlook (overrides orders.source)")
	ordersCmd.Flags().String("subject", "", "Subject to search for (overrides orders.subject)")
	ordersCmd.Flags().String("erp-path", "", "Launch this ERP executable instead of downloading the mock")
	calcCmd.Flags().String("expression", "", "Expression to type (overrides calc.expression)")
	newsCmd.Flags().StringSlice("accounts", nil, "Accounts to read (overrides news.accounts)")
	newsCmd.Flags().Int("scrolls", -1, "Scrolls per timeline (overrides news.scrolls)")
}

func newRunner(cmd *cobra.Command) (*pipeline.Runner, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	m, err := newModel(cmd.Context(), appConfig, logger())
	if err != nil {
		return nil, err
	}
	opts := []pipeline.Option{pipeline.WithLogger(logger())}
	if m != nil {
		opts = append(opts, pipeline.WithModel(m))
	}
	return pipeline.New(provider, appConfig, opts...), nil
}

func runOrders(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetString("source"); v != "" {
		appConfig.Orders.Source = v
	}
	if v, _ := cmd.Flags().GetString("subject"); v != "" {
		appConfig.Orders.Subject = v
	}
	if v, _ := cmd.Flags().GetString("erp-path"); v != "" {
		appConfig.Orders.ErpPath = v
	}
	r, err := newRunner(cmd)
	if err != nil {
		return err
	}
	res, err := r.Orders(cmd.Context())
	if printErr := output.Print(res); printErr != nil && err == nil {
		err = printErr
	}
	return err
}

func runCalc(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetString("expression"); v != "" {
		appConfig.Calc.Expression = v
	}
	r, err := newRunner(cmd)
	if err != nil {
		return err
	}
	res, err := r.Calculator(cmd.Context())
	if printErr := output.Print(res); printErr != nil && err == nil {
		err = printErr
	}
	return err
}

func runNews(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetStringSlice("accounts"); len(v) > 0 {
		appConfig.News.Accounts = v
	}
	if v, _ := cmd.Flags().GetInt("scrolls"); v >= 0 {
		appConfig.News.Scrolls = v
	}
	r, err := newRunner(cmd)
	if err != nil {
		return err
	}
	res, err := r.News(cmd.Context())
	if printErr := output.Print(res); printErr != nil && err == nil {
		err = printErr
	}
	return err
}
