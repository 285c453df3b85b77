package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/config"
	"github.com/mj1618/desktop-relay/internal/observability"
	"github.com/mj1618/desktop-relay/internal/output"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/version"
)

// appConfig is loaded once per invocation by the root pre-run hook.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "desktop-relay",
	Short: "Relay data between desktop applications through a UI automation server",
	Long: `desktop-relay reads data out of one desktop application (a mail client,
a browser page, a calculator), turns it into structured data with a
vision-capable model, and types it into another application through its UI
automation tree.

Every run starts the automation backend, does its work, and stops the
backend again, even when a stage fails or the run is interrupted.`,
	SilenceUsage: true,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./desktop-relay.yaml)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		path, _ := rootCmd.PersistentFlags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		appConfig = cfg
		observability.InitializeLogger(cfg.Logger)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}

	platform.NewProviderFunc = func() (*platform.Provider, error) {
		if appConfig == nil {
			return nil, fmt.Errorf("configuration not loaded")
		}
		return newProvider(appConfig, logger())
	}
}

func logger() *zap.Logger {
	return observability.GetLogger()
}
