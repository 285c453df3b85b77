package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-relay/internal/extract"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/replay"
)

// stdin and stdout carry the MCP stream.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the relay stages as tools",
	Long: `Start a Model Context Protocol (MCP) server on standard I/O that exposes
window listing, tree reading, order extraction, ERP element mapping and
order replay as tools. The automation backend stays up until the client
disconnects or the process is interrupted.

Examples:
  desktop-relay serve
  desktop-relay serve --config ./desktop-relay.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Duration("cache-ttl", 500*time.Millisecond, "Window tree cache TTL (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")
	m, err := newModel(cmd.Context(), appConfig, logger())
	if err != nil {
		return err
	}
	return withSession(cmd.Context(), func(ctx context.Context, p *platform.Provider) error {
		var ex *extract.Extractor
		if m != nil {
			ex = extract.New(m,
				extract.WithLogger(logger()),
				extract.WithImageScale(appConfig.LLM.ImageScale),
				extract.WithPruneTree(appConfig.LLM.PruneTree),
			)
		}
		rp := replay.New(p.Automation, replayPacing(), nil, logger())
		return newMCPServer(p, ex, rp, appConfig.Orders.ErpTitle, cacheTTL, logger()).serve(ctx)
	})
}

func replayPacing() replay.Pacing {
	p := appConfig.Pacing.Replay
	return replay.Pacing{Customer: p.Customer, Field: p.Field, Add: p.Add, Save: p.Save}
}
