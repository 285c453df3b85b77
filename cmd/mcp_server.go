package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/extract"
	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/replay"
	"github.com/mj1618/desktop-relay/internal/version"
)

var errNoModel = errors.New("no model API key configured")

// mcpServer exposes the relay stages as MCP tools over one running session.
// Tool calls hold mu for their whole duration: two automations at once
// would fight over OS focus.
type mcpServer struct {
	provider  *platform.Provider
	cache     *cachedSystem
	extractor *extract.Extractor
	replayer  *replay.Replayer
	erpTitle  string
	logger    *zap.Logger

	mu  sync.Mutex
	mcp *mcpserver.MCPServer
}

// newMCPServer registers the tools. extractor may be nil, in which case
// the model-backed tools report an error. Window trees are cached for
// cacheTTL between tool calls.
func newMCPServer(p *platform.Provider, ex *extract.Extractor, rp *replay.Replayer, erpTitle string, cacheTTL time.Duration, logger *zap.Logger) *mcpServer {
	cache := newCachedSystem(p.System, cacheTTL)
	cached := *p
	cached.System = cache
	s := &mcpServer{
		provider:  &cached,
		cache:     cache,
		extractor: ex,
		replayer:  rp,
		erpTitle:  erpTitle,
		logger:    logger,
	}
	s.mcp = mcpserver.NewMCPServer(
		"desktop-relay",
		version.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	s.registerTools()
	return s
}

// serve answers requests on stdin/stdout until ctx is cancelled.
func (s *mcpServer) serve(ctx context.Context) error {
	return mcpserver.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List the open desktop windows with their IDs and titles"),
			mcp.WithString("title", mcp.Description("Only windows whose title contains this text")),
		),
		s.locked(s.handleListWindows),
	)

	s.mcp.AddTool(
		mcp.NewTool("read_window",
			mcp.WithDescription("Read a window's UI automation tree. Element IDs can be passed to replay_order."),
			mcp.WithString("title", mcp.Description("Window title substring (default: focused window)")),
			mcp.WithString("window_id", mcp.Description("Window ID from list_windows")),
			mcp.WithBoolean("prune", mcp.Description("Drop anonymous structural groups")),
		),
		s.locked(s.handleReadWindow),
	)

	s.mcp.AddTool(
		mcp.NewTool("extract_order",
			mcp.WithDescription("Read an order (customer and articles) from a screenshot with the vision model. Without image_base64 the current screen is captured."),
			mcp.WithString("image_base64", mcp.Description("Base64 screenshot to read instead of capturing the screen")),
			mcp.WithString("mime_type", mcp.Description("MIME type of image_base64 (default image/jpeg)")),
		),
		s.locked(s.handleExtractOrder),
	)

	s.mcp.AddTool(
		mcp.NewTool("map_erp_elements",
			mcp.WithDescription("Identify the ERP form's element IDs (customer, article, quantity, price, add, save) from its automation tree"),
			mcp.WithString("title", mcp.Description("ERP window title substring (default from config)")),
		),
		s.locked(s.handleMapElements),
	)

	s.mcp.AddTool(
		mcp.NewTool("replay_order",
			mcp.WithDescription("Type an order into the ERP: set the customer, add every article, then save"),
			mcp.WithObject("order", mcp.Description("Order as returned by extract_order"), mcp.Required()),
			mcp.WithObject("elementIds", mcp.Description("Element IDs as returned by map_erp_elements"), mcp.Required()),
		),
		s.locked(s.handleReplayOrder),
	)
}

// locked serialises a handler with every other tool call.
func (s *mcpServer) locked(h mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logger.Debug("tool call", zap.String("tool", req.Params.Name))
		return h(ctx, req)
	}
}

func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

func (s *mcpServer) handleListWindows(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	overview, err := s.provider.System.GetOverview(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultJSON(filterWindows(overview.Windows, req.GetString("title", ""), false))
}

func (s *mcpServer) handleReadWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	details, err := resolveWindow(ctx, s.provider, req.GetString("title", ""), req.GetString("window_id", ""))
	if err != nil {
		return toolError(err), nil
	}
	if req.GetBool("prune", false) {
		pruned := *details
		if roots := model.PruneEmptyGroups(details.Elements()); len(roots) > 0 {
			pruned.Root = &roots[0]
		}
		details = &pruned
	}
	return mcp.NewToolResultJSON(details)
}

func (s *mcpServer) handleExtractOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.extractor == nil {
		return toolError(errNoModel), nil
	}
	shot := &model.Screenshot{
		Success:     true,
		ImageBase64: req.GetString("image_base64", ""),
		MimeType:    req.GetString("mime_type", "image/jpeg"),
	}
	if shot.ImageBase64 == "" {
		var err error
		if shot, err = s.provider.Screenshotter.Take(ctx); err != nil {
			return toolError(err), nil
		}
	}
	order, err := s.extractor.ExtractOrder(ctx, shot)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultJSON(order)
}

func (s *mcpServer) handleMapElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.extractor == nil {
		return toolError(errNoModel), nil
	}
	title := req.GetString("title", s.erpTitle)
	details, err := resolveWindow(ctx, s.provider, title, "")
	if err != nil {
		return toolError(err), nil
	}
	ids, err := s.extractor.MapElements(ctx, details)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultJSON(ids)
}

type replayArgs struct {
	Order      map[string]any `json:"order"`
	ElementIDs map[string]any `json:"elementIds"`
}

// handleReplayOrder coerces its arguments like a model reply, so negative
// or string-typed numbers never reach the ERP as typed.
func (s *mcpServer) handleReplayOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args replayArgs
	if err := req.BindArguments(&args); err != nil {
		return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	order := extract.OrderFromMap(args.Order)
	ids := extract.ElementIDsFromMap(args.ElementIDs)
	if ids.CustomerName == "" {
		return toolError(extract.ErrMissingCustomerID), nil
	}
	err := s.replayer.Replay(ctx, order, ids)
	s.cache.invalidateAll()
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("replayed order for %s with %d articles",
		order.CustomerName, len(order.OrderedArticles))), nil
}
