// Package pipeline wires acquisition, extraction, discovery and replay into
// the end-to-end runs exposed on the command line.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/acquire"
	"github.com/mj1618/desktop-relay/internal/assets"
	"github.com/mj1618/desktop-relay/internal/config"
	"github.com/mj1618/desktop-relay/internal/extract"
	"github.com/mj1618/desktop-relay/internal/llm"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/replay"
	"github.com/mj1618/desktop-relay/internal/session"
)

// ErrUnknownSource is returned for an orders.source other than gmail or outlook.
var ErrUnknownSource = errors.New("unknown order source")

// Option configures a Runner.
type Option func(*Runner)

// WithModel sets the model used by the extraction stages. Without one
// those stages are skipped with a warning.
func WithModel(m llm.Client) Option {
	return func(r *Runner) { r.model = m }
}

// WithLogger sets the parent logger; each run adds its run_id field.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithSleep replaces session.Sleep for every fixed wait.
func WithSleep(s session.SleepFunc) Option {
	return func(r *Runner) { r.sleep = s }
}

// WithFetcher sets the fetcher that downloads the mock ERP executable.
func WithFetcher(f *assets.Fetcher) Option {
	return func(r *Runner) { r.fetcher = f }
}

// Runner runs pipelines against one capability provider. Every run gets
// its own session, started at the beginning and stopped on return.
type Runner struct {
	provider *platform.Provider
	cfg      *config.Config
	model    llm.Client
	logger   *zap.Logger
	sleep    session.SleepFunc
	fetcher  *assets.Fetcher
}

func New(p *platform.Provider, cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		provider: p,
		cfg:      cfg,
		logger:   zap.NewNop(),
		sleep:    session.Sleep,
	}
	for _, o := range opts {
		o(r)
	}
	if r.fetcher == nil {
		r.fetcher = assets.New("", assets.WithLogger(r.logger))
	}
	return r
}

// run is the state shared by the stages of one pipeline invocation.
type run struct {
	id       string
	logger   *zap.Logger
	provider *platform.Provider
	acquirer *acquire.Acquirer
}

// within starts a session, hands the stages a run, and stops the session
// however fn returns.
func (r *Runner) within(ctx context.Context, name string, fn func(ctx context.Context, rn *run) error) (runID string, err error) {
	runID = uuid.NewString()
	logger := r.logger.With(zap.String("pipeline", name), zap.String("run_id", runID))

	sess := session.New(r.provider, logger)
	if err := sess.Start(ctx); err != nil {
		return runID, err
	}
	defer func() {
		if stopErr := sess.Stop(ctx); stopErr != nil {
			logger.Warn("teardown failed", zap.Error(stopErr))
		}
	}()

	p, err := sess.Provider()
	if err != nil {
		return runID, err
	}
	rn := &run{
		id:       runID,
		logger:   logger,
		provider: p,
		acquirer: acquire.New(p, r.cfg.Pacing, r.sleep, logger),
	}
	if err := fn(ctx, rn); err != nil {
		logger.Error("pipeline failed", zap.Error(err))
		return runID, err
	}
	logger.Info("pipeline finished")
	return runID, nil
}

func (r *Runner) extractor(logger *zap.Logger) *extract.Extractor {
	return extract.New(r.model,
		extract.WithLogger(logger),
		extract.WithImageScale(r.cfg.LLM.ImageScale),
		extract.WithPruneTree(r.cfg.LLM.PruneTree),
	)
}

func (r *Runner) replayPacing() replay.Pacing {
	p := r.cfg.Pacing.Replay
	return replay.Pacing{Customer: p.Customer, Field: p.Field, Add: p.Add, Save: p.Save}
}

func (r *Runner) modelMissing(logger *zap.Logger, stage string) bool {
	if r.model != nil {
		return false
	}
	logger.Warn(fmt.Sprintf("no model API key configured, skipping %s", stage))
	return true
}
