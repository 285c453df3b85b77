package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/model"
)

type NewsResult struct {
	RunID    string            `yaml:"run_id"           json:"runId"`
	Accounts []string          `yaml:"accounts"         json:"accounts"`
	Digest   *model.NewsDigest `yaml:"digest,omitempty" json:"digest,omitempty"`
}

// News collects the configured accounts' timelines and asks the model for
// a digest. An empty collection skips the model call.
func (r *Runner) News(ctx context.Context) (*NewsResult, error) {
	cfg := r.cfg.News
	res := &NewsResult{Accounts: cfg.Accounts}
	runID, err := r.within(ctx, "news", func(ctx context.Context, rn *run) error {
		text, err := rn.acquirer.AccountTimelines(ctx, cfg.Accounts, cfg.Scrolls)
		if err != nil {
			return fmt.Errorf("collect timelines: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			rn.logger.Warn("no timeline text collected, skipping digest")
			return nil
		}
		if r.modelMissing(rn.logger, "the news digest") {
			return nil
		}
		digest, err := r.extractor(rn.logger).Digest(ctx, text)
		if err != nil {
			return fmt.Errorf("digest: %w", err)
		}
		res.Digest = digest
		rn.logger.Info("breaking news probability",
			zap.Int("percent", digest.BreakingNewsProbabilityInPercent))
		return nil
	})
	res.RunID = runID
	return res, err
}
