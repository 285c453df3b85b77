package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/replay"
	"github.com/mj1618/desktop-relay/internal/session"
)

// ErrErpWindowNotFound is returned when no window title matches orders.erp_title.
var ErrErpWindowNotFound = errors.New("ERP window not found")

// OrdersResult reports how far an orders run got.
type OrdersResult struct {
	RunID      string               `yaml:"run_id"                json:"runId"`
	Order      *model.Order         `yaml:"order,omitempty"       json:"order,omitempty"`
	ElementIDs *model.ErpElementIDs `yaml:"element_ids,omitempty" json:"elementIds,omitempty"`
	ErpReady   bool                 `yaml:"erp_ready"             json:"erpReady"`
	Replayed   bool                 `yaml:"replayed"              json:"replayed"`
}

// Orders reads the newest order email, extracts the order, and types it
// into the ERP.
func (r *Runner) Orders(ctx context.Context) (*OrdersResult, error) {
	res := &OrdersResult{}
	runID, err := r.within(ctx, "orders", func(ctx context.Context, rn *run) error {
		return r.orders(ctx, rn, res)
	})
	res.RunID = runID
	return res, err
}

func (r *Runner) orders(ctx context.Context, rn *run, res *OrdersResult) error {
	cfg := r.cfg.Orders

	var shot *model.Screenshot
	var err error
	switch cfg.Source {
	case "", "gmail":
		shot, err = rn.acquirer.GmailOrder(ctx, cfg.Subject)
	case "outlook":
		shot, err = rn.acquirer.OutlookOrder(ctx, cfg.Subject)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
	if err != nil {
		return fmt.Errorf("acquire order email: %w", err)
	}

	res.ErpReady = r.launchErp(ctx, rn)

	if r.modelMissing(rn.logger, "order extraction") {
		return nil
	}
	ex := r.extractor(rn.logger)
	order, err := ex.ExtractOrder(ctx, shot)
	if err != nil {
		return fmt.Errorf("extract order: %w", err)
	}
	res.Order = order
	rn.logger.Info("order extracted",
		zap.String("customer", order.CustomerName),
		zap.Int("articles", len(order.OrderedArticles)))

	if !res.ErpReady {
		rn.logger.Warn("ERP is not running, skipping replay")
		return nil
	}

	details, err := r.findErpWindow(ctx, rn)
	if err != nil {
		return fmt.Errorf("discover ERP window: %w", err)
	}
	ids, err := ex.MapElements(ctx, details)
	if err != nil {
		return fmt.Errorf("map ERP elements: %w", err)
	}
	res.ElementIDs = ids

	rp := replay.New(rn.provider.Automation, r.replayPacing(), r.sleep, rn.logger)
	if err := rp.Replay(ctx, order, ids); err != nil {
		return fmt.Errorf("replay order: %w", err)
	}
	res.Replayed = true
	return nil
}

// launchErp makes sure the ERP executable exists, opens it and waits for
// it. Failures are logged and reported as false; the caller carries on
// without replay.
func (r *Runner) launchErp(ctx context.Context, rn *run) bool {
	path := r.cfg.Orders.ErpPath
	if path == "" {
		var err error
		path, err = r.fetcher.EnsureMockErp(ctx, r.cfg.Orders.ErpURL)
		if err != nil {
			rn.logger.Error("could not download the mock ERP", zap.Error(err))
			return false
		}
	}

	rn.logger.Info("launching ERP", zap.String("path", path))
	if _, err := rn.provider.System.OpenApplication(ctx, path); err != nil {
		rn.logger.Error("could not launch the ERP", zap.Error(err))
		return false
	}

	pacing := r.cfg.Pacing
	if !pacing.PollWindows {
		if err := r.sleep(ctx, pacing.ErpLaunch); err != nil {
			rn.logger.Warn("interrupted while waiting for the ERP", zap.Error(err))
			return false
		}
		return true
	}

	title := r.cfg.Orders.ErpTitle
	err := session.WaitFor(ctx, func(ctx context.Context) (bool, error) {
		o, err := rn.provider.System.GetOverview(ctx)
		if err != nil {
			return false, err
		}
		return o.FindWindowByTitle(title) != nil, nil
	}, pacing.PollInterval, pacing.PollTimeout)
	if err != nil {
		rn.logger.Error("ERP window did not appear", zap.String("title", title), zap.Error(err))
		return false
	}
	return true
}

// findErpWindow prefers the window holding focus when its title is the
// ERP title, and otherwise searches all windows by title.
func (r *Runner) findErpWindow(ctx context.Context, rn *run) (*model.WindowDetails, error) {
	title := r.cfg.Orders.ErpTitle
	overview, err := rn.provider.System.GetOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("get overview: %w", err)
	}

	if fw := overview.FocusedWindow(); fw != nil && fw.Title == title {
		if fw.Root != nil {
			return fw, nil
		}
		return rn.provider.System.GetWindowDetails(ctx, fw.ID)
	}

	w := overview.FindWindowByTitle(title)
	if w == nil {
		return nil, fmt.Errorf("%w: %q", ErrErpWindowNotFound, title)
	}
	rn.logger.Info("found ERP window", zap.String("id", w.ID), zap.String("title", w.Title))
	return rn.provider.System.GetWindowDetails(ctx, w.ID)
}
