// Package replay types an order into the ERP form through UI automation.
package replay

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/platform"
	"github.com/mj1618/desktop-relay/internal/session"
)

// Pacing holds the fixed wait after each kind of call.
type Pacing struct {
	Customer time.Duration
	Field    time.Duration
	Add      time.Duration
	Save     time.Duration
}

// DefaultPacing leaves the form time to react between calls.
var DefaultPacing = Pacing{
	Customer: 500 * time.Millisecond,
	Field:    200 * time.Millisecond,
	Add:      time.Second,
	Save:     500 * time.Millisecond,
}

// Replayer issues set-value and invoke calls for an order.
type Replayer struct {
	auto   platform.Automation
	pacing Pacing
	sleep  session.SleepFunc
	logger *zap.Logger
}

// New returns a Replayer. A nil sleep uses session.Sleep.
func New(auto platform.Automation, pacing Pacing, sleep session.SleepFunc, logger *zap.Logger) *Replayer {
	if sleep == nil {
		sleep = session.Sleep
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replayer{auto: auto, pacing: pacing, sleep: sleep, logger: logger}
}

// Replay enters order into the form identified by ids: the customer name,
// then article name, quantity, price and add-item per article, then
// save-order. The first failing call stops the replay; whatever was
// already entered stays in the form.
func (r *Replayer) Replay(ctx context.Context, order *model.Order, ids *model.ErpElementIDs) error {
	if order == nil || ids == nil {
		return fmt.Errorf("replay: order and element ids are required")
	}

	r.logger.Info("setting customer name", zap.String("customer", order.CustomerName))
	if err := r.set(ctx, ids.CustomerName, order.CustomerName, r.pacing.Customer); err != nil {
		return fmt.Errorf("set customer name: %w", err)
	}

	for i, a := range order.OrderedArticles {
		r.logger.Info("adding article",
			zap.Int("index", i),
			zap.String("article", a.ArticleName),
			zap.Int("quantity", a.Quantity),
			zap.Float64("price_per_unit", a.PricePerUnit))

		if err := r.set(ctx, ids.ArticleName, a.ArticleName, r.pacing.Field); err != nil {
			return fmt.Errorf("article %d: set name: %w", i, err)
		}
		if err := r.set(ctx, ids.Quantity, strconv.Itoa(a.Quantity), r.pacing.Field); err != nil {
			return fmt.Errorf("article %d: set quantity: %w", i, err)
		}
		if err := r.set(ctx, ids.PricePerUnit, FormatPrice(a.PricePerUnit), r.pacing.Field); err != nil {
			return fmt.Errorf("article %d: set price: %w", i, err)
		}
		if err := r.invoke(ctx, ids.AddItemButton, r.pacing.Add); err != nil {
			return fmt.Errorf("article %d: add item: %w", i, err)
		}
	}

	r.logger.Info("saving order")
	if err := r.invoke(ctx, ids.SaveOrderButton, r.pacing.Save); err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// FormatPrice renders a unit price with two decimals.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func (r *Replayer) set(ctx context.Context, id, value string, wait time.Duration) error {
	if err := r.auto.SetValue(ctx, id, value); err != nil {
		return err
	}
	return r.sleep(ctx, wait)
}

func (r *Replayer) invoke(ctx context.Context, id string, wait time.Duration) error {
	if err := r.auto.Invoke(ctx, id); err != nil {
		return err
	}
	return r.sleep(ctx, wait)
}
