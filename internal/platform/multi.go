package platform

import (
	"context"
	"errors"
	"fmt"
)

// Backends starts several backends as one. Start runs in order and rolls
// back what it started on failure; Stop runs in reverse and stops every
// backend even when some fail.
type Backends []Backend

func (bs Backends) Start(ctx context.Context) error {
	for i, b := range bs {
		if err := b.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = bs[j].Stop(ctx)
			}
			return fmt.Errorf("start backend %d: %w", i, err)
		}
	}
	return nil
}

func (bs Backends) Stop(ctx context.Context) error {
	var errs []error
	for i := len(bs) - 1; i >= 0; i-- {
		if err := bs[i].Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
