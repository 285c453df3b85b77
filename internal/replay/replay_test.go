package replay

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-relay/internal/model"
	"github.com/mj1618/desktop-relay/internal/session"
)

type recorder struct {
	calls  []string
	failAt int // 1-based call index to fail, 0 = never
}

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	if r.failAt == len(r.calls) {
		return errors.New("element not found")
	}
	return nil
}

func (r *recorder) SetValue(_ context.Context, id, value string) error {
	return r.record(fmt.Sprintf("set %s=%s", id, value))
}

func (r *recorder) Invoke(_ context.Context, id string) error {
	return r.record("invoke " + id)
}

var ids = &model.ErpElementIDs{
	CustomerName: "c", ArticleName: "a", Quantity: "q",
	PricePerUnit: "p", AddItemButton: "add", SaveOrderButton: "save",
}

func smithOrder() *model.Order {
	return &model.Order{
		CustomerName: "Smith & Co. Ltd.",
		OrderedArticles: []model.OrderedArticle{
			{ArticleName: "High-Speed Router X200", Quantity: 5, PricePerUnit: 120},
			{ArticleName: "Cat6 Ethernet Cable (10m)", Quantity: 10, PricePerUnit: 15},
		},
	}
}

func noSleep(waits *[]time.Duration) session.SleepFunc {
	return func(_ context.Context, d time.Duration) error {
		if waits != nil {
			*waits = append(*waits, d)
		}
		return nil
	}
}

func TestReplay_CallOrder(t *testing.T) {
	rec := &recorder{}
	var waits []time.Duration
	r := New(rec, DefaultPacing, noSleep(&waits), nil)

	require.NoError(t, r.Replay(context.Background(), smithOrder(), ids))

	want := []string{
		"set c=Smith & Co. Ltd.",
		"set a=High-Speed Router X200",
		"set q=5",
		"set p=120.00",
		"invoke add",
		"set a=Cat6 Ethernet Cable (10m)",
		"set q=10",
		"set p=15.00",
		"invoke add",
		"invoke save",
	}
	assert.Equal(t, want, rec.calls)

	ms := time.Millisecond
	assert.Equal(t, []time.Duration{500 * ms, 200 * ms, 200 * ms, 200 * ms, time.Second, 200 * ms, 200 * ms, 200 * ms, time.Second, 500 * ms}, waits)
}

func TestReplay_CallCountIs4NPlus2(t *testing.T) {
	for n := 0; n <= 5; n++ {
		order := &model.Order{CustomerName: "x"}
		for i := 0; i < n; i++ {
			order.OrderedArticles = append(order.OrderedArticles, model.OrderedArticle{ArticleName: "a", Quantity: 1, PricePerUnit: 1})
		}
		rec := &recorder{}
		require.NoError(t, New(rec, DefaultPacing, noSleep(nil), nil).Replay(context.Background(), order, ids))
		assert.Len(t, rec.calls, 4*n+2, "n=%d", n)
	}
}

func TestReplay_AbortsOnFirstError(t *testing.T) {
	rec := &recorder{failAt: 3}
	err := New(rec, DefaultPacing, noSleep(nil), nil).Replay(context.Background(), smithOrder(), ids)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "article 0: set quantity")
	assert.Len(t, rec.calls, 3)
}

func TestReplay_SaveFailure(t *testing.T) {
	rec := &recorder{failAt: 10}
	err := New(rec, DefaultPacing, noSleep(nil), nil).Replay(context.Background(), smithOrder(), ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save order")
}

func TestReplay_CancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	sleep := func(ctx context.Context, d time.Duration) error {
		cancel()
		return session.Sleep(ctx, d)
	}
	err := New(rec, DefaultPacing, sleep, nil).Replay(ctx, smithOrder(), ids)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, rec.calls, 1)
}

func TestReplay_NilInputs(t *testing.T) {
	r := New(&recorder{}, DefaultPacing, noSleep(nil), nil)
	assert.Error(t, r.Replay(context.Background(), nil, ids))
	assert.Error(t, r.Replay(context.Background(), smithOrder(), nil))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "120.00", FormatPrice(120))
	assert.Equal(t, "15.50", FormatPrice(15.5))
	assert.Equal(t, "0.33", FormatPrice(1.0/3))
}
