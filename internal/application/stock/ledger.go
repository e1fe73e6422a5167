package stock

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/waveshop/waveshop/internal/domain/catalog"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.uber.org/zap"
)

// Ledger owns every mutation of a product's available-quantity and
// cumulative-sold counters. All writes go through the repository's
// atomic relative adjusts; the ledger adds instrumentation on top.
type Ledger struct {
	products catalog.ProductRepository
	adjusts  *prometheus.CounterVec // stock_adjustments_total{counter,outcome}
}

func NewLedger(products catalog.ProductRepository, adjusts *prometheus.CounterVec) *Ledger {
	return &Ledger{products: products, adjusts: adjusts}
}

// AdjustQuantity applies a relative change to available stock and
// returns the new value.
func (l *Ledger) AdjustQuantity(ctx context.Context, productID string, delta int) (int, error) {
	next, err := l.products.AdjustQuantity(ctx, productID, delta)
	l.record(ctx, "quantity", productID, delta, err)
	return next, err
}

// AdjustSold applies a relative change to the cumulative sold counter.
func (l *Ledger) AdjustSold(ctx context.Context, productID string, delta int) (int, error) {
	next, err := l.products.AdjustSold(ctx, productID, delta)
	l.record(ctx, "sold", productID, delta, err)
	return next, err
}

// AdjustQuantityBatch applies all deltas or none of them.
func (l *Ledger) AdjustQuantityBatch(ctx context.Context, adjs []catalog.Adjustment) error {
	err := l.products.AdjustQuantityBatch(ctx, adjs)
	l.recordBatch(ctx, "quantity", adjs, err)
	return err
}

// AdjustSoldBatch applies all deltas or none of them.
func (l *Ledger) AdjustSoldBatch(ctx context.Context, adjs []catalog.Adjustment) error {
	err := l.products.AdjustSoldBatch(ctx, adjs)
	l.recordBatch(ctx, "sold", adjs, err)
	return err
}

func (l *Ledger) record(ctx context.Context, counter, productID string, delta int, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		logging.FromContext(ctx).Warn("stock_adjust_failed",
			zap.String("counter", counter),
			zap.String("product_id", productID),
			zap.Int("delta", delta),
			zap.Error(err),
		)
	}
	if l.adjusts != nil {
		l.adjusts.WithLabelValues(counter, outcome).Inc()
	}
}

func (l *Ledger) recordBatch(ctx context.Context, counter string, adjs []catalog.Adjustment, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		logging.FromContext(ctx).Warn("stock_adjust_batch_failed",
			zap.String("counter", counter),
			zap.Int("batch_size", len(adjs)),
			zap.Error(err),
		)
	}
	if l.adjusts != nil {
		l.adjusts.WithLabelValues(counter, outcome).Add(float64(len(adjs)))
	}
}
