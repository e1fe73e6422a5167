package orders

import (
	"context"

	"github.com/waveshop/waveshop/internal/application/stock"
	"github.com/waveshop/waveshop/internal/domain/catalog"
	"github.com/waveshop/waveshop/internal/domain/order"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.uber.org/zap"
)

// Service drives the order state machine. Every transition applies a
// compensating stock adjustment per line item, keyed by the new status;
// the status compare-and-set happens first, so the loser of a
// concurrent race applies nothing.
type Service struct {
	orders order.Repository
	ledger *stock.Ledger
}

func NewService(orders order.Repository, ledger *stock.Ledger) *Service {
	return &Service{orders: orders, ledger: ledger}
}

func (s *Service) List(ctx context.Context, findBy, value string) ([]*order.Order, error) {
	return s.orders.List(ctx, order.ListFilter{Field: findBy, Value: value})
}

func (s *Service) Get(ctx context.Context, orderID string) (*order.Order, error) {
	return s.orders.Get(ctx, orderID)
}

// ChangeStatus transitions the order and applies the compensating ledger
// effect as one all-or-nothing batch: done credits the sold counter,
// canceled returns the reserved units. Returns all orders, newest first.
//
// If the process crashes between the status write and the batch, stock
// stays stale; the orders and products stores are not spanned by one
// transaction and that gap is accepted.
func (s *Service) ChangeStatus(ctx context.Context, orderID string, to order.Status) ([]*order.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "orders_service"))

	updated, err := s.orders.Transition(ctx, orderID, to)
	if err != nil {
		return nil, err
	}

	switch to {
	case order.StatusDone:
		if err := s.ledger.AdjustSoldBatch(ctx, creditAdjustments(updated)); err != nil {
			return nil, err
		}
	case order.StatusCanceled:
		if err := s.ledger.AdjustQuantityBatch(ctx, creditAdjustments(updated)); err != nil {
			return nil, err
		}
	}

	logger.Info("order_status_changed",
		zap.String("order_id", orderID),
		zap.String("status", string(to)),
	)
	return s.orders.List(ctx, order.ListFilter{})
}

// Delete removes the order. An order still in process holds live
// reservations, so its units are returned to available stock before the
// result is reported. Returns the remaining orders, newest first.
func (s *Service) Delete(ctx context.Context, orderID string) ([]*order.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "orders_service"))

	removed, err := s.orders.Remove(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if removed.Status == order.StatusProcess {
		if err := s.ledger.AdjustQuantityBatch(ctx, creditAdjustments(removed)); err != nil {
			logger.Error("delete_restock_failed",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	logger.Info("order_deleted",
		zap.String("order_id", orderID),
		zap.String("status", string(removed.Status)),
	)
	return s.orders.List(ctx, order.ListFilter{})
}

func creditAdjustments(o *order.Order) []catalog.Adjustment {
	adjs := make([]catalog.Adjustment, len(o.Details.Items))
	for i, item := range o.Details.Items {
		adjs[i] = catalog.Adjustment{ProductID: item.ProductID, Delta: item.Quantity}
	}
	return adjs
}
