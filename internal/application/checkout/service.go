package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waveshop/waveshop/internal/domain/catalog"
	"github.com/waveshop/waveshop/internal/domain/order"
	domoutbox "github.com/waveshop/waveshop/internal/domain/outbox"
	"github.com/waveshop/waveshop/internal/domain/user"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart = errors.New("checkout: cart is empty")
	ErrNoHistory = errors.New("checkout: no history entry to materialize")
)

type IDGenerator interface {
	NewID() string
}

// Service freezes carts into immutable history snapshots and later
// materializes the newest snapshot into an order. Neither step touches
// the stock ledger: reservation already happened at cart-add time.
type Service struct {
	users    user.Repository
	products catalog.ProductRepository
	brands   catalog.BrandRepository
	orders   order.Repository
	ids      IDGenerator
	bus      domoutbox.Publisher
	now      func() time.Time
}

func NewService(
	users user.Repository,
	products catalog.ProductRepository,
	brands catalog.BrandRepository,
	orders order.Repository,
	ids IDGenerator,
	bus domoutbox.Publisher,
) *Service {
	return &Service{
		users:    users,
		products: products,
		brands:   brands,
		orders:   orders,
		ids:      ids,
		bus:      bus,
		now:      time.Now,
	}
}

// FreezeCartToHistory snapshots each cart line with the product's
// current name, price and brand, appends the history entry, and empties
// the cart in the same repository step (the ledger is deliberately
// bypassed). This is the only place price and brand are captured for
// posterity; later catalog edits never reach the snapshot.
func (s *Service) FreezeCartToHistory(ctx context.Context, userID string, totalPrice int64) (*user.User, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "checkout_service"))

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(u.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	snapshots := make([]user.HistoryProduct, 0, len(u.Cart))
	for _, entry := range u.Cart {
		p, err := s.products.Get(ctx, entry.ProductID)
		if err != nil {
			return nil, fmt.Errorf("checkout: snapshot product %s: %w", entry.ProductID, err)
		}
		brandName := ""
		if b, err := s.brands.Get(ctx, p.BrandID); err == nil {
			brandName = b.Name
		}
		snapshots = append(snapshots, user.HistoryProduct{
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       p.Price,
			GuitarBrand: brandName,
			Quantity:    entry.Quantity,
		})
	}

	entry := user.HistoryEntry{
		Products:   snapshots,
		TotalPrice: totalPrice,
		Date:       s.now().UTC(),
	}
	updated, err := s.users.AppendHistory(ctx, userID, entry)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, user.NewPurchasedEvent(updated, totalPrice))
	logger.Info("cart_frozen_to_history",
		zap.String("user_id", userID),
		zap.Int("items", len(snapshots)),
		zap.Int64("total_price", totalPrice),
	)
	return updated, nil
}

// MaterializeOrder turns the most recent history entry into an order in
// the process state, copying identity, items, total price and date
// verbatim.
func (s *Service) MaterializeOrder(ctx context.Context, userID string) (*order.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "checkout_service"))

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	last, ok := u.LastHistory()
	if !ok {
		return nil, ErrNoHistory
	}

	items := make([]order.Item, len(last.Products))
	for i, p := range last.Products {
		items[i] = order.Item{
			ProductID:   p.ProductID,
			Name:        p.Name,
			Price:       p.Price,
			GuitarBrand: p.GuitarBrand,
			Quantity:    p.Quantity,
		}
	}

	o, err := order.New(
		s.ids.NewID(),
		order.Customer{Name: u.Name, Lastname: u.Lastname, Email: u.Email},
		order.Details{Items: items, TotalPrice: last.TotalPrice, Date: last.Date},
	)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("order_materialized",
		zap.String("user_id", userID),
		zap.String("order_id", o.ID),
	)
	return o, nil
}

func (s *Service) publish(ctx context.Context, e domoutbox.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			zap.String("event", e.EventName()),
			zap.Error(err),
		)
	}
}
