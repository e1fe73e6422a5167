package cart

import (
	"context"
	"errors"
	"time"

	"github.com/waveshop/waveshop/internal/application/stock"
	"github.com/waveshop/waveshop/internal/domain/catalog"
	"github.com/waveshop/waveshop/internal/domain/user"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.uber.org/zap"
)

// Service mutates a user's in-progress cart. Adding reserves a unit in
// the stock ledger before the cart is touched; removing and clearing
// release the reservation back.
type Service struct {
	users  user.Repository
	ledger *stock.Ledger
	now    func() time.Time
}

func NewService(users user.Repository, ledger *stock.Ledger) *Service {
	return &Service{users: users, ledger: ledger, now: time.Now}
}

// AddToCart reserves one unit, then merges the product into the cart:
// an existing entry gains quantity, otherwise a new entry is appended.
// Returns the updated cart.
func (s *Service) AddToCart(ctx context.Context, userID, productID string) ([]user.CartEntry, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "cart_service"))

	if _, err := s.ledger.AdjustQuantity(ctx, productID, -1); err != nil {
		return nil, err
	}

	cart, err := s.users.UpsertCartEntry(ctx, userID, productID, s.now().UTC())
	if err != nil {
		// The unit was already reserved; hand it back so the ledger does
		// not leak on a failed cart write.
		if _, releaseErr := s.ledger.AdjustQuantity(ctx, productID, +1); releaseErr != nil {
			logger.Error("reservation_release_failed",
				zap.String("product_id", productID),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	logger.Info("cart_item_added",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
	)
	return cart, nil
}

// RemoveFromCart pulls the product's entry and releases its full
// reserved quantity back to the ledger. Returns the remaining cart.
func (s *Service) RemoveFromCart(ctx context.Context, userID, productID string) ([]user.CartEntry, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "cart_service"))

	removed, cart, err := s.users.PullCartEntry(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.AdjustQuantity(ctx, productID, removed.Quantity); err != nil {
		// Entry is gone either way; a product deleted from the catalog in
		// the meantime has no counter left to restore.
		logger.Warn("reservation_release_failed",
			zap.String("product_id", productID),
			zap.Int("quantity", removed.Quantity),
			zap.Error(err),
		)
	}

	logger.Info("cart_item_removed",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", removed.Quantity),
	)
	return cart, nil
}

// ClearCart releases every entry's reservation, then empties the cart.
// Products deleted from the catalog since they were added are skipped.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "cart_service"))

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	for _, entry := range u.Cart {
		if _, err := s.ledger.AdjustQuantity(ctx, entry.ProductID, entry.Quantity); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			return err
		}
	}

	if err := s.users.ClearCart(ctx, userID); err != nil {
		return err
	}
	logger.Info("cart_cleared",
		zap.String("user_id", userID),
		zap.Int("entries", len(u.Cart)),
	)
	return nil
}
