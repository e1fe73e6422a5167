package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waveshop/waveshop/internal/domain/catalog"
	"github.com/waveshop/waveshop/internal/domain/order"
	"github.com/waveshop/waveshop/internal/domain/user"
	"github.com/waveshop/waveshop/internal/infrastructure/memory"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return string(rune('a' + s.n - 1))
}

type fixture struct {
	users    *memory.UserRepository
	products *memory.ProductRepository
	orders   *memory.OrderRepository
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepository()
	u, err := user.New("u1", "buyer@example.com", "hash", "Jimi", "Hendrix")
	require.NoError(t, err)
	require.NoError(t, users.Insert(ctx, u))

	products := memory.NewProductRepository()
	p, err := catalog.NewProduct("p1", "Stratocaster", "", 1000, "fender", "alder")
	require.NoError(t, err)
	p.Quantity = 5
	require.NoError(t, products.Insert(ctx, p))

	brands := memory.NewBrandRepository()
	require.NoError(t, brands.Insert(ctx, &catalog.Brand{ID: "fender", Name: "Fender"}))

	orders := memory.NewOrderRepository()
	return &fixture{
		users:    users,
		products: products,
		orders:   orders,
		svc:      NewService(users, products, brands, orders, &seqIDs{}, nil),
	}
}

func (f *fixture) addToCart(t *testing.T, productID string, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		_, err := f.users.UpsertCartEntry(context.Background(), "u1", productID, time.Now().UTC())
		require.NoError(t, err)
	}
}

func TestFreezeCartToHistorySnapshots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addToCart(t, "p1", 2)

	u, err := f.svc.FreezeCartToHistory(ctx, "u1", 2000)
	require.NoError(t, err)

	assert.Empty(t, u.Cart, "freezing empties the cart")
	require.Len(t, u.History, 1)
	entry := u.History[0]
	assert.Equal(t, int64(2000), entry.TotalPrice)
	require.Len(t, entry.Products, 1)
	snap := entry.Products[0]
	assert.Equal(t, "Stratocaster", snap.Name)
	assert.Equal(t, int64(1000), snap.Price)
	assert.Equal(t, "Fender", snap.GuitarBrand)
	assert.Equal(t, 2, snap.Quantity)
}

func TestFreezeCartSnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addToCart(t, "p1", 1)

	_, err := f.svc.FreezeCartToHistory(ctx, "u1", 1000)
	require.NoError(t, err)

	// Reprice the product after the purchase; the snapshot must not move.
	p, err := f.products.Get(ctx, "p1")
	require.NoError(t, err)
	p.Price = 9999
	p.Name = "Renamed"
	require.NoError(t, f.products.Update(ctx, p))

	u, err := f.users.FindByID(ctx, "u1")
	require.NoError(t, err)
	snap := u.History[0].Products[0]
	assert.Equal(t, int64(1000), snap.Price)
	assert.Equal(t, "Stratocaster", snap.Name)
}

func TestFreezeCartEmptyCart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.FreezeCartToHistory(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFreezeCartMissingProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addToCart(t, "p1", 1)
	require.NoError(t, f.products.Remove(ctx, "p1"))

	_, err := f.svc.FreezeCartToHistory(ctx, "u1", 1000)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	u, err := f.users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, u.History, "a failed freeze writes nothing")
	assert.Len(t, u.Cart, 1, "and leaves the cart intact")
}

func TestMaterializeOrderCopiesLastHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addToCart(t, "p1", 2)

	frozen, err := f.svc.FreezeCartToHistory(ctx, "u1", 2000)
	require.NoError(t, err)

	o, err := f.svc.MaterializeOrder(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, order.StatusProcess, o.Status)
	assert.Equal(t, "Jimi", o.Customer.Name)
	assert.Equal(t, "buyer@example.com", o.Customer.Email)
	assert.Equal(t, int64(2000), o.Details.TotalPrice)
	assert.Equal(t, frozen.History[0].Date, o.Details.Date, "the history date is copied, not re-stamped")
	require.Len(t, o.Details.Items, 1)
	assert.Equal(t, 2, o.Details.Items[0].Quantity)

	stored, err := f.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, stored.ID)
}

func TestMaterializeOrderNoHistory(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.MaterializeOrder(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestMaterializeOrderUsesNewestEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.addToCart(t, "p1", 1)
	_, err := f.svc.FreezeCartToHistory(ctx, "u1", 1000)
	require.NoError(t, err)

	f.addToCart(t, "p1", 3)
	_, err = f.svc.FreezeCartToHistory(ctx, "u1", 3000)
	require.NoError(t, err)

	o, err := f.svc.MaterializeOrder(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), o.Details.TotalPrice)
	assert.Equal(t, 3, o.Details.Items[0].Quantity)
}
