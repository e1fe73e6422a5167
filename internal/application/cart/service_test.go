package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waveshop/waveshop/internal/application/stock"
	"github.com/waveshop/waveshop/internal/domain/catalog"
	"github.com/waveshop/waveshop/internal/domain/user"
	"github.com/waveshop/waveshop/internal/infrastructure/memory"
	"golang.org/x/sync/errgroup"
)

type fixture struct {
	users    *memory.UserRepository
	products *memory.ProductRepository
	svc      *Service
}

func newFixture(t *testing.T, quantity int) *fixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepository()
	u, err := user.New("u1", "buyer@example.com", "hash", "Jimi", "Hendrix")
	require.NoError(t, err)
	require.NoError(t, users.Insert(ctx, u))

	products := memory.NewProductRepository()
	p, err := catalog.NewProduct("p1", "Stratocaster", "", 1000, "fender", "alder")
	require.NoError(t, err)
	p.Quantity = quantity
	require.NoError(t, products.Insert(ctx, p))

	return &fixture{
		users:    users,
		products: products,
		svc:      NewService(users, stock.NewLedger(products, nil)),
	}
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.Get(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func TestAddToCartReservesAndMerges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3)

	cart, err := f.svc.AddToCart(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
	assert.Equal(t, 2, f.quantity(t, "p1"))

	cart, err = f.svc.AddToCart(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Len(t, cart, 1, "same product merges into one entry")
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, 1, f.quantity(t, "p1"))
}

func TestAddToCartInsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)

	_, err := f.svc.AddToCart(ctx, "u1", "p1")
	require.NoError(t, err)

	_, err = f.svc.AddToCart(ctx, "u1", "p1")
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

	u, err := f.users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, u.Cart, 1)
	assert.Equal(t, 1, u.Cart[0].Quantity, "failed add must not grow the cart")
}

func TestAddToCartReleasesOnCartFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3)

	_, err := f.svc.AddToCart(ctx, "ghost", "p1")
	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.Equal(t, 3, f.quantity(t, "p1"), "reservation is handed back when the cart write fails")
}

func TestAddToCartConcurrentConservation(t *testing.T) {
	ctx := context.Background()
	const stockUnits = 20
	f := newFixture(t, stockUnits)

	var g errgroup.Group
	for i := 0; i < stockUnits; i++ {
		g.Go(func() error {
			_, err := f.svc.AddToCart(ctx, "u1", "p1")
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 0, f.quantity(t, "p1"))
	u, err := f.users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, u.Cart, 1)
	assert.Equal(t, stockUnits, u.Cart[0].Quantity, "every reserved unit is in the cart")
}

func TestRemoveFromCartReleasesFullEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)

	_, err := f.svc.AddToCart(ctx, "u1", "p1")
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Equal(t, 3, f.quantity(t, "p1"))

	cart, err := f.svc.RemoveFromCart(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, cart)
	assert.Equal(t, 5, f.quantity(t, "p1"), "both reserved units return to stock")

	// A repeated remove (double click) finds no entry and releases nothing.
	_, err = f.svc.RemoveFromCart(ctx, "u1", "p1")
	assert.ErrorIs(t, err, user.ErrEntryNotFound)
	assert.Equal(t, 5, f.quantity(t, "p1"))
}

func TestClearCartReleasesReservations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)

	p2, err := catalog.NewProduct("p2", "Telecaster", "", 1200, "fender", "ash")
	require.NoError(t, err)
	p2.Quantity = 2
	require.NoError(t, f.products.Insert(ctx, p2))

	_, err = f.svc.AddToCart(ctx, "u1", "p1")
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, "u1", "p2")
	require.NoError(t, err)

	require.NoError(t, f.svc.ClearCart(ctx, "u1"))
	assert.Equal(t, 5, f.quantity(t, "p1"))
	assert.Equal(t, 2, f.quantity(t, "p2"))

	u, err := f.users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, u.Cart)
}

func TestClearCartSkipsDeletedProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 5)

	_, err := f.svc.AddToCart(ctx, "u1", "p1")
	require.NoError(t, err)
	require.NoError(t, f.products.Remove(ctx, "p1"))

	require.NoError(t, f.svc.ClearCart(ctx, "u1"))
	u, err := f.users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, u.Cart)
}
