package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waveshop/waveshop/internal/domain/catalog"
	"golang.org/x/sync/errgroup"
)

func newProduct(t *testing.T, id, name string, price int64, quantity int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(id, name, "", price, "brand-1", "wood-1")
	require.NoError(t, err)
	p.Quantity = quantity
	p.Publish = true
	return p
}

func TestProductRepositoryAdjustQuantity(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	require.NoError(t, repo.Insert(ctx, newProduct(t, "p1", "Strat", 1000, 3)))

	next, err := repo.AdjustQuantity(ctx, "p1", -1)
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	next, err = repo.AdjustQuantity(ctx, "p1", +2)
	require.NoError(t, err)
	assert.Equal(t, 4, next)

	_, err = repo.AdjustQuantity(ctx, "missing", -1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestProductRepositoryAdjustQuantityFloor(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	require.NoError(t, repo.Insert(ctx, newProduct(t, "p1", "Strat", 1000, 1)))

	_, err := repo.AdjustQuantity(ctx, "p1", -1)
	require.NoError(t, err)

	_, err = repo.AdjustQuantity(ctx, "p1", -1)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

	p, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity, "failed adjust must not move the counter")
}

func TestProductRepositoryAllowNegative(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(WithAllowNegative())
	require.NoError(t, repo.Insert(ctx, newProduct(t, "p1", "Strat", 1000, 0)))

	next, err := repo.AdjustQuantity(ctx, "p1", -1)
	require.NoError(t, err)
	assert.Equal(t, -1, next)
}

func TestProductRepositoryConcurrentAdjusts(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	const workers = 50
	require.NoError(t, repo.Insert(ctx, newProduct(t, "p1", "Strat", 1000, workers)))

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := repo.AdjustQuantity(ctx, "p1", -1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	p, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity, "no decrement may be lost")
}

func TestProductRepositoryBatchAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	require.NoError(t, repo.Insert(ctx, newProduct(t, "p1", "Strat", 1000, 5)))
	require.NoError(t, repo.Insert(ctx, newProduct(t, "p2", "Tele", 1200, 1)))

	err := repo.AdjustQuantityBatch(ctx, []catalog.Adjustment{
		{ProductID: "p1", Delta: -2},
		{ProductID: "p2", Delta: -2}, // would go negative
	})
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

	p1, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p1.Quantity, "rejected batch must leave every counter untouched")

	require.NoError(t, repo.AdjustQuantityBatch(ctx, []catalog.Adjustment{
		{ProductID: "p1", Delta: -2},
		{ProductID: "p2", Delta: -1},
	}))
	p1, _ = repo.Get(ctx, "p1")
	p2, _ := repo.Get(ctx, "p2")
	assert.Equal(t, 3, p1.Quantity)
	assert.Equal(t, 0, p2.Quantity)
}

func TestProductRepositoryBatchMissingProduct(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	require.NoError(t, repo.Insert(ctx, newProduct(t, "p1", "Strat", 1000, 5)))

	err := repo.AdjustSoldBatch(ctx, []catalog.Adjustment{
		{ProductID: "p1", Delta: 1},
		{ProductID: "ghost", Delta: 1},
	})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	p1, _ := repo.Get(ctx, "p1")
	assert.Equal(t, 0, p1.Sold)
}

func TestProductRepositoryShopFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	fender := newProduct(t, "p1", "Strat", 1000, 5)
	fender.BrandID = "fender"
	fender.Frets = 21
	require.NoError(t, repo.Insert(ctx, fender))

	gibson := newProduct(t, "p2", "Les Paul", 2400, 5)
	gibson.BrandID = "gibson"
	gibson.Frets = 22
	require.NoError(t, repo.Insert(ctx, gibson))

	draft := newProduct(t, "p3", "Prototype", 100, 1)
	draft.Publish = false
	require.NoError(t, repo.Insert(ctx, draft))

	got, err := repo.Shop(ctx, catalog.ShopQuery{BrandIDs: []string{"gibson"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)

	got, err = repo.Shop(ctx, catalog.ShopQuery{PriceMin: 500, PriceMax: 1500})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	// Unpublished products never reach the storefront.
	got, err = repo.Shop(ctx, catalog.ShopQuery{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductRepositorySearch(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	strat := newProduct(t, "p1", "Stratocaster", 1000, 5)
	strat.BrandID = "fender"
	require.NoError(t, repo.Insert(ctx, strat))

	lp := newProduct(t, "p2", "Les Paul", 2400, 5)
	lp.BrandID = "gibson"
	require.NoError(t, repo.Insert(ctx, lp))

	got, err := repo.Search(ctx, "strat", nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	// A brand hit matches even when the term is absent from the name.
	got, err = repo.Search(ctx, "gibson", []string{"gibson"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestProductRepositoryListPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	for _, id := range []string{"a", "b", "c", "d"} {
		p := newProduct(t, id, id, 100, 1)
		require.NoError(t, repo.Insert(ctx, p))
	}

	got, err := repo.List(ctx, catalog.ListQuery{SortBy: "name", Order: "asc", Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "c", got[1].Name)

	got, err = repo.List(ctx, catalog.ListQuery{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}
