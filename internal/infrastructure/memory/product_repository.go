package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/waveshop/waveshop/internal/domain/catalog"
)

// ProductRepository keeps products in a mutex-guarded map. Stock
// adjustments are relative updates applied under the store lock, never
// read-modify-write round trips through the caller, so concurrent
// adjusters cannot lose an update.
type ProductRepository struct {
	mu            sync.RWMutex
	products      map[string]*catalog.Product
	allowNegative bool
}

type ProductOption func(*ProductRepository)

// WithAllowNegative disables the non-negative floor on quantity and
// sold, reproducing the legacy unguarded counter for compatibility tests.
func WithAllowNegative() ProductOption {
	return func(r *ProductRepository) { r.allowNegative = true }
}

func NewProductRepository(opts ...ProductOption) *ProductRepository {
	r := &ProductRepository{products: make(map[string]*catalog.Product)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ProductRepository) Insert(ctx context.Context, p *catalog.Product) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = p.Clone()
	return nil
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*catalog.Product, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *ProductRepository) GetMany(ctx context.Context, ids []string) ([]*catalog.Product, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	r.products[p.ID] = p.Clone()
	return nil
}

func (r *ProductRepository) Remove(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) List(ctx context.Context, q catalog.ListQuery) ([]*catalog.Product, error) {
	_ = ctx
	r.mu.RLock()
	all := make([]*catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p.Clone())
	}
	r.mu.RUnlock()

	sortProducts(all, q.SortBy, q.Order)
	return page(all, q.Skip, q.Limit), nil
}

func (r *ProductRepository) Shop(ctx context.Context, q catalog.ShopQuery) ([]*catalog.Product, error) {
	_ = ctx
	r.mu.RLock()
	matched := make([]*catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.Publish {
			continue
		}
		if len(q.BrandIDs) > 0 && !contains(q.BrandIDs, p.BrandID) {
			continue
		}
		if len(q.WoodIDs) > 0 && !contains(q.WoodIDs, p.WoodID) {
			continue
		}
		if len(q.Frets) > 0 && !containsInt(q.Frets, p.Frets) {
			continue
		}
		if p.Price < q.PriceMin {
			continue
		}
		if q.PriceMax > 0 && p.Price > q.PriceMax {
			continue
		}
		matched = append(matched, p.Clone())
	}
	r.mu.RUnlock()

	sortProducts(matched, q.SortBy, q.Order)
	return page(matched, q.Skip, q.Limit), nil
}

func (r *ProductRepository) Search(ctx context.Context, term string, brandIDs []string, skip, limit int) ([]*catalog.Product, error) {
	_ = ctx
	needle := strings.ToLower(term)

	r.mu.RLock()
	matched := make([]*catalog.Product, 0)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), needle) || contains(brandIDs, p.BrandID) {
			matched = append(matched, p.Clone())
		}
	}
	r.mu.RUnlock()

	sortProducts(matched, "name", "asc")
	return page(matched, skip, limit), nil
}

func (r *ProductRepository) AdjustQuantity(ctx context.Context, id string, delta int) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return 0, catalog.ErrNotFound
	}
	next := p.Quantity + delta
	if next < 0 && !r.allowNegative {
		return 0, catalog.ErrInsufficientStock
	}
	p.Quantity = next
	p.Touch()
	return next, nil
}

func (r *ProductRepository) AdjustSold(ctx context.Context, id string, delta int) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return 0, catalog.ErrNotFound
	}
	next := p.Sold + delta
	if next < 0 && !r.allowNegative {
		return 0, catalog.ErrInsufficientStock
	}
	p.Sold = next
	p.Touch()
	return next, nil
}

// AdjustQuantityBatch validates every delta before applying any, all
// under one hold of the lock: either the whole batch lands or none of it.
func (r *ProductRepository) AdjustQuantityBatch(ctx context.Context, adjs []catalog.Adjustment) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applyBatch(adjs, func(p *catalog.Product) *int { return &p.Quantity })
}

func (r *ProductRepository) AdjustSoldBatch(ctx context.Context, adjs []catalog.Adjustment) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applyBatch(adjs, func(p *catalog.Product) *int { return &p.Sold })
}

func (r *ProductRepository) applyBatch(adjs []catalog.Adjustment, counter func(*catalog.Product) *int) error {
	for _, a := range adjs {
		p, ok := r.products[a.ProductID]
		if !ok {
			return catalog.ErrNotFound
		}
		if *counter(p)+a.Delta < 0 && !r.allowNegative {
			return catalog.ErrInsufficientStock
		}
	}
	for _, a := range adjs {
		p := r.products[a.ProductID]
		*counter(p) += a.Delta
		p.Touch()
	}
	return nil
}

func sortProducts(ps []*catalog.Product, sortBy, order string) {
	desc := order == "desc"
	less := func(a, b *catalog.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch sortBy {
	case "name":
		less = func(a, b *catalog.Product) bool { return a.Name < b.Name }
	case "price":
		less = func(a, b *catalog.Product) bool { return a.Price < b.Price }
	case "sold":
		less = func(a, b *catalog.Product) bool { return a.Sold < b.Sold }
	}
	sort.SliceStable(ps, func(i, j int) bool {
		if desc {
			return less(ps[j], ps[i])
		}
		return less(ps[i], ps[j])
	})
}

func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
