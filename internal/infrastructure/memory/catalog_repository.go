package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/waveshop/waveshop/internal/domain/catalog"
)

type BrandRepository struct {
	mu     sync.RWMutex
	brands map[string]*catalog.Brand
}

func NewBrandRepository() *BrandRepository {
	return &BrandRepository{brands: make(map[string]*catalog.Brand)}
}

func (r *BrandRepository) Insert(ctx context.Context, b *catalog.Brand) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *b
	r.brands[b.ID] = &clone
	return nil
}

func (r *BrandRepository) Get(ctx context.Context, id string) (*catalog.Brand, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.brands[id]
	if !ok {
		return nil, catalog.ErrBrandNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *BrandRepository) List(ctx context.Context) ([]*catalog.Brand, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*catalog.Brand, 0, len(r.brands))
	for _, b := range r.brands {
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *BrandRepository) FindByName(ctx context.Context, term string) ([]*catalog.Brand, error) {
	_ = ctx
	needle := strings.ToLower(term)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*catalog.Brand
	for _, b := range r.brands {
		if strings.Contains(strings.ToLower(b.Name), needle) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *BrandRepository) Remove(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brands[id]; !ok {
		return catalog.ErrBrandNotFound
	}
	delete(r.brands, id)
	return nil
}

type WoodRepository struct {
	mu    sync.RWMutex
	woods map[string]*catalog.Wood
}

func NewWoodRepository() *WoodRepository {
	return &WoodRepository{woods: make(map[string]*catalog.Wood)}
}

func (r *WoodRepository) Insert(ctx context.Context, w *catalog.Wood) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *w
	r.woods[w.ID] = &clone
	return nil
}

func (r *WoodRepository) List(ctx context.Context) ([]*catalog.Wood, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*catalog.Wood, 0, len(r.woods))
	for _, w := range r.woods {
		clone := *w
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *WoodRepository) Remove(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.woods[id]; !ok {
		return catalog.ErrWoodNotFound
	}
	delete(r.woods, id)
	return nil
}
