package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/waveshop/waveshop/internal/domain/order"
)

// OrderRepository stores orders in a mutex-guarded map. Transition is a
// compare-and-set under the lock: of two concurrent admin actions on the
// same order, exactly one wins and the other sees ErrInvalidTransition.
type OrderRepository struct {
	mu      sync.RWMutex
	orders  map[string]*domain.Order
	seqs    map[string]uint64
	nextSeq uint64
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
		seqs:   make(map[string]uint64),
	}
}

func (r *OrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID] = o.Clone()
	r.nextSeq++
	r.seqs[o.ID] = r.nextSeq
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) List(ctx context.Context, f domain.ListFilter) ([]*domain.Order, error) {
	_ = ctx
	r.mu.RLock()
	out := make([]*domain.Order, 0, len(r.orders))
	seqOf := make(map[string]uint64, len(r.orders))
	for id, o := range r.orders {
		if !matchesFilter(o, f) {
			continue
		}
		out = append(out, o.Clone())
		seqOf[id] = r.seqs[id]
	}
	r.mu.RUnlock()

	// Creation time descending; insertion sequence breaks same-instant ties.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return seqOf[a.ID] > seqOf[b.ID]
	})
	return out, nil
}

func (r *OrderRepository) Transition(ctx context.Context, id string, to domain.Status) (*domain.Order, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !domain.CanTransition(o.Status, to) {
		return nil, domain.ErrInvalidTransition
	}
	o.Status = to
	o.Touch()
	return o.Clone(), nil
}

func (r *OrderRepository) Remove(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.orders, id)
	delete(r.seqs, id)
	return o.Clone(), nil
}

func matchesFilter(o *domain.Order, f domain.ListFilter) bool {
	switch f.Field {
	case "":
		return true
	case "status":
		return string(o.Status) == f.Value
	case "email":
		return o.Customer.Email == f.Value
	default:
		return false
	}
}
