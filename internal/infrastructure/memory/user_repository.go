package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/waveshop/waveshop/internal/domain/user"
)

// UserRepository stores users in a mutex-guarded map with an email
// index. Each cart operation runs fully under the lock, which serializes
// overlapping mutations of one user's cart.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]*user.User
	byEmail map[string]string // lowercased email -> user id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]*user.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Insert(ctx context.Context, u *user.User) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(u.Email)
	if _, taken := r.byEmail[key]; taken {
		return user.ErrEmailTaken
	}
	r.users[u.ID] = u.Clone()
	r.byEmail[key] = u.ID
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	return r.findLocked(id)
}

// Update writes the caller's identity and credential fields. Cart and
// history have their own field-scoped operations and may have moved
// since the caller's read, so the stored versions are kept: a stale
// whole-aggregate write must never drop a cart entry whose stock
// reservation already happened.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	key := emailKey(u.Email)
	if owner, taken := r.byEmail[key]; taken && owner != u.ID {
		return user.ErrEmailTaken
	}
	if oldKey := emailKey(stored.Email); oldKey != key {
		delete(r.byEmail, oldKey)
		r.byEmail[key] = u.ID
	}

	current := stored.Clone()
	next := u.Clone()
	next.Cart = current.Cart
	next.History = current.History
	r.users[u.ID] = next
	return nil
}

func (r *UserRepository) UpsertCartEntry(ctx context.Context, userID, productID string, at time.Time) ([]user.CartEntry, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, user.ErrNotFound
	}

	merged := false
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		u.Cart = append(u.Cart, user.CartEntry{ProductID: productID, Quantity: 1, AddedAt: at})
	}
	u.Touch()
	return append([]user.CartEntry(nil), u.Cart...), nil
}

func (r *UserRepository) PullCartEntry(ctx context.Context, userID, productID string) (user.CartEntry, []user.CartEntry, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return user.CartEntry{}, nil, user.ErrNotFound
	}

	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			removed := u.Cart[i]
			u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
			u.Touch()
			return removed, append([]user.CartEntry(nil), u.Cart...), nil
		}
	}
	return user.CartEntry{}, nil, user.ErrEntryNotFound
}

func (r *UserRepository) ClearCart(ctx context.Context, userID string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.Cart = nil
	u.Touch()
	return nil
}

func (r *UserRepository) AppendHistory(ctx context.Context, userID string, entry user.HistoryEntry) (*user.User, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	entry.Products = append([]user.HistoryProduct(nil), entry.Products...)
	u.History = append(u.History, entry)
	u.Cart = nil
	u.Touch()
	return u.Clone(), nil
}

func (r *UserRepository) SetSessionToken(ctx context.Context, userID, token string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.SessionToken = token
	u.Touch()
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID, token string, exp time.Time) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.ResetToken = token
	u.ResetTokenExp = exp
	u.Touch()
	return nil
}

func (r *UserRepository) findLocked(id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u.Clone(), nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
