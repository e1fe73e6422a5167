package user

import (
	"context"
	"time"
)

// Repository persists users. Implementations must execute every cart
// mutation for a single user atomically, so overlapping requests from the
// same user (double-click, duplicate tabs) cannot lose an update.
type Repository interface {
	Insert(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error

	// UpsertCartEntry merges the product into the user's cart: an existing
	// entry gains quantity 1, otherwise a fresh entry is appended with the
	// given timestamp. Returns the resulting cart.
	UpsertCartEntry(ctx context.Context, userID, productID string, at time.Time) ([]CartEntry, error)
	// PullCartEntry removes the product's entry and returns it together
	// with the remaining cart. ErrEntryNotFound when the product is not in
	// the cart.
	PullCartEntry(ctx context.Context, userID, productID string) (CartEntry, []CartEntry, error)
	// ClearCart empties the cart without touching anything else.
	ClearCart(ctx context.Context, userID string) error
	// AppendHistory appends the entry and empties the cart in one step,
	// returning the updated user.
	AppendHistory(ctx context.Context, userID string, entry HistoryEntry) (*User, error)

	SetSessionToken(ctx context.Context, userID, token string) error
	SetResetToken(ctx context.Context, userID, token string, exp time.Time) error
}
