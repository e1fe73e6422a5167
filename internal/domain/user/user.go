package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user: not found")
	ErrEmailTaken    = errors.New("user: email already taken")
	ErrEntryNotFound = errors.New("user: cart entry not found")
	ErrInvalidEmail  = errors.New("user: email is required")
	ErrInvalidName   = errors.New("user: name and lastname are required")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// CartEntry is one line of an in-progress cart. A cart holds at most one
// entry per product; adding the same product again increments Quantity.
type CartEntry struct {
	ProductID string
	Quantity  int
	AddedAt   time.Time
}

// HistoryProduct is the write-once product snapshot captured at checkout.
// Later catalog edits (price, brand) never reach back into it.
type HistoryProduct struct {
	ProductID   string
	Name        string
	Price       int64
	GuitarBrand string
	Quantity    int
}

// HistoryEntry is an immutable record of a completed cart.
type HistoryEntry struct {
	Products   []HistoryProduct
	TotalPrice int64
	Date       time.Time
}

type User struct {
	ID            string
	Email         string
	PasswordHash  string
	Name          string
	Lastname      string
	Role          Role
	Cart          []CartEntry
	History       []HistoryEntry
	SessionToken  string
	ResetToken    string
	ResetTokenExp time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func New(id, email, passwordHash, name, lastname string) (*User, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if name == "" || lastname == "" {
		return nil, ErrInvalidName
	}

	now := time.Now().UTC()
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Lastname:     lastname,
		Role:         RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// LastHistory returns the most recently appended history entry.
func (u *User) LastHistory() (HistoryEntry, bool) {
	if len(u.History) == 0 {
		return HistoryEntry{}, false
	}
	return u.History[len(u.History)-1], true
}

// Clone returns a deep copy so repository callers never share cart or
// history slices with the stored value.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Cart = append([]CartEntry(nil), u.Cart...)
	clone.History = make([]HistoryEntry, len(u.History))
	for i, h := range u.History {
		clone.History[i] = HistoryEntry{
			Products:   append([]HistoryProduct(nil), h.Products...),
			TotalPrice: h.TotalPrice,
			Date:       h.Date,
		}
	}
	return &clone
}

func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}
