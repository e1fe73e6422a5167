package order

import "context"

// ListFilter narrows List to orders whose field matches value. The zero
// value selects every order.
type ListFilter struct {
	Field string // "" | "status" | "email"
	Value string
}

// Repository persists orders. List results are sorted by creation time
// descending. Transition is a compare-and-set against the strict
// transition table executed atomically, so two concurrent admin actions
// on the same order cannot both win.
type Repository interface {
	Insert(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f ListFilter) ([]*Order, error)
	// Transition moves the order to the target status and returns the
	// updated order, or ErrInvalidTransition when the current status does
	// not allow it.
	Transition(ctx context.Context, id string, to Status) (*Order, error)
	// Remove deletes the order and returns it as it was at removal time.
	Remove(ctx context.Context, id string) (*Order, error)
}
