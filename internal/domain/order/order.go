package order

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound          = errors.New("order: not found")
	ErrInvalidTransition = errors.New("order: invalid status transition")
	ErrEmptyDetails      = errors.New("order: order details are required")
)

type Status string

const (
	// StatusProcess is the initial state set at materialization.
	StatusProcess  Status = "process"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

// validNext is the strict transition table: done and canceled are
// terminal, so a compensation can never be applied twice.
var validNext = map[Status]map[Status]bool{
	StatusProcess:  {StatusDone: true, StatusCanceled: true},
	StatusDone:     {},
	StatusCanceled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusProcess, StatusDone, StatusCanceled:
		return Status(s), nil
	}
	return "", fmt.Errorf("order: unknown status %q", s)
}

// Customer is the identity snapshot copied from the user at
// materialization time.
type Customer struct {
	Name     string
	Lastname string
	Email    string
}

// Item mirrors the history snapshot line it was materialized from.
type Item struct {
	ProductID   string
	Name        string
	Price       int64
	GuitarBrand string
	Quantity    int
}

type Details struct {
	Items      []Item
	TotalPrice int64
	Date       time.Time
}

type Order struct {
	ID        string
	Customer  Customer
	Details   Details
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id string, customer Customer, details Details) (*Order, error) {
	if len(details.Items) == 0 {
		return nil, ErrEmptyDetails
	}

	now := time.Now().UTC()
	return &Order{
		ID:        id,
		Customer:  customer,
		Details:   details,
		Status:    StatusProcess,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Details.Items = append([]Item(nil), o.Details.Items...)
	return &clone
}

func (o *Order) Touch() {
	o.UpdatedAt = time.Now().UTC()
}
