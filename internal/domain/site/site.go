package site

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("site: info not found")

// Info is the single storefront contact document shown in the footer.
type Info struct {
	ID      string
	Address string
	Hours   string
	Phone   string
	Email   string
}

type Repository interface {
	Insert(ctx context.Context, info *Info) error
	// Get returns the first stored document; the storefront keeps one.
	Get(ctx context.Context) (*Info, error)
	Update(ctx context.Context, id string, info *Info) (*Info, error)
}
