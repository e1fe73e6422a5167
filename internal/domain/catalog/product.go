package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("catalog: product not found")
	ErrBrandNotFound = errors.New("catalog: brand not found")
	ErrWoodNotFound  = errors.New("catalog: wood not found")
	// ErrInsufficientStock is returned when an adjustment would push a
	// counter below zero and the repository's floor guard is active.
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
	ErrInvalidProduct    = errors.New("catalog: name, brand and wood are required")
)

type Product struct {
	ID          string
	Name        string
	Description string
	Price       int64
	BrandID     string
	WoodID      string
	Shipping    bool
	Quantity    int
	Sold        int
	Frets       int
	Publish     bool
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(id, name, description string, price int64, brandID, woodID string) (*Product, error) {
	if name == "" || brandID == "" || woodID == "" {
		return nil, ErrInvalidProduct
	}

	now := time.Now().UTC()
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		BrandID:     brandID,
		WoodID:      woodID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	return &clone
}

func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

type Brand struct {
	ID   string
	Name string
}

type Wood struct {
	ID   string
	Name string
}
