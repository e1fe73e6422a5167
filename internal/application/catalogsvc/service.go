package catalogsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/waveshop/waveshop/internal/domain/catalog"
)

var ErrInvalidInput = errors.New("catalog: invalid input")

type IDGenerator interface {
	NewID() string
}

// Service is the administrative catalog surface: plain CRUD over
// products, brands and woods plus the storefront queries. It has no
// stock semantics beyond the initial quantity on create; all later
// counter movement belongs to the stock ledger.
type Service struct {
	products catalog.ProductRepository
	brands   catalog.BrandRepository
	woods    catalog.WoodRepository
	ids      IDGenerator
}

func NewService(
	products catalog.ProductRepository,
	brands catalog.BrandRepository,
	woods catalog.WoodRepository,
	ids IDGenerator,
) *Service {
	return &Service{products: products, brands: brands, woods: woods, ids: ids}
}

type ProductInput struct {
	Name        string
	Description string
	Price       int64
	BrandID     string
	WoodID      string
	Shipping    bool
	Quantity    int
	Frets       int
	Publish     bool
	Images      []string
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*catalog.Product, error) {
	p, err := catalog.NewProduct(s.ids.NewID(), in.Name, in.Description, in.Price, in.BrandID, in.WoodID)
	if err != nil {
		return nil, err
	}
	p.Shipping = in.Shipping
	p.Quantity = in.Quantity
	p.Frets = in.Frets
	p.Publish = in.Publish
	p.Images = in.Images

	if err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*catalog.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	if in.BrandID != "" {
		p.BrandID = in.BrandID
	}
	if in.WoodID != "" {
		p.WoodID = in.WoodID
	}
	p.Shipping = in.Shipping
	p.Frets = in.Frets
	p.Publish = in.Publish
	if in.Images != nil {
		p.Images = in.Images
	}
	p.Touch()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetProducts(ctx context.Context, ids []string) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one product id is required", ErrInvalidInput)
	}
	return s.products.GetMany(ctx, ids)
}

func (s *Service) ListProducts(ctx context.Context, q catalog.ListQuery) ([]*catalog.Product, error) {
	return s.products.List(ctx, q)
}

func (s *Service) Shop(ctx context.Context, q catalog.ShopQuery) ([]*catalog.Product, error) {
	return s.products.Shop(ctx, q)
}

// Search matches the term against product names and brand names, the
// way the storefront search box works.
func (s *Service) Search(ctx context.Context, term string, skip, limit int) ([]*catalog.Product, error) {
	matched, err := s.brands.FindByName(ctx, term)
	if err != nil {
		return nil, err
	}
	brandIDs := make([]string, len(matched))
	for i, b := range matched {
		brandIDs[i] = b.ID
	}
	return s.products.Search(ctx, term, brandIDs, skip, limit)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Remove(ctx, id)
}

func (s *Service) CreateBrand(ctx context.Context, name string) (*catalog.Brand, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: brand name is required", ErrInvalidInput)
	}
	b := &catalog.Brand{ID: s.ids.NewID(), Name: name}
	if err := s.brands.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) ListBrands(ctx context.Context) ([]*catalog.Brand, error) {
	return s.brands.List(ctx)
}

func (s *Service) DeleteBrand(ctx context.Context, id string) error {
	return s.brands.Remove(ctx, id)
}

func (s *Service) CreateWood(ctx context.Context, name string) (*catalog.Wood, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: wood name is required", ErrInvalidInput)
	}
	w := &catalog.Wood{ID: s.ids.NewID(), Name: name}
	if err := s.woods.Insert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) ListWoods(ctx context.Context) ([]*catalog.Wood, error) {
	return s.woods.List(ctx)
}

func (s *Service) DeleteWood(ctx context.Context, id string) error {
	return s.woods.Remove(ctx, id)
}
