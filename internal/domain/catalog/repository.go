package catalog

import "context"

// Adjustment is one relative stock change, used for all-or-nothing
// batches applied by the order lifecycle.
type Adjustment struct {
	ProductID string
	Delta     int
}

// ListQuery selects a page of products ordered by a single field.
type ListQuery struct {
	SortBy string // "name" | "price" | "sold" | "createdAt"; default "createdAt"
	Order  string // "asc" | "desc"
	Skip   int
	Limit  int
}

// ShopQuery filters published products for the storefront listing.
type ShopQuery struct {
	BrandIDs []string
	WoodIDs  []string
	Frets    []int
	PriceMin int64
	PriceMax int64 // 0 means unbounded
	SortBy   string
	Order    string
	Skip     int
	Limit    int
}

// ProductRepository owns product persistence and is the only mutation
// path for the Quantity and Sold counters. AdjustQuantity and AdjustSold
// are atomic relative updates: two concurrent callers must never race on
// a stale read. The batch variants validate every delta first and apply
// all of them under one critical section, or none.
type ProductRepository interface {
	Insert(ctx context.Context, p *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	GetMany(ctx context.Context, ids []string) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]*Product, error)
	Shop(ctx context.Context, q ShopQuery) ([]*Product, error)
	// Search matches the term against product names, or products whose
	// brand is in brandIDs (the service resolves matching brands first).
	Search(ctx context.Context, term string, brandIDs []string, skip, limit int) ([]*Product, error)

	AdjustQuantity(ctx context.Context, id string, delta int) (int, error)
	AdjustSold(ctx context.Context, id string, delta int) (int, error)
	AdjustQuantityBatch(ctx context.Context, adjs []Adjustment) error
	AdjustSoldBatch(ctx context.Context, adjs []Adjustment) error
}

type BrandRepository interface {
	Insert(ctx context.Context, b *Brand) error
	Get(ctx context.Context, id string) (*Brand, error)
	List(ctx context.Context) ([]*Brand, error)
	// FindByName matches brand names containing the term, case folded.
	FindByName(ctx context.Context, term string) ([]*Brand, error)
	Remove(ctx context.Context, id string) error
}

type WoodRepository interface {
	Insert(ctx context.Context, w *Wood) error
	List(ctx context.Context) ([]*Wood, error)
	Remove(ctx context.Context, id string) error
}
