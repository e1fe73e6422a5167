package httppresentation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/waveshop/waveshop/internal/application/catalogsvc"
	"github.com/waveshop/waveshop/internal/domain/catalog"
)

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Brand       string   `json:"brand"`
	Wood        string   `json:"wood"`
	Shipping    bool     `json:"shipping"`
	Quantity    int      `json:"quantity"`
	Frets       int      `json:"frets"`
	Publish     bool     `json:"publish"`
	Images      []string `json:"images"`
}

func (req productRequest) toInput() catalogsvc.ProductInput {
	return catalogsvc.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		BrandID:     req.Brand,
		WoodID:      req.Wood,
		Shipping:    req.Shipping,
		Quantity:    req.Quantity,
		Frets:       req.Frets,
		Publish:     req.Publish,
		Images:      req.Images,
	}
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"product": newProductView(p)})
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		badRequest(w, errors.New("id is required"))
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), id, req.toInput())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"product": newProductView(p)})
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		badRequest(w, errors.New("id is required"))
		return
	}
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, nil)
}

// handleProductsByID answers the storefront's detail views: a single
// comma-separated id parameter, one or many ids.
func (h *Handler) handleProductsByID(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		badRequest(w, errors.New("id is required"))
		return
	}
	ids := strings.Split(raw, ",")

	products, err := h.catalog.GetProducts(r.Context(), ids)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"products": productsView(products)})
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.catalog.ListProducts(r.Context(), catalog.ListQuery{
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
		Skip:   intParam(q.Get("skip"), 0),
		Limit:  intParam(q.Get("limit"), 0),
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"products": productsView(products)})
}

type shopRequest struct {
	Brands   []string `json:"brands"`
	Woods    []string `json:"woods"`
	Frets    []int    `json:"frets"`
	PriceMin int64    `json:"priceMin"`
	PriceMax int64    `json:"priceMax"`
	SortBy   string   `json:"sortBy"`
	Order    string   `json:"order"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
}

// handleShop is the faceted storefront listing; filters arrive in the
// body because the brand and fret facets are arrays.
func (h *Handler) handleShop(w http.ResponseWriter, r *http.Request) {
	var req shopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	products, err := h.catalog.Shop(r.Context(), catalog.ShopQuery{
		BrandIDs: req.Brands,
		WoodIDs:  req.Woods,
		Frets:    req.Frets,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		SortBy:   req.SortBy,
		Order:    req.Order,
		Skip:     req.Skip,
		Limit:    req.Limit,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"size": len(products), "products": productsView(products)})
}

type searchRequest struct {
	Term  string `json:"term"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}

	products, err := h.catalog.Search(r.Context(), req.Term, req.Skip, req.Limit)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"size": len(products), "products": productsView(products)})
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateBrand(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}
	b, err := h.catalog.CreateBrand(r.Context(), req.Name)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"brand": brandView{ID: b.ID, Name: b.Name}})
}

func (h *Handler) handleListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalog.ListBrands(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"brands": brandsView(brands)})
}

func (h *Handler) handleDeleteBrand(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		badRequest(w, errors.New("id is required"))
		return
	}
	if err := h.catalog.DeleteBrand(r.Context(), id); err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, nil)
}

func (h *Handler) handleCreateWood(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, errors.New("invalid request body"))
		return
	}
	wood, err := h.catalog.CreateWood(r.Context(), req.Name)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"wood": woodView{ID: wood.ID, Name: wood.Name}})
}

func (h *Handler) handleListWoods(w http.ResponseWriter, r *http.Request) {
	woods, err := h.catalog.ListWoods(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"woods": woodsView(woods)})
}

func (h *Handler) handleDeleteWood(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		badRequest(w, errors.New("id is required"))
		return
	}
	if err := h.catalog.DeleteWood(r.Context(), id); err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, nil)
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
