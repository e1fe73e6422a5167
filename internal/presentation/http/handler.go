package httppresentation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/waveshop/waveshop/internal/application/auth"
	"github.com/waveshop/waveshop/internal/application/cart"
	"github.com/waveshop/waveshop/internal/application/catalogsvc"
	"github.com/waveshop/waveshop/internal/application/checkout"
	"github.com/waveshop/waveshop/internal/application/orders"
	"github.com/waveshop/waveshop/internal/application/sitesvc"
	"github.com/waveshop/waveshop/internal/observability"
	"go.uber.org/zap"
)

type Handler struct {
	auth     *auth.Service
	cart     *cart.Service
	checkout *checkout.Service
	orders   *orders.Service
	catalog  *catalogsvc.Service
	site     *sitesvc.Service

	cookieName string
	log        *zap.Logger
	metrics    *observability.Metrics
}

type Deps struct {
	Auth     *auth.Service
	Cart     *cart.Service
	Checkout *checkout.Service
	Orders   *orders.Service
	Catalog  *catalogsvc.Service
	Site     *sitesvc.Service

	CookieName string
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

func NewHandler(d Deps) *Handler {
	log := d.Logger
	if log == nil {
		log = zap.L()
	}
	return &Handler{
		auth:       d.Auth,
		cart:       d.Cart,
		checkout:   d.Checkout,
		orders:     d.Orders,
		catalog:    d.Catalog,
		site:       d.Site,
		cookieName: d.CookieName,
		log:        log,
		metrics:    d.Metrics,
	}
}

// Router builds the full route table. Read-only catalog and site routes are
// public; everything touching a user's cart, history, or orders requires a
// resolved session, and mutations of shared state require the admin role.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(ObservabilityMiddleware(h.log, h.metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Post("/reset/request", h.handleResetRequest)
		r.Post("/reset/confirm", h.handleResetConfirm)

		r.Group(func(r chi.Router) {
			r.Use(h.withAuth)
			r.Get("/auth", h.handleAuthCheck)
			r.Get("/logout", h.handleLogout)
			r.Post("/update", h.handleUpdateProfile)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(h.withAuth)
		r.Post("/add", h.handleAddToCart)
		r.Post("/remove", h.handleRemoveFromCart)
		r.Post("/clear", h.handleClearCart)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Use(h.withAuth)
		r.Post("/history", h.handleFreezeCart)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(h.withAuth)
		r.Post("/", h.handleMaterializeOrder)
		r.Get("/", h.handleListOrders)
		r.Post("/delete", h.handleDeleteOrder)
		r.With(h.withAdmin).Post("/status", h.handleChangeOrderStatus)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/products", h.handleListProducts)
		r.Get("/products/by_id", h.handleProductsByID)
		r.Post("/shop", h.handleShop)
		r.Post("/search", h.handleSearch)
		r.Get("/brands", h.handleListBrands)
		r.Get("/woods", h.handleListWoods)

		r.Group(func(r chi.Router) {
			r.Use(h.withAuth, h.withAdmin)
			r.Post("/products", h.handleCreateProduct)
			r.Post("/products/update", h.handleUpdateProduct)
			r.Post("/products/delete", h.handleDeleteProduct)
			r.Post("/brands", h.handleCreateBrand)
			r.Post("/brands/delete", h.handleDeleteBrand)
			r.Post("/woods", h.handleCreateWood)
			r.Post("/woods/delete", h.handleDeleteWood)
		})
	})

	r.Route("/site", func(r chi.Router) {
		r.Get("/", h.handleGetSite)

		r.Group(func(r chi.Router) {
			r.Use(h.withAuth, h.withAdmin)
			r.Post("/", h.handleCreateSite)
			r.Post("/update", h.handleUpdateSite)
		})
	})

	return r
}
