package httppresentation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/waveshop/waveshop/internal/application/auth"
)

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		badRequest(w, errors.New("product_id is required"))
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	cart, err := h.cart.AddToCart(r.Context(), ident.UserID, productID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"cart": cartView(cart)})
}

func (h *Handler) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		badRequest(w, errors.New("product_id is required"))
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	cart, err := h.cart.RemoveFromCart(r.Context(), ident.UserID, productID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"cart": cartView(cart)})
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())
	if err := h.cart.ClearCart(r.Context(), ident.UserID); err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"cart": cartView(nil)})
}

// handleFreezeCart snapshots the cart into purchase history. The client
// supplies the total it displayed at checkout time.
func (h *Handler) handleFreezeCart(w http.ResponseWriter, r *http.Request) {
	totalPrice, err := strconv.ParseInt(r.URL.Query().Get("totalPrice"), 10, 64)
	if err != nil || totalPrice < 0 {
		badRequest(w, errors.New("totalPrice must be a non-negative integer"))
		return
	}

	ident := auth.IdentityFromContext(r.Context())
	u, err := h.checkout.FreezeCartToHistory(r.Context(), ident.UserID, totalPrice)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{
		"cart":    cartView(u.Cart),
		"history": historyView(u.History),
	})
}
