package httppresentation

import (
	"errors"
	"net/http"

	"github.com/waveshop/waveshop/internal/application/auth"
	"github.com/waveshop/waveshop/internal/domain/order"
)

// handleMaterializeOrder turns the caller's newest history entry into an
// order in the process state.
func (h *Handler) handleMaterializeOrder(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())
	o, err := h.checkout.MaterializeOrder(r.Context(), ident.UserID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"order": newOrderView(o)})
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	findBy := r.URL.Query().Get("findBy")
	switch findBy {
	case "", "status", "email":
	default:
		badRequest(w, errors.New("findBy must be status or email"))
		return
	}

	orders, err := h.orders.List(r.Context(), findBy, r.URL.Query().Get("value"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"orders": ordersView(orders)})
}

func (h *Handler) handleChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		badRequest(w, errors.New("orderId is required"))
		return
	}
	status, err := order.ParseStatus(r.URL.Query().Get("value"))
	if err != nil {
		badRequest(w, err)
		return
	}

	orders, err := h.orders.ChangeStatus(r.Context(), orderID, status)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"orders": ordersView(orders)})
}

func (h *Handler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		badRequest(w, errors.New("orderId is required"))
		return
	}

	orders, err := h.orders.Delete(r.Context(), orderID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	ok(w, envelope{"orders": ordersView(orders)})
}
