package httppresentation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/waveshop/waveshop/internal/application/auth"
	"github.com/waveshop/waveshop/internal/application/catalogsvc"
	"github.com/waveshop/waveshop/internal/application/checkout"
	"github.com/waveshop/waveshop/internal/application/sitesvc"
	"github.com/waveshop/waveshop/internal/domain/catalog"
	"github.com/waveshop/waveshop/internal/domain/order"
	"github.com/waveshop/waveshop/internal/domain/site"
	"github.com/waveshop/waveshop/internal/domain/user"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.uber.org/zap"
)

// envelope is the response body convention: a success flag plus either
// payload fields or an err description.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ok reports logical success with the given payload fields.
func ok(w http.ResponseWriter, payload envelope) {
	if payload == nil {
		payload = envelope{}
	}
	payload["success"] = true
	writeJSON(w, http.StatusOK, payload)
}

func fail(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, envelope{"success": false, "err": err.Error()})
}

// badRequest reports a request-level problem: missing or malformed input.
func badRequest(w http.ResponseWriter, err error) {
	fail(w, http.StatusBadRequest, err)
}

// serviceError maps a service failure onto the response convention:
// logical failures (not found, conflict, stock, invalid transition) stay
// HTTP 200 with success=false, credential problems are 401, role
// problems 403, bad input 400, everything unexpected a generic 500.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredential):
		fail(w, http.StatusUnauthorized, err)
	case errors.Is(err, auth.ErrNotAdmin):
		fail(w, http.StatusForbidden, err)
	case errors.Is(err, auth.ErrInvalidInput),
		errors.Is(err, catalogsvc.ErrInvalidInput),
		errors.Is(err, sitesvc.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidName),
		errors.Is(err, catalog.ErrInvalidProduct):
		badRequest(w, err)
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrEntryNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, catalog.ErrBrandNotFound),
		errors.Is(err, catalog.ErrWoodNotFound),
		errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNoHistory),
		errors.Is(err, auth.ErrResetExpired),
		errors.Is(err, site.ErrNotFound):
		fail(w, http.StatusOK, err)
	default:
		logging.FromContext(r.Context()).Error("unhandled_service_error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, envelope{
			"success": false,
			"err":     "internal error",
		})
	}
}
