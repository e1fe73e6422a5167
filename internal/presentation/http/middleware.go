package httppresentation

import (
	"net/http"

	"github.com/waveshop/waveshop/internal/application/auth"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.uber.org/zap"
)

// withAuth resolves the session credential (cookie, or Authorization
// bearer for API clients) into an AuthenticatedUser before the handler
// runs. Rejection happens here, ahead of any service or ledger call.
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := h.auth.Resolve(r.Context(), h.credentialFrom(r))
		if err != nil {
			serviceError(w, r, err)
			return
		}

		ctx := auth.ContextWithIdentity(r.Context(), ident)
		ctx = logging.WithContext(ctx,
			logging.FromContext(ctx).With(zap.String("user_id", ident.UserID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withAdmin layers the role gate on top of withAuth.
func (h *Handler) withAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := auth.IdentityFromContext(r.Context())
		if err := h.auth.RequireAdmin(ident); err != nil {
			serviceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) credentialFrom(r *http.Request) string {
	if c, err := r.Cookie(h.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	const bearer = "Bearer "
	if v := r.Header.Get("Authorization"); len(v) > len(bearer) && v[:len(bearer)] == bearer {
		return v[len(bearer):]
	}
	return ""
}
