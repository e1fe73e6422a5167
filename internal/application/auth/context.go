package auth

import "context"

type identityKey struct{}

// ContextWithIdentity stores the resolved identity for downstream
// handlers.
func ContextWithIdentity(ctx context.Context, ident *AuthenticatedUser) context.Context {
	if ident == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext returns the identity placed by the auth
// middleware, or nil when the request never passed through it.
func IdentityFromContext(ctx context.Context) *AuthenticatedUser {
	if ctx == nil {
		return nil
	}
	ident, _ := ctx.Value(identityKey{}).(*AuthenticatedUser)
	return ident
}
