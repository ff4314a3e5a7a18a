package domain

import "context"

// Identity is the authenticated (or anonymous) subject of a request.
// Immutable once constructed by the auth middleware.
type Identity struct {
	ID            string
	Username      string
	Authenticated bool
}

type identityCtxKey struct{}

// WithIdentity returns a context carrying id. The auth middleware installs the
// identity on the request context, so the value's lifetime is bounded by the
// request and cannot leak to concurrently handled requests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext returns the identity installed by the auth middleware.
// ok is false when no identity was installed at all; an anonymous identity
// (Authenticated == false) is reported with ok == true. Callers must not
// treat the two cases the same: the former means the middleware never ran.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}
