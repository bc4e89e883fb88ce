package domain

import "context"

// Identity is the verified outcome of authenticating a single request.
// It is an immutable value; copies never alias request state.
type Identity struct {
	Subject string
	Role    Role
}

// HasRole reports whether the identity carries the given capability marker
func (i Identity) HasRole(r Role) bool {
	return i.Subject != "" && i.Role == r
}

type identityKey struct{}

// WithIdentity returns a child context carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity installed for this request, if any
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.Subject == "" {
		return Identity{}, false
	}
	return id, true
}
