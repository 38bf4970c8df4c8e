package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "auth_identity"

type identityContextKey struct{}

// WithIdentity attaches a verified identity to ctx.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext retrieves the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}

// IdentityFromCtx retrieves the identity the gate attached to the request.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}
