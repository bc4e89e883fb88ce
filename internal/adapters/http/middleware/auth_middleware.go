package middleware

import (
	"context"

	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
)

// LocalsIdentity is the fiber.Locals key holding the request's domain.Identity
const LocalsIdentity = "identity"

// Authenticator resolves a raw token into an identity
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// Authenticate runs once per request on protected paths. It installs the
// identity in the request context when the credential is valid and leaves
// the request unauthenticated otherwise; it never rejects by itself.
func Authenticate(auth Authenticator, policy *PathPolicy, logger logging.Logger) fiber.Handler {
	logger = logger.With("component", "authenticator")

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !policy.IsProtected(path) {
			return c.Next()
		}

		ctx := c.UserContext()
		if _, ok := domain.IdentityFromContext(ctx); ok {
			return c.Next()
		}

		token, ok := ExtractToken(c)
		if !ok {
			logger.Info(ctx, "no credentials", "path", path)
			return c.Next()
		}

		id, err := auth.Authenticate(ctx, token)
		if err != nil {
			logger.Warn(ctx, "authentication failed", "path", path, "reason", err.Error())
			return c.Next()
		}

		c.SetUserContext(domain.WithIdentity(ctx, id))
		c.Locals(LocalsIdentity, id)
		logger.Info(ctx, "authenticated", "path", path, "subject", id.Subject)

		return c.Next()
	}
}

// RequireAdmin sends every protected request without an ADMIN identity to
// the responder
func RequireAdmin(policy *PathPolicy, responder *Responder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !policy.IsProtected(c.Path()) {
			return c.Next()
		}
		if id, ok := domain.IdentityFromContext(c.UserContext()); ok && id.HasRole(domain.RoleAdmin) {
			return c.Next()
		}
		return responder.Respond(c)
	}
}

// GetIdentity returns the identity installed by Authenticate
func GetIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	return domain.IdentityFromContext(c.UserContext())
}
