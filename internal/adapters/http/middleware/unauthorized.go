package middleware

import (
	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UnauthorizedMessage is the body error for API requests without a session
const UnauthorizedMessage = "Unauthorized access. Please login as admin."

// Responder is the single place that answers requests lacking a valid
// identity: JSON 401 for API paths, a login redirect for pages.
type Responder struct {
	policy    *PathPolicy
	loginPath string
}

// NewResponder creates the unauthenticated-access responder
func NewResponder(policy *PathPolicy, cfg config.AuthConfig) *Responder {
	return &Responder{policy: policy, loginPath: cfg.LoginPath}
}

// Respond writes the rejection for the current request
func (r *Responder) Respond(c *fiber.Ctx) error {
	if r.policy.IsAPI(c.Path()) {
		return response.Fail(c, fiber.StatusUnauthorized, "unauthenticated", UnauthorizedMessage)
	}
	return c.Redirect(r.loginPath+"?sessionExpired=true", fiber.StatusFound)
}
