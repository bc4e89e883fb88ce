package handlers

import (
	"errors"
	"log"

	"myfinbank-admin/internal/adapters/http/middleware"
	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps each domain error kind to its HTTP status
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInvalidState, domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindAuthFailure:
		return fiber.StatusUnauthorized
	case domain.KindInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders err as the standard error body. Internal failures are
// logged and answered with a generic message.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)

	var message string
	switch kind {
	case domain.KindAuthFailure:
		message = middleware.UnauthorizedMessage
	case domain.KindInternal, domain.KindNotifyFailure:
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		kind = domain.KindInternal
		message = "Internal server error"
	default:
		var de *domain.Error
		if errors.As(err, &de) {
			message = de.Message
		}
	}

	return response.Fail(c, statusFor(kind), kind.String(), message)
}

// identity returns the request's admin identity or an auth failure
func identity(c *fiber.Ctx) (domain.Identity, error) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
