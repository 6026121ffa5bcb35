package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardauth/cardauth/internal/identity"
)

// RegisterIdentityRoutes wires the registration endpoint.
func RegisterIdentityRoutes(r fiber.Router, h *identity.Handler) {
	r.Post("/identity/register", h.Register)
}
