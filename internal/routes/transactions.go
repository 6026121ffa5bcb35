package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardauth/cardauth/internal/ledger"
)

// RegisterTransactionRoutes wires the session-gated ledger endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *ledger.Handler) {
	r.Post("/transactions", h.Submit)
	r.Get("/transactions", h.List)
}
