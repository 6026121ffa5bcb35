package ledger

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes transaction endpoints. The session middleware has already
// authenticated the caller by the time these run.
type Handler struct {
	service *Service
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	CardNumber      string   `json:"card_number"`
	Brand           string   `json:"brand"`
	Amount          *float64 `json:"amount"`
	TransactionType string   `json:"transaction_type"`
}

// Submit processes a transaction and returns the persisted record. Both
// approvals and declines answer 201; the decision lives in the record body.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.CardNumber == "" || req.Amount == nil {
		return fiber.NewError(http.StatusBadRequest, "card_number and amount are required")
	}

	rec, err := h.service.Submit(c.UserContext(), Input{
		CardNumber:      req.CardNumber,
		Brand:           req.Brand,
		Amount:          *req.Amount,
		TransactionType: req.TransactionType,
	})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(rec)
}

// List returns a page of past decisions, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", DefaultPage)
	pageSize := c.QueryInt("page_size", DefaultPageSize)

	result, err := h.service.List(c.UserContext(), page, pageSize)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(result)
}
