package handlers

import (
	"errors"

	"cardbank/internal/middleware"
	"cardbank/internal/models"
	"cardbank/internal/services/authz"
	"cardbank/internal/services/transfer"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	transferService transfer.Service
}

func NewTransferHandler(transferService transfer.Service) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Transfer moves money between two of the caller's own cards.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		FromCardID  uint         `json:"from_card_id"`
		ToCardID    uint         `json:"to_card_id"`
		Amount      models.Money `json:"amount"`
		Description string       `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.transferService.Transfer(c.Context(), input.FromCardID, input.ToCardID, input.Amount, input.Description, p)
	if err != nil {
		if errors.Is(err, authz.ErrAccessDenied) {
			return utils.Forbidden(c, "can only transfer between your own cards")
		}
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}
