package handlers

import (
	"errors"

	"cardbank/internal/middleware"
	"cardbank/internal/models"
	"cardbank/internal/services/authz"
	"cardbank/internal/services/ledger"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	ledgerService ledger.Service
}

func NewTransactionHandler(ledgerService ledger.Service) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// Purchase records a debit against the card.
func (h *TransactionHandler) Purchase(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}

	var input struct {
		Amount      models.Money `json:"amount"`
		Description string       `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.ledgerService.Debit(c.Context(), uint(cardID), input.Amount, input.Description)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// Deposit records a credit on the card. Admin only.
func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}

	var input struct {
		Amount      models.Money `json:"amount"`
		Description string       `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	txn, err := h.ledgerService.Credit(c.Context(), uint(cardID), input.Amount, input.Description)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// List returns the card's transaction history for the authenticated caller.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}

	txns, err := h.ledgerService.ListTransactions(c.Context(), uint(cardID), p)
	if err != nil {
		if errors.Is(err, authz.ErrAccessDenied) {
			return utils.BadRequest(c, "unable to process request")
		}
		return handleServiceError(c, err)
	}
	return utils.Success(c, txns)
}
