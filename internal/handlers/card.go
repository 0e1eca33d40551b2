package handlers

import (
	"context"
	"errors"
	"time"

	"cardbank/internal/middleware"
	"cardbank/internal/models"
	"cardbank/internal/services/authz"
	"cardbank/internal/services/card"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	cardService card.Service
}

func NewCardHandler(cardService card.Service) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// cardResponse is the display shape of a card. The encrypted number never
// leaves the service.
type cardResponse struct {
	ID               uint         `json:"id"`
	MaskedCardNumber string       `json:"masked_card_number"`
	CardHolder       string       `json:"card_holder,omitempty"`
	ExpiryDate       time.Time    `json:"expiry_date"`
	Status           string       `json:"status"`
	Balance          models.Money `json:"balance"`
	UserID           *uint        `json:"user_id,omitempty"`
}

func toCardResponse(c *models.Card) cardResponse {
	return cardResponse{
		ID:               c.ID,
		MaskedCardNumber: c.MaskedCardNumber,
		CardHolder:       c.CardHolder,
		ExpiryDate:       c.ExpiryDate,
		Status:           c.Status,
		Balance:          c.Balance,
		UserID:           c.UserID,
	}
}

func toCardResponses(cards []models.Card) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, toCardResponse(&cards[i]))
	}
	return out
}

func (h *CardHandler) Create(c *fiber.Ctx) error {
	var input struct {
		CardNumber string    `json:"card_number"`
		CardHolder string    `json:"card_holder"`
		ExpiryDate time.Time `json:"expiry_date"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	created, err := h.cardService.Create(c.Context(), card.CreateCardInput{
		CardNumber: input.CardNumber,
		CardHolder: input.CardHolder,
		ExpiryDate: input.ExpiryDate,
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCardResponse(created))
}

func (h *CardHandler) AssignToUser(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}
	email := c.Params("email")

	updated, err := h.cardService.AssignToUser(c.Context(), uint(cardID), email)
	if err != nil {
		return handleServiceError(c, err)
	}
	return utils.Success(c, toCardResponse(updated))
}

func (h *CardHandler) Block(c *fiber.Ctx) error {
	return h.setStatus(c, h.cardService.Block)
}

func (h *CardHandler) Activate(c *fiber.Ctx) error {
	return h.setStatus(c, h.cardService.Activate)
}

func (h *CardHandler) setStatus(c *fiber.Ctx, op func(ctx context.Context, cardID uint) (*models.Card, error)) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}

	updated, err := op(c.Context(), uint(cardID))
	if err != nil {
		return handleServiceError(c, err)
	}
	return utils.Success(c, toCardResponse(updated))
}

func (h *CardHandler) Delete(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}

	if err := h.cardService.Delete(c.Context(), uint(cardID)); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CardHandler) GetAll(c *fiber.Ctx) error {
	cards, err := h.cardService.GetAll(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}
	return utils.Success(c, toCardResponses(cards))
}

func (h *CardHandler) GetMine(c *fiber.Ctx) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	cards, err := h.cardService.GetAllForOwner(c.Context(), p)
	if err != nil {
		return handleServiceError(c, err)
	}
	return utils.Success(c, toCardResponses(cards))
}

func (h *CardHandler) Get(c *fiber.Ctx) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}

	found, err := h.cardService.Get(c.Context(), uint(cardID), p)
	if err != nil {
		// A card owned by someone else reads the same as any other bad
		// request; existence is not revealed.
		if errors.Is(err, authz.ErrAccessDenied) {
			return utils.BadRequest(c, "unable to process request")
		}
		return handleServiceError(c, err)
	}
	return utils.Success(c, toCardResponse(found))
}

func (h *CardHandler) SetLimit(c *fiber.Ctx) error {
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}

	var input struct {
		Kind models.LimitKind `json:"kind"`
		Cap  models.Money     `json:"cap"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	configured, err := h.cardService.SetLimit(c.Context(), uint(cardID), input.Kind, input.Cap)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(configured)
}

func (h *CardHandler) RequestBlock(c *fiber.Ctx) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}
	cardID, err := c.ParamsInt("id")
	if err != nil || cardID <= 0 {
		return utils.BadRequest(c, "invalid card id")
	}

	var input struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	if err := h.cardService.RequestBlock(c.Context(), uint(cardID), input.Message, p); err != nil {
		if errors.Is(err, authz.ErrAccessDenied) {
			return utils.BadRequest(c, "unable to process request")
		}
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// ListBlockRequests returns pending user block requests. Admin only.
func (h *CardHandler) ListBlockRequests(c *fiber.Ctx) error {
	reqs, err := h.cardService.ListBlockRequests(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}
	return utils.Success(c, reqs)
}
