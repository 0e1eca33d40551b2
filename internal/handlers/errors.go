package handlers

import (
	"errors"

	"cardbank/internal/repositories"
	"cardbank/internal/services/auth"
	"cardbank/internal/services/card"
	"cardbank/internal/services/ledger"
	"cardbank/internal/services/limit"
	"cardbank/internal/services/transfer"
	"cardbank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// handleServiceError translates engine errors into stable caller-visible
// failures. Access denial is handled at call sites because read paths hide
// it behind a generic 400 while transfer reports 403.
func handleServiceError(c *fiber.Ctx, err error) error {
	var insufficient *ledger.InsufficientFundsError
	var exceeded *limit.ExceededError

	switch {
	case errors.Is(err, repositories.ErrCardNotFound),
		errors.Is(err, repositories.ErrLimitNotFound),
		errors.Is(err, repositories.ErrUserNotFound):
		return utils.NotFound(c, err.Error())
	case errors.As(err, &insufficient),
		errors.As(err, &exceeded):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrCardBlocked),
		errors.Is(err, transfer.ErrInvalidAmount),
		errors.Is(err, transfer.ErrSameCard),
		errors.Is(err, limit.ErrInvalidCap),
		errors.Is(err, limit.ErrInvalidKind),
		errors.Is(err, card.ErrInvalidCardNumber),
		errors.Is(err, auth.ErrEmailTaken):
		return utils.BadRequest(c, err.Error())
	default:
		return utils.InternalError(c, "internal error")
	}
}
