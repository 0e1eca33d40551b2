package ledger

import (
	"errors"
	"fmt"

	"cardbank/internal/models"
)

// Service errors
var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrCardBlocked   = errors.New("card is blocked")
)

// InsufficientFundsError is returned when a debit would take the balance
// below zero. Shortfall is the top-up needed to cover the requested amount.
type InsufficientFundsError struct {
	Shortfall models.Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance short by %s", e.Shortfall)
}
