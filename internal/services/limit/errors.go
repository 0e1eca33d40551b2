package limit

import (
	"errors"
	"fmt"

	"cardbank/internal/models"
)

// Service errors
var (
	ErrInvalidCap  = errors.New("limit cap must be greater than zero")
	ErrInvalidKind = errors.New("unknown limit kind")
)

// ExceededError is returned when a debit would breach a configured rolling
// limit. It carries the kind of the violated limit.
type ExceededError struct {
	Kind models.LimitKind
}

func (e *ExceededError) Error() string {
	switch e.Kind {
	case models.LimitKindDay:
		return "daily spending limit exceeded"
	case models.LimitKindMonth:
		return "monthly spending limit exceeded"
	default:
		return fmt.Sprintf("%s spending limit exceeded", e.Kind)
	}
}
