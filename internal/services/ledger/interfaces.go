package ledger

import (
	"context"

	"cardbank/internal/models"
)

// Service applies single-card monetary movements and serves the card's
// transaction history.
type Service interface {
	// Debit validates and applies a purchase-style outflow: the balance may
	// not go negative and every configured rolling limit must cover the
	// amount. The whole operation commits or nothing does. Returns the
	// appended transaction record (negative amount).
	Debit(ctx context.Context, cardID uint, amount models.Money, description string) (*models.Transaction, error)

	// Credit applies an inflow. No balance floor or limit checks. Returns
	// the appended transaction record (positive amount).
	Credit(ctx context.Context, cardID uint, amount models.Money, description string) (*models.Transaction, error)

	// ListTransactions returns the card's history, newest first, subject to
	// the read policy for the principal.
	ListTransactions(ctx context.Context, cardID uint, p models.Principal) ([]models.Transaction, error)
}
