// Package transfer moves money between two cards of the same user as one
// atomic unit: debit the source, credit the destination, two paired
// transaction records.
package transfer

import (
	"context"
	"errors"
	"time"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
	"cardbank/internal/services/authz"
	"cardbank/internal/services/ledger"

	"github.com/google/uuid"
)

// Service errors
var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrSameCard      = errors.New("cannot transfer a card to itself")
)

// Service handles transfers between a user's own cards.
type Service interface {
	// Transfer moves amount from one card to another. Both cards must
	// belong to the principal; an admin caller gets no override here.
	// Spending limits are not consulted for transfers, only for debits.
	// Returns the source-side transaction record.
	Transfer(ctx context.Context, fromCardID, toCardID uint, amount models.Money, description string, p models.Principal) (*models.Transaction, error)
}

type service struct {
	store repositories.Store
	now   func() time.Time
}

func NewService(store repositories.Store) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, now: time.Now}
}

func (s *service) Transfer(ctx context.Context, fromCardID, toCardID uint, amount models.Money, description string, p models.Principal) (*models.Transaction, error) {
	if fromCardID == toCardID {
		return nil, ErrSameCard
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	var out *models.Transaction
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		source, dest, err := lockPair(tx, fromCardID, toCardID)
		if err != nil {
			return err
		}

		if !authz.Owns(p, source) || !authz.Owns(p, dest) {
			return authz.ErrAccessDenied
		}
		if source.Status == models.CardStatusBlocked {
			return ledger.ErrCardBlocked
		}

		projected := source.Balance.Sub(amount)
		if projected.IsNegative() {
			return &ledger.InsufficientFundsError{Shortfall: projected.Neg()}
		}

		source.Balance = projected
		dest.Balance = dest.Balance.Add(amount)
		if err := tx.Update(source); err != nil {
			return err
		}
		if err := tx.Update(dest); err != nil {
			return err
		}

		// One reference correlates the two legs.
		ref := uuid.NewString()

		outgoingDesc := description
		if outgoingDesc == "" {
			outgoingDesc = "Transfer to card " + dest.MaskedCardNumber
		}
		incoming := &models.Transaction{
			CardID:      dest.ID,
			Amount:      amount,
			Description: "Incoming transfer from card " + source.MaskedCardNumber,
			Reference:   ref,
			Timestamp:   now,
		}
		outgoing := &models.Transaction{
			CardID:      source.ID,
			Amount:      amount.Neg(),
			Description: outgoingDesc,
			Reference:   ref,
			Timestamp:   now,
		}
		if err := tx.AppendTransaction(incoming); err != nil {
			return err
		}
		if err := tx.AppendTransaction(outgoing); err != nil {
			return err
		}
		out = outgoing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lockPair locks both card rows in ascending-ID order so two concurrent
// opposite-direction transfers cannot deadlock, then maps the locked rows
// back to (source, dest).
func lockPair(tx repositories.Store, fromID, toID uint) (source, dest *models.Card, err error) {
	firstID, secondID := fromID, toID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := tx.GetByIDForUpdate(firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := tx.GetByIDForUpdate(secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == fromID {
		return first, second, nil
	}
	return second, first, nil
}
