package ledger

import (
	"context"
	"time"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
	"cardbank/internal/services/authz"
	"cardbank/internal/services/limit"

	"github.com/google/uuid"
)

type service struct {
	store    repositories.Store
	limitCfg limit.Config
	now      func() time.Time
}

// NewService creates the balance ledger. limitCfg controls rolling-window
// lengths for the limit checks on debits.
func NewService(store repositories.Store, limitCfg limit.Config) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, limitCfg: limitCfg, now: time.Now}
}

func (s *service) Debit(ctx context.Context, cardID uint, amount models.Money, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	var out *models.Transaction
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		// Row lock for the whole unit of work: two concurrent debits cannot
		// both pass the balance check against a stale row.
		card, err := tx.GetByIDForUpdate(cardID)
		if err != nil {
			return err
		}
		if card.Status == models.CardStatusBlocked {
			return ErrCardBlocked
		}

		projected := card.Balance.Sub(amount)
		if projected.IsNegative() {
			return &InsufficientFundsError{Shortfall: projected.Neg()}
		}

		limits, err := tx.GetLimitsByCard(cardID)
		if err != nil {
			return err
		}

		// Every limit must pass before any is persisted. A failure aborts
		// the transaction, so window rolls done here are discarded too.
		for i := range limits {
			if err := limit.NewTracker(&limits[i], s.limitCfg).Reserve(amount, now); err != nil {
				return err
			}
		}
		for i := range limits {
			if err := tx.SaveLimit(&limits[i]); err != nil {
				return err
			}
		}

		card.Balance = projected
		if err := tx.Update(card); err != nil {
			return err
		}

		txn := &models.Transaction{
			CardID:      cardID,
			Amount:      amount.Neg(),
			Description: description,
			Reference:   uuid.NewString(),
			Timestamp:   now,
		}
		if err := tx.AppendTransaction(txn); err != nil {
			return err
		}
		out = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Credit(ctx context.Context, cardID uint, amount models.Money, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	var out *models.Transaction
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		card, err := tx.GetByIDForUpdate(cardID)
		if err != nil {
			return err
		}

		card.Balance = card.Balance.Add(amount)
		if err := tx.Update(card); err != nil {
			return err
		}

		txn := &models.Transaction{
			CardID:      cardID,
			Amount:      amount,
			Description: description,
			Reference:   uuid.NewString(),
			Timestamp:   now,
		}
		if err := tx.AppendTransaction(txn); err != nil {
			return err
		}
		out = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) ListTransactions(ctx context.Context, cardID uint, p models.Principal) ([]models.Transaction, error) {
	card, err := s.store.GetByID(cardID)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeRead(p, card); err != nil {
		return nil, err
	}
	return s.store.GetTransactionsByCard(cardID)
}
