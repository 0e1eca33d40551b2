package limit

import (
	"context"
	"errors"
	"time"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
)

// Service configures per-card spending limits.
type Service interface {
	// Configure creates the tracker for (card, kind), or replaces an
	// existing one: remaining starts at cap and a fresh window opens now.
	Configure(ctx context.Context, cardID uint, kind models.LimitKind, cap models.Money) (*models.CardLimit, error)

	// ListByCard returns the limits configured on a card.
	ListByCard(ctx context.Context, cardID uint) ([]models.CardLimit, error)
}

type service struct {
	store repositories.Store
	cfg   Config
	now   func() time.Time
}

func NewService(store repositories.Store, cfg Config) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, cfg: cfg.normalize(), now: time.Now}
}

func (s *service) Configure(ctx context.Context, cardID uint, kind models.LimitKind, cap models.Money) (*models.CardLimit, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if !cap.IsPositive() {
		return nil, ErrInvalidCap
	}

	now := s.now()
	var out *models.CardLimit
	err := s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		if _, err := tx.GetByID(cardID); err != nil {
			return err
		}

		l, err := tx.GetLimitByCardAndKind(cardID, kind)
		if err != nil {
			if !errors.Is(err, repositories.ErrLimitNotFound) {
				return err
			}
			l = &models.CardLimit{CardID: cardID, Kind: kind}
		}

		l.Cap = cap
		l.Remaining = cap
		l.WindowStart = now
		l.WindowEnd = s.cfg.WindowEnd(kind, now)
		if err := tx.SaveLimit(l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) ListByCard(ctx context.Context, cardID uint) ([]models.CardLimit, error) {
	if _, err := s.store.GetByID(cardID); err != nil {
		return nil, err
	}
	return s.store.GetLimitsByCard(cardID)
}
