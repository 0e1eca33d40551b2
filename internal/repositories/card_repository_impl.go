package repositories

import (
	"context"
	"fmt"
	"log"

	"cardbank/internal/models"
	"cardbank/internal/repositories/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardStore struct {
	db    *gorm.DB
	cache *cache.CacheService
	inTx  bool
}

// NewStore creates the gorm-backed store. cache may be nil (tests, seed
// tooling); cached reads are then skipped.
func NewStore(db *gorm.DB, cacheService *cache.CacheService) Store {
	return &cardStore{db: db, cache: cacheService}
}

func (s *cardStore) Create(card *models.Card) error {
	if err := s.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (s *cardStore) GetByID(id uint) (*models.Card, error) {
	// Cached reads are only safe outside a transaction; inside one the
	// caller needs the row as the database sees it.
	if s.cache != nil && !s.inTx {
		if card, err := s.cache.GetCard(context.Background(), id); err == nil && card != nil {
			return card, nil
		}
	}

	var card models.Card
	if err := s.db.First(&card, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if s.cache != nil && !s.inTx {
		if err := s.cache.CacheCard(context.Background(), &card); err != nil {
			log.Printf("failed to cache card %d: %v", id, err)
		}
	}
	return &card, nil
}

func (s *cardStore) GetByIDForUpdate(id uint) (*models.Card, error) {
	var card models.Card
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&card, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to lock card: %w", err)
	}
	return &card, nil
}

func (s *cardStore) GetAll() ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (s *cardStore) GetAllByOwner(userID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards for user %d: %w", userID, err)
	}
	return cards, nil
}

func (s *cardStore) Update(card *models.Card) error {
	if err := s.db.Save(card).Error; err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	s.invalidateCard(card.ID)
	return nil
}

func (s *cardStore) Delete(id uint) error {
	// Card owns its limits and transactions; deletion cascades explicitly
	// inside one transaction rather than via ORM relationship magic.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&models.CardLimit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Card{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateCard(id)
	return nil
}

func (s *cardStore) CreateBlockRequest(req *models.BlockRequest) error {
	if err := s.db.Create(req).Error; err != nil {
		return fmt.Errorf("failed to create block request: %w", err)
	}
	return nil
}

func (s *cardStore) GetBlockRequests() ([]models.BlockRequest, error) {
	var reqs []models.BlockRequest
	if err := s.db.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list block requests: %w", err)
	}
	return reqs, nil
}

func (s *cardStore) GetLimitsByCard(cardID uint) ([]models.CardLimit, error) {
	var limits []models.CardLimit
	if err := s.db.Where("card_id = ?", cardID).Find(&limits).Error; err != nil {
		return nil, fmt.Errorf("failed to list limits for card %d: %w", cardID, err)
	}
	return limits, nil
}

func (s *cardStore) GetLimitByCardAndKind(cardID uint, kind models.LimitKind) (*models.CardLimit, error) {
	var limit models.CardLimit
	err := s.db.Where("card_id = ? AND kind = ?", cardID, kind).First(&limit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrLimitNotFound
		}
		return nil, fmt.Errorf("failed to get limit: %w", err)
	}
	return &limit, nil
}

func (s *cardStore) SaveLimit(limit *models.CardLimit) error {
	if err := s.db.Save(limit).Error; err != nil {
		return fmt.Errorf("failed to save limit: %w", err)
	}
	return nil
}

func (s *cardStore) AppendTransaction(tx *models.Transaction) error {
	if err := s.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

func (s *cardStore) GetTransactionsByCard(cardID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.Where("card_id = ?", cardID).Order("timestamp DESC").Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for card %d: %w", cardID, err)
	}
	return txs, nil
}

func (s *cardStore) ExecuteInTransaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&cardStore{db: tx, cache: s.cache, inTx: true})
	})
}

func (s *cardStore) invalidateCard(cardID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCard(context.Background(), cardID); err != nil {
		log.Printf("failed to invalidate card %d cache: %v", cardID, err)
	}
}
