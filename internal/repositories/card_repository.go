package repositories

import (
	"errors"

	"cardbank/internal/models"
)

var (
	ErrCardNotFound  = errors.New("card not found")
	ErrLimitNotFound = errors.New("limit not found")
	ErrUserNotFound  = errors.New("user not found")
)

// CardStore persists cards. GetByIDForUpdate takes a row-level lock and is
// only meaningful inside ExecuteInTransaction.
type CardStore interface {
	Create(card *models.Card) error
	GetByID(id uint) (*models.Card, error)
	GetByIDForUpdate(id uint) (*models.Card, error)
	GetAll() ([]models.Card, error)
	GetAllByOwner(userID uint) ([]models.Card, error)
	Update(card *models.Card) error
	Delete(id uint) error
	CreateBlockRequest(req *models.BlockRequest) error
	GetBlockRequests() ([]models.BlockRequest, error)
}

// LimitStore persists per-card spending limits.
type LimitStore interface {
	GetLimitsByCard(cardID uint) ([]models.CardLimit, error)
	GetLimitByCardAndKind(cardID uint, kind models.LimitKind) (*models.CardLimit, error)
	SaveLimit(limit *models.CardLimit) error
}

// TransactionStore is the append-only transaction ledger.
type TransactionStore interface {
	AppendTransaction(tx *models.Transaction) error
	GetTransactionsByCard(cardID uint) ([]models.Transaction, error)
}

// Store groups the card, limit and transaction stores behind one
// transactional boundary. ExecuteInTransaction runs fn against a store bound
// to a single database transaction; everything fn writes commits or rolls
// back as a unit.
type Store interface {
	CardStore
	LimitStore
	TransactionStore
	ExecuteInTransaction(fn func(Store) error) error
}
