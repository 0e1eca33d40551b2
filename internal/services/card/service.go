// Package card implements the card registry: issuing, assignment, lifecycle
// status, deletion and limit configuration. Balance mutations live in the
// ledger and transfer packages; this package never touches balances.
package card

import (
	"context"
	"errors"
	"time"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
	"cardbank/internal/services/authz"
	"cardbank/internal/services/limit"
	"cardbank/internal/utils"
)

// Service errors
var (
	ErrInvalidCardNumber = errors.New("invalid card number")
)

// CreateCardInput is the input for issuing a new card.
type CreateCardInput struct {
	CardNumber string
	CardHolder string
	ExpiryDate time.Time
}

type Service interface {
	Create(ctx context.Context, input CreateCardInput) (*models.Card, error)
	AssignToUser(ctx context.Context, cardID uint, email string) (*models.Card, error)
	Block(ctx context.Context, cardID uint) (*models.Card, error)
	Activate(ctx context.Context, cardID uint) (*models.Card, error)
	Delete(ctx context.Context, cardID uint) error
	GetAll(ctx context.Context) ([]models.Card, error)
	GetAllForOwner(ctx context.Context, p models.Principal) ([]models.Card, error)
	Get(ctx context.Context, cardID uint, p models.Principal) (*models.Card, error)
	SetLimit(ctx context.Context, cardID uint, kind models.LimitKind, cap models.Money) (*models.CardLimit, error)
	RequestBlock(ctx context.Context, cardID uint, message string, p models.Principal) error
	ListBlockRequests(ctx context.Context) ([]models.BlockRequest, error)
}

type service struct {
	store  repositories.Store
	users  repositories.UserRepository
	limits limit.Service
}

func NewService(store repositories.Store, users repositories.UserRepository, limits limit.Service) Service {
	if store == nil {
		panic("store is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	if limits == nil {
		panic("limit service is required")
	}
	return &service{store: store, users: users, limits: limits}
}

func (s *service) Create(ctx context.Context, input CreateCardInput) (*models.Card, error) {
	if !utils.ValidCardNumber(input.CardNumber) {
		return nil, ErrInvalidCardNumber
	}

	card := &models.Card{
		EncryptedCardNumber: utils.EncryptCardNumber(input.CardNumber),
		MaskedCardNumber:    utils.MaskCardNumber(input.CardNumber),
		CardHolder:          input.CardHolder,
		ExpiryDate:          input.ExpiryDate,
		Status:              models.CardStatusActive,
		Balance:             models.Zero,
	}
	if err := s.store.Create(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) AssignToUser(ctx context.Context, cardID uint, email string) (*models.Card, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	card, err := s.store.GetByID(cardID)
	if err != nil {
		return nil, err
	}
	card.UserID = &user.ID
	if err := s.store.Update(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) Block(ctx context.Context, cardID uint) (*models.Card, error) {
	return s.setStatus(cardID, models.CardStatusBlocked)
}

func (s *service) Activate(ctx context.Context, cardID uint) (*models.Card, error) {
	return s.setStatus(cardID, models.CardStatusActive)
}

func (s *service) setStatus(cardID uint, status string) (*models.Card, error) {
	card, err := s.store.GetByID(cardID)
	if err != nil {
		return nil, err
	}
	card.Status = status
	if err := s.store.Update(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) Delete(ctx context.Context, cardID uint) error {
	return s.store.Delete(cardID)
}

func (s *service) GetAll(ctx context.Context) ([]models.Card, error) {
	return s.store.GetAll()
}

func (s *service) GetAllForOwner(ctx context.Context, p models.Principal) ([]models.Card, error) {
	return s.store.GetAllByOwner(p.UserID)
}

func (s *service) Get(ctx context.Context, cardID uint, p models.Principal) (*models.Card, error) {
	card, err := s.store.GetByID(cardID)
	if err != nil {
		return nil, err
	}
	if err := authz.AuthorizeRead(p, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) SetLimit(ctx context.Context, cardID uint, kind models.LimitKind, cap models.Money) (*models.CardLimit, error) {
	return s.limits.Configure(ctx, cardID, kind, cap)
}

func (s *service) RequestBlock(ctx context.Context, cardID uint, message string, p models.Principal) error {
	card, err := s.store.GetByID(cardID)
	if err != nil {
		return err
	}
	if !authz.Owns(p, card) {
		return authz.ErrAccessDenied
	}
	return s.store.CreateBlockRequest(&models.BlockRequest{CardID: cardID, Message: message})
}

func (s *service) ListBlockRequests(ctx context.Context) ([]models.BlockRequest, error) {
	return s.store.GetBlockRequests()
}
