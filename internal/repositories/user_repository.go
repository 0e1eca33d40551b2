package repositories

import (
	"cardbank/internal/models"
)

// UserRepository persists users. Only the lookups the auth and card
// assignment paths need.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
