package models

import (
	"time"
)

// Card statuses
const (
	CardStatusActive  = "ACTIVE"
	CardStatusBlocked = "BLOCKED"
)

// Card is an account-like entity holding a balance and belonging to zero or
// one user. The balance is only ever mutated by the ledger and transfer
// services; status and ownership are mutated by admin card operations and
// read by the engine for authorization.
type Card struct {
	ID                  uint   `gorm:"primarykey"`
	EncryptedCardNumber string `gorm:"not null"`
	MaskedCardNumber    string `gorm:"not null"`
	CardHolder          string
	ExpiryDate          time.Time
	Status              string `gorm:"not null;default:'ACTIVE'"`
	Balance             Money  `gorm:"type:numeric(19,2);not null;default:0"`
	UserID              *uint  `gorm:"index"`
	User                *User  `gorm:"foreignKey:UserID"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OwnedBy reports whether the card is assigned to the given user.
func (c *Card) OwnedBy(userID uint) bool {
	return c.UserID != nil && *c.UserID == userID
}

// BlockRequest is a user-filed request to block a card, reviewed by an admin.
type BlockRequest struct {
	ID        uint `gorm:"primarykey"`
	CardID    uint `gorm:"not null;index"`
	Message   string
	CreatedAt time.Time
}
