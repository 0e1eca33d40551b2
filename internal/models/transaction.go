package models

import (
	"time"
)

// Transaction is an immutable record of a balance change on a card.
// Amount is signed: negative for outflow, positive for inflow. A transfer
// produces exactly two records, one per card, with opposite signs.
type Transaction struct {
	ID          uint   `gorm:"primarykey"`
	CardID      uint   `gorm:"not null;index"`
	Amount      Money  `gorm:"type:numeric(19,2);not null"`
	Description string
	Reference   string `gorm:"index"` // correlates the two legs of a transfer
	Timestamp   time.Time
	CreatedAt   time.Time
}
