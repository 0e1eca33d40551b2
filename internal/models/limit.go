package models

import (
	"time"
)

// LimitKind identifies the rolling window a spending limit covers.
type LimitKind string

const (
	LimitKindDay   LimitKind = "DAY"
	LimitKindMonth LimitKind = "MONTH"
)

// Valid reports whether the kind is one of the closed set.
func (k LimitKind) Valid() bool {
	return k == LimitKindDay || k == LimitKindMonth
}

// CardLimit caps cumulative debits on a card within a recurring window.
// Remaining only decreases inside a window; an expired window is reset
// (remaining back to cap, fresh start/end) before it is consulted.
type CardLimit struct {
	ID          uint      `gorm:"primarykey"`
	CardID      uint      `gorm:"not null;index"`
	Kind        LimitKind `gorm:"not null"`
	Cap         Money     `gorm:"type:numeric(19,2);not null"`
	Remaining   Money     `gorm:"type:numeric(19,2);not null"`
	WindowStart time.Time `gorm:"not null"`
	WindowEnd   time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
