package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Name     string
	Role     Role   `gorm:"not null;default:'USER'"`
	Status   string `gorm:"default:'active'"`
	Cards    []Card `gorm:"foreignKey:UserID"`
}
