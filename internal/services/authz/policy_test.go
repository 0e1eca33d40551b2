package authz

import (
	"testing"

	"cardbank/internal/models"

	"github.com/stretchr/testify/assert"
)

func ownedCard(userID uint) *models.Card {
	return &models.Card{ID: 1, UserID: &userID}
}

func TestCanRead(t *testing.T) {
	tests := []struct {
		name string
		p    models.Principal
		card *models.Card
		want bool
	}{
		{"owner", models.Principal{UserID: 7, Role: models.RoleUser}, ownedCard(7), true},
		{"other user", models.Principal{UserID: 8, Role: models.RoleUser}, ownedCard(7), false},
		{"admin sees any card", models.Principal{UserID: 99, Role: models.RoleAdmin}, ownedCard(7), true},
		{"unassigned card", models.Principal{UserID: 7, Role: models.RoleUser}, &models.Card{ID: 1}, false},
		{"admin sees unassigned card", models.Principal{UserID: 99, Role: models.RoleAdmin}, &models.Card{ID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRead(tt.p, tt.card))
		})
	}
}

func TestOwnsHasNoAdminOverride(t *testing.T) {
	card := ownedCard(7)

	assert.True(t, Owns(models.Principal{UserID: 7, Role: models.RoleUser}, card))
	assert.False(t, Owns(models.Principal{UserID: 8, Role: models.RoleUser}, card))
	assert.False(t, Owns(models.Principal{UserID: 99, Role: models.RoleAdmin}, card))
}

func TestAuthorizeRead(t *testing.T) {
	card := ownedCard(7)

	assert.NoError(t, AuthorizeRead(models.Principal{UserID: 7, Role: models.RoleUser}, card))
	assert.ErrorIs(t, AuthorizeRead(models.Principal{UserID: 8, Role: models.RoleUser}, card), ErrAccessDenied)
}
