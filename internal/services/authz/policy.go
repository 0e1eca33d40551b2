// Package authz is the authorization policy consumed by the ledger and
// transfer services. It decides eligibility from an explicit principal and
// the card's ownership; it never inspects ambient request state.
package authz

import (
	"errors"

	"cardbank/internal/models"
)

// ErrAccessDenied is returned when a principal is not authorized for the
// target card. Read paths report it to callers with the same generic
// failure as any other bad request so that foreign card IDs are not
// distinguishable from unknown ones.
var ErrAccessDenied = errors.New("access denied")

// CanRead reports whether the principal may view the card and its
// transactions: admins, or the owning user.
func CanRead(p models.Principal, card *models.Card) bool {
	return p.IsAdmin() || card.OwnedBy(p.UserID)
}

// Owns reports whether the principal is the card's owning user. Self-service
// paths (transfers, block requests) use this directly: an admin acting as
// caller gets no override there.
func Owns(p models.Principal, card *models.Card) bool {
	return card.OwnedBy(p.UserID)
}

// AuthorizeRead returns ErrAccessDenied unless CanRead holds.
func AuthorizeRead(p models.Principal, card *models.Card) error {
	if !CanRead(p, card) {
		return ErrAccessDenied
	}
	return nil
}
