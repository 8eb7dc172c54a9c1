// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a usecase, resolved by the delivery layer.
type Actor struct {
	UserID uuid.UUID
	Roles  entity.Roles
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Roles.IsAdmin()
}
