// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"toolbox/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the identity capability: it resolves callers and their roles.
type UserRepository interface {
	// FindByID retrieves a single user, roles included.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindRoles returns the roles held by a user. An unknown user yields ErrUserNotFound.
	FindRoles(ctx context.Context, id uuid.UUID) (entity.Roles, error)

	// UpdateLastServiceCreationDate stamps the daily submission window of a user.
	UpdateLastServiceCreationDate(ctx context.Context, id uuid.UUID, at time.Time) error
}
