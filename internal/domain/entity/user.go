package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity projection consumed by the catalog engine.
// Authentication data lives elsewhere; the catalog only needs roles and the submission timestamp.
type User struct {
	ID                      uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	Email                   string     // The user's primary contact email.
	Name                    string     // The user's display name.
	Roles                   Roles      // Roles granted to the account.
	LastServiceCreationDate *time.Time // Last non-admin template submission, nil if never submitted.
	CreatedAt               time.Time  // Timestamp of when this user account was created.
	UpdatedAt               time.Time  // Timestamp of the last modification to this user's data.
}
