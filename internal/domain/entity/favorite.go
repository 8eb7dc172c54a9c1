package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a published service as a user's favorite. The (UserID, ServiceID) pair is unique.
type Favorite struct {
	UserID    uuid.UUID `json:"user_id"`
	ServiceID uuid.UUID `json:"service_id"`
	CreatedAt time.Time `json:"created_at"`
}
