package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups services in the catalog.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
