package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinReviewRating is the lowest accepted rating.
	MinReviewRating = 1
	// MaxReviewRating is the highest accepted rating.
	MaxReviewRating = 5
)

// Review is a user's rating and comment on a published service.
// A user may hold several reviews for the same service.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ServiceID uuid.UUID `json:"service_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the review was written by the given user.
func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// ReviewSummary contains aggregate review statistics for a service.
type ReviewSummary struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}
