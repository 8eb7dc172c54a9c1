package policy

import (
	"time"

	"toolbox/internal/domain/entity"
	domainerrors "toolbox/internal/domain/errors"
)

// DailySubmissionLimiter caps non-admin template submissions at one per UTC calendar day.
// The only state it needs is User.LastServiceCreationDate.
type DailySubmissionLimiter struct{}

// NewDailySubmissionLimiter returns the limiter.
func NewDailySubmissionLimiter() DailySubmissionLimiter {
	return DailySubmissionLimiter{}
}

// Allow returns ErrTemplateRateLimited when user already submitted on now's UTC date.
func (DailySubmissionLimiter) Allow(user *entity.User, now time.Time) error {
	if user.LastServiceCreationDate == nil {
		return nil
	}

	if sameUTCDate(*user.LastServiceCreationDate, now) {
		return domainerrors.ErrTemplateRateLimited.WithDetails(
			"next submission allowed from " + nextUTCDay(now).Format(time.RFC3339),
		)
	}

	return nil
}

// Record stamps the submission time on user.
func (DailySubmissionLimiter) Record(user *entity.User, now time.Time) {
	stamp := now.UTC()
	user.LastServiceCreationDate = &stamp
}

func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()

	return ay == by && am == bm && ad == bd
}

func nextUTCDay(now time.Time) time.Time {
	y, m, d := now.UTC().Date()

	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}
