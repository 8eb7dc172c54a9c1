package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccessTier is the entitlement class of a published service.
type AccessTier string

const (
	// AccessTierFree is open to every authenticated role.
	AccessTierFree AccessTier = "free"
	// AccessTierPartial is open to every authenticated role; it only differs from Free in presentation.
	AccessTierPartial AccessTier = "partial"
	// AccessTierPremium is restricted to business users and admins.
	AccessTierPremium AccessTier = "premium"
)

// IsValid checks if the AccessTier is a known value.
func (t AccessTier) IsValid() bool {
	switch t {
	case AccessTierFree, AccessTierPartial, AccessTierPremium:
		return true
	default:
		return false
	}
}

// IsOpen reports whether any authenticated role may use a service of this tier.
func (t AccessTier) IsOpen() bool {
	return t == AccessTierFree || t == AccessTierPartial
}

// ServiceState is the lifecycle state of a catalog entry.
type ServiceState string

const (
	// ServiceStatePublished is an ordinary catalog entry.
	ServiceStatePublished ServiceState = "published"
	// ServiceStatePending is a user-submitted template awaiting moderation.
	ServiceStatePending ServiceState = "pending"
	// ServiceStateRejected is terminal; rejected services are deleted and never stored with this state.
	ServiceStateRejected ServiceState = "rejected"
)

// Service is the aggregate root of the catalog: one invocable tool plus its entitlement and lifecycle metadata.
type Service struct {
	ID               uuid.UUID
	Title            string
	Description      string
	CategoryID       uuid.UUID
	AccessTier       AccessTier
	State            ServiceState
	CreatedByUserID  uuid.UUID
	ApprovedByUserID *uuid.UUID
	ApprovedOn       *time.Time
	ViewsCount       int64
	CreatedOn        time.Time
	ModifiedOn       time.Time
}

// IsTemplate reports whether the entry is still a proposal outside the public catalog.
func (s *Service) IsTemplate() bool {
	return s.State == ServiceStatePending
}

// IsApproved reports whether an admin accepted the entry (or authored it).
func (s *Service) IsApproved() bool {
	return s.State == ServiceStatePublished
}

// IsPublished reports whether the entry is part of the public catalog.
func (s *Service) IsPublished() bool {
	return s.State == ServiceStatePublished
}

// Publish graduates a pending template into an ordinary catalog entry.
func (s *Service) Publish(approverID uuid.UUID, at time.Time) {
	approvedOn := at
	s.State = ServiceStatePublished
	s.ApprovedByUserID = &approverID
	s.ApprovedOn = &approvedOn
	s.ModifiedOn = at
}

// ServiceStateFromFlags translates the persisted boolean pair into a lifecycle state.
// Only a template without approval is pending; every other combination reads as published.
func ServiceStateFromFlags(isTemplate, isApproved bool) ServiceState {
	if isTemplate && !isApproved {
		return ServiceStatePending
	}

	return ServiceStatePublished
}

// Flags translates a lifecycle state into the persisted (isTemplate, isApproved) pair.
func (st ServiceState) Flags() (isTemplate, isApproved bool) {
	if st == ServiceStatePending {
		return true, false
	}

	return false, true
}
