package service

import (
	"context"
	"time"
)

// CatalogEventType names a state change in the catalog.
type CatalogEventType string

const (
	CatalogEventTemplateSubmitted CatalogEventType = "template.submitted"
	CatalogEventTemplateApproved  CatalogEventType = "template.approved"
	CatalogEventTemplateRejected  CatalogEventType = "template.rejected"
	CatalogEventServiceDeleted    CatalogEventType = "service.deleted"
)

// CatalogEvent is published after a catalog change has been committed.
type CatalogEvent struct {
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       CatalogEventType `json:"type"`
	ServiceID  string           `json:"service_id"`
	Title      string           `json:"title"`
	ActorID    string           `json:"actor_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishCatalogEvent publishes a catalog event to downstream consumers
	PublishCatalogEvent(ctx context.Context, event *CatalogEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
