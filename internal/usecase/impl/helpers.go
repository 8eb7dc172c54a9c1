// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "toolbox/internal/delivery/context"
	"toolbox/internal/domain/entity"
	domainerrors "toolbox/internal/domain/errors"
	"toolbox/internal/domain/repository"
	"toolbox/internal/domain/service"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// clock is swapped in tests to pin the UTC day.
type clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// loadService fetches a service and translates the repository miss into the domain error.
func loadService(ctx context.Context, repo repository.ServiceRepository, id uuid.UUID) (*entity.Service, error) {
	svc, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, domainerrors.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service")
	}

	return svc, nil
}

// requireCategory returns ErrUnknownCategory unless categoryID exists.
func requireCategory(ctx context.Context, repo repository.CategoryRepository, categoryID uuid.UUID) error {
	if _, err := repo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrUnknownCategory
		}

		return errors.Wrap(err, "failed to find category")
	}

	return nil
}

// validateServiceInput normalizes input in place.
func validateServiceInput(input *usecase.ServiceInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	if input.Title == "" {
		return domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	if input.CategoryID == uuid.Nil {
		return domainerrors.ErrValidationFailed.WithDetails("category is required")
	}
	if !input.AccessTier.IsValid() {
		return domainerrors.ErrInvalidAccessTier
	}

	return nil
}

// translateServiceWriteErr maps repository write failures onto domain errors.
func translateServiceWriteErr(err error, action string) error {
	if errors.Is(err, repository.ErrCategoryReference) {
		return domainerrors.ErrUnknownCategory
	}
	if errors.Is(err, repository.ErrServiceNotFound) {
		return domainerrors.ErrServiceNotFound
	}

	return errors.Wrap(err, "failed to "+action)
}

// eventNotifier publishes catalog events after commit. Delivery failures are logged, never returned.
type eventNotifier struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

func newEventNotifier(publisher service.EventPublisher, logger *slog.Logger) *eventNotifier {
	return &eventNotifier{publisher: publisher, logger: logger}
}

func (n *eventNotifier) notify(ctx context.Context, eventType service.CatalogEventType, svc *entity.Service, actorID uuid.UUID, at time.Time) {
	if n == nil || n.publisher == nil || svc == nil {
		return
	}

	event := &service.CatalogEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		ServiceID:  svc.ID.String(),
		Title:      svc.Title,
		ActorID:    actorID.String(),
		OccurredAt: at,
	}

	if err := n.publisher.PublishCatalogEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, n.logger).Warn("Failed to publish catalog event",
			slog.String("type", string(eventType)),
			slog.String("serviceID", event.ServiceID),
			slog.Any("error", err),
		)
	}
}
