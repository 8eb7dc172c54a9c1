package impl

import (
	"context"
	"encoding/json"
	"log/slog"

	deliverycontext "toolbox/internal/delivery/context"
	"toolbox/internal/domain/policy"
	"toolbox/internal/domain/repository"
	"toolbox/internal/domain/service"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// toolService implements the ToolUsecase interface.
type toolService struct {
	serviceRepo repository.ServiceRepository
	dispatcher  service.ToolDispatcher
	logger      *slog.Logger
}

// NewToolService is the constructor for toolService.
func NewToolService(
	serviceRepo repository.ServiceRepository,
	dispatcher service.ToolDispatcher,
	logger *slog.Logger,
) usecase.ToolUsecase {
	return &toolService{
		serviceRepo: serviceRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// UseService invokes the tool behind serviceID once the actor's entitlement has been checked.
// The tool response is returned as produced, including unsuccessful ones.
func (srv *toolService) UseService(ctx context.Context, actor usecase.Actor, serviceID uuid.UUID, payload json.RawMessage) (*service.ToolResponse, error) {
	svc, err := loadService(ctx, srv.serviceRepo, serviceID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireUse(actor.Roles, svc); err != nil {
		return nil, err
	}

	resp, err := srv.dispatcher.Dispatch(ctx, &service.ToolRequest{
		ServiceID: serviceID,
		Payload:   payload,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to dispatch tool request")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Tool invoked",
		slog.Any("serviceID", serviceID),
		slog.Any("userID", actor.UserID),
		slog.Bool("success", resp.IsSuccess),
	)

	return resp, nil
}

// ListTools returns the registered service identities and their tool kinds.
func (srv *toolService) ListTools(_ context.Context) []service.ToolBinding {
	return srv.dispatcher.Bindings()
}
