package usecase

import (
	"context"
	"encoding/json"

	"toolbox/internal/domain/service"

	"github.com/google/uuid"
)

// ToolUsecase invokes the tool behind a catalog entry.
type ToolUsecase interface {
	// UseService checks entitlement and dispatches payload to the registered tool.
	UseService(ctx context.Context, actor Actor, serviceID uuid.UUID, payload json.RawMessage) (*service.ToolResponse, error)
	ListTools(ctx context.Context) []service.ToolBinding
}
