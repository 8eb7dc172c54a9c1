// Package dispatch routes tool requests to the handler bound to a service identity.
package dispatch

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	"toolbox/config"
	deliverycontext "toolbox/internal/delivery/context"
	domainerrors "toolbox/internal/domain/errors"
	"toolbox/internal/domain/service"
	"toolbox/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Registry is an immutable service-identity to handler-factory map.
// It is built once at startup and only read afterwards, so it is safe for concurrent use.
type Registry struct {
	factories map[uuid.UUID]service.ToolFactory
	bindings  []service.ToolBinding
	logger    *slog.Logger
}

// NewRegistry binds every service identity to the factory of its tool kind.
// Unknown kinds and duplicate identities are rejected.
func NewRegistry(bindings []service.ToolBinding, kinds service.ToolKinds, logger *slog.Logger) (*Registry, error) {
	factories := make(map[uuid.UUID]service.ToolFactory, len(bindings))
	sorted := make([]service.ToolBinding, 0, len(bindings))

	for _, b := range bindings {
		if b.ServiceID == uuid.Nil {
			return nil, errors.Errorf("tool binding for kind %q has no service id", b.Kind)
		}
		factory, ok := kinds[b.Kind]
		if !ok {
			return nil, errors.Errorf("unknown tool kind %q for service %s", b.Kind, b.ServiceID)
		}
		if _, dup := factories[b.ServiceID]; dup {
			return nil, errors.Errorf("service %s is bound more than once", b.ServiceID)
		}

		factories[b.ServiceID] = factory
		sorted = append(sorted, b)
	}

	slices.SortFunc(sorted, func(a, b service.ToolBinding) int {
		return strings.Compare(a.ServiceID.String(), b.ServiceID.String())
	})

	return &Registry{
		factories: factories,
		bindings:  sorted,
		logger:    logger,
	}, nil
}

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Kinds  service.ToolKinds
	Logger *slog.Logger
}

// New builds the registry from the configured bindings.
func New(params Params) (service.ToolDispatcher, error) {
	var bindings []service.ToolBinding
	if params.Config.Tools != nil {
		for _, b := range params.Config.Tools.Bindings {
			id, err := uuid.Parse(b.ServiceID)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid service id %q in tool bindings", b.ServiceID)
			}
			bindings = append(bindings, service.ToolBinding{ServiceID: id, Kind: service.ToolKind(b.Kind)})
		}
	}

	registry, err := NewRegistry(bindings, params.Kinds, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Tool registry built", slog.Int("bindings", len(bindings)))

	return registry, nil
}

// Dispatch constructs a fresh handler for req.ServiceID, runs it and releases it.
// A miss returns ErrToolNotRegistered; a handler panic is reported as an error.
func (r *Registry) Dispatch(ctx context.Context, req *service.ToolRequest) (resp *service.ToolResponse, err error) {
	factory, ok := r.factories[req.ServiceID]
	if !ok {
		return nil, domainerrors.ErrToolNotRegistered.WithDetails(req.ServiceID.String())
	}

	handler := factory()
	if closer, ok := handler.(io.Closer); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				deliverycontext.GetLoggerOrDefault(ctx, r.logger).Warn("Failed to close tool handler",
					slog.Any("serviceID", req.ServiceID),
					slog.Any("error", cerr),
				)
			}
		}()
	}

	defer func() {
		if rec := recover(); rec != nil {
			resp = nil
			err = errors.Errorf("tool for service %s panicked: %v", req.ServiceID, rec)
		}
	}()

	resp = handler.Execute(ctx, req)
	if resp == nil {
		return nil, errors.Errorf("tool for service %s returned no response", req.ServiceID)
	}

	return resp, nil
}

// IsRegistered reports whether a handler is bound to serviceID.
func (r *Registry) IsRegistered(serviceID uuid.UUID) bool {
	_, ok := r.factories[serviceID]

	return ok
}

// Bindings lists the registered identities, sorted by service id.
func (r *Registry) Bindings() []service.ToolBinding {
	return slices.Clone(r.bindings)
}
