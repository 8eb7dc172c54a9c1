package impl

import (
	"context"

	"toolbox/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishCatalogEvent(ctx context.Context, event *service.CatalogEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, req *service.ToolRequest) (*service.ToolResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*service.ToolResponse)

	return resp, args.Error(1)
}

func (m *mockDispatcher) IsRegistered(serviceID uuid.UUID) bool {
	return m.Called(serviceID).Bool(0)
}

func (m *mockDispatcher) Bindings() []service.ToolBinding {
	bindings, _ := m.Called().Get(0).([]service.ToolBinding)

	return bindings
}
