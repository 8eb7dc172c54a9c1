package dispatch

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"toolbox/config"
	domainerrors "toolbox/internal/domain/errors"
	"toolbox/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoHandler struct {
	closed *atomic.Int32
}

func (h *echoHandler) Execute(_ context.Context, req *service.ToolRequest) *service.ToolResponse {
	return service.Success(string(req.Payload))
}

func (h *echoHandler) Close() error {
	h.closed.Add(1)

	return nil
}

type panicHandler struct{}

func (panicHandler) Execute(context.Context, *service.ToolRequest) *service.ToolResponse {
	panic("boom")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testKinds(closed *atomic.Int32, built *atomic.Int32) service.ToolKinds {
	return service.ToolKinds{
		"echo": func() service.ToolHandler {
			built.Add(1)

			return &echoHandler{closed: closed}
		},
		"panic": func() service.ToolHandler { return panicHandler{} },
	}
}

func TestRegistry_DispatchRoutesAndClosesFreshHandler(t *testing.T) {
	var closed, built atomic.Int32
	id := uuid.New()
	registry, err := NewRegistry([]service.ToolBinding{{ServiceID: id, Kind: "echo"}}, testKinds(&closed, &built), discardLogger())
	require.NoError(t, err)

	for range 3 {
		resp, err := registry.Dispatch(context.Background(), &service.ToolRequest{ServiceID: id, Payload: []byte(`"hi"`)})
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess)
		assert.Equal(t, `"hi"`, resp.Result)
	}

	assert.EqualValues(t, 3, built.Load())
	assert.EqualValues(t, 3, closed.Load())
	assert.True(t, registry.IsRegistered(id))
}

func TestRegistry_DispatchMissIsTypedNotPanic(t *testing.T) {
	var closed, built atomic.Int32
	registry, err := NewRegistry(nil, testKinds(&closed, &built), discardLogger())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		resp, err := registry.Dispatch(context.Background(), &service.ToolRequest{ServiceID: uuid.New()})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, domainerrors.ErrToolNotRegistered)
		assert.Equal(t, domainerrors.KindDispatchMiss, domainerrors.KindOf(err))
	})
}

func TestRegistry_HandlerPanicBecomesError(t *testing.T) {
	var closed, built atomic.Int32
	id := uuid.New()
	registry, err := NewRegistry([]service.ToolBinding{{ServiceID: id, Kind: "panic"}}, testKinds(&closed, &built), discardLogger())
	require.NoError(t, err)

	resp, err := registry.Dispatch(context.Background(), &service.ToolRequest{ServiceID: id})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.Equal(t, domainerrors.KindInternal, domainerrors.KindOf(err))
}

func TestNewRegistry_RejectsBadBindings(t *testing.T) {
	var closed, built atomic.Int32
	id := uuid.New()

	_, err := NewRegistry([]service.ToolBinding{{ServiceID: id, Kind: "teleport"}}, testKinds(&closed, &built), discardLogger())
	assert.ErrorContains(t, err, "unknown tool kind")

	_, err = NewRegistry([]service.ToolBinding{{ServiceID: id, Kind: "echo"}, {ServiceID: id, Kind: "panic"}}, testKinds(&closed, &built), discardLogger())
	assert.ErrorContains(t, err, "more than once")

	_, err = NewRegistry([]service.ToolBinding{{Kind: "echo"}}, testKinds(&closed, &built), discardLogger())
	assert.ErrorContains(t, err, "no service id")
}

func TestRegistry_ConcurrentDispatch(t *testing.T) {
	var closed, built atomic.Int32
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	bindings := make([]service.ToolBinding, 0, len(ids))
	for _, id := range ids {
		bindings = append(bindings, service.ToolBinding{ServiceID: id, Kind: "echo"})
	}
	registry, err := NewRegistry(bindings, testKinds(&closed, &built), discardLogger())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 60 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := registry.Dispatch(context.Background(), &service.ToolRequest{ServiceID: ids[i%len(ids)]})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 60, closed.Load())
	assert.Len(t, registry.Bindings(), 3)
}

func TestNew_ParsesConfiguredBindings(t *testing.T) {
	var closed, built atomic.Int32
	id := uuid.New()
	cfg := &config.Config{Tools: &config.ToolsConfig{Bindings: []config.ToolBindingConfig{{ServiceID: id.String(), Kind: "echo"}}}}

	dispatcher, err := New(Params{Config: cfg, Kinds: testKinds(&closed, &built), Logger: discardLogger()})
	require.NoError(t, err)
	assert.True(t, dispatcher.IsRegistered(id))

	cfg.Tools.Bindings[0].ServiceID = "not-a-uuid"
	_, err = New(Params{Config: cfg, Kinds: testKinds(&closed, &built), Logger: discardLogger()})
	assert.Error(t, err)
}
