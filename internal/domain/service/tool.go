package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// ToolKind identifies a built-in tool implementation.
type ToolKind string

// ToolRequest is the input handed to a tool. Payload is tool specific JSON.
type ToolRequest struct {
	ServiceID uuid.UUID       `json:"service_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// ToolResponse is the output of a tool. Binary output sets Content and ContentType,
// structured output sets Result.
type ToolResponse struct {
	IsSuccess    bool   `json:"is_success"`
	ErrorMessage string `json:"error_message,omitempty"`
	Result       any    `json:"result,omitempty"`
	ContentType  string `json:"-"`
	Content      []byte `json:"-"`
	FileName     string `json:"-"`
}

// Failure builds an unsuccessful response.
func Failure(message string) *ToolResponse {
	return &ToolResponse{IsSuccess: false, ErrorMessage: message}
}

// Success builds a successful structured response.
func Success(result any) *ToolResponse {
	return &ToolResponse{IsSuccess: true, Result: result}
}

// ToolHandler is a single tool implementation. A handler is created for one request only.
type ToolHandler interface {
	Execute(ctx context.Context, req *ToolRequest) *ToolResponse
}

// ToolFactory builds a fresh handler for each dispatched request.
type ToolFactory func() ToolHandler

// ToolKinds maps every known tool kind to its factory.
type ToolKinds map[ToolKind]ToolFactory

// ToolBinding associates a service identity with a tool kind.
type ToolBinding struct {
	ServiceID uuid.UUID `json:"service_id"`
	Kind      ToolKind  `json:"kind"`
}

// ToolDispatcher routes a request to the handler registered for its service identity.
type ToolDispatcher interface {
	// Dispatch returns ErrToolNotRegistered when no handler is bound to req.ServiceID.
	Dispatch(ctx context.Context, req *ToolRequest) (*ToolResponse, error)

	// IsRegistered reports whether a handler is bound to serviceID.
	IsRegistered(serviceID uuid.UUID) bool

	// Bindings lists the registered identities, sorted by service id.
	Bindings() []ToolBinding
}
