package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"toolbox/internal/delivery/api/response"
	"toolbox/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ToolHandlerParams holds dependencies for ToolHandler, injected by Fx.
type ToolHandlerParams struct {
	fx.In

	ToolUC usecase.ToolUsecase
	Logger *slog.Logger
}

// ToolHandler invokes the tool behind a catalog entry.
type ToolHandler struct {
	toolUC usecase.ToolUsecase
	logger *slog.Logger
}

// NewToolHandler is the constructor for ToolHandler
func NewToolHandler(params ToolHandlerParams) *ToolHandler {
	return &ToolHandler{
		toolUC: params.ToolUC,
		logger: params.Logger,
	}
}

// UseService handles POST /services/:id/use. The request body is handed to the tool as its payload.
func (h *ToolHandler) UseService(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "service")
	if !ok {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Unable to read request body")
	}
	var payload json.RawMessage
	if len(body) > 0 {
		if !json.Valid(body) {
			return response.BadRequest(c, "INVALID_PAYLOAD", "Tool payload must be valid JSON")
		}
		payload = body
	}

	result, err := h.toolUC.UseService(c.Request().Context(), actor, serviceID, payload)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if !result.IsSuccess {
		return response.Error(c, http.StatusUnprocessableEntity, "TOOL_EXECUTION_FAILED", result.ErrorMessage, nil)
	}

	if result.Content != nil {
		if result.FileName != "" {
			c.Response().Header().Set(echo.HeaderContentDisposition,
				mime.FormatMediaType("inline", map[string]string{"filename": result.FileName}))
		}

		return c.Blob(http.StatusOK, result.ContentType, result.Content)
	}

	return response.Success(c, http.StatusOK, result)
}

// ListTools handles GET /tools
func (h *ToolHandler) ListTools(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.toolUC.ListTools(c.Request().Context()))
}
