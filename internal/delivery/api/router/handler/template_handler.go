package handler

import (
	"log/slog"
	"net/http"

	"toolbox/internal/delivery/api/response"
	"toolbox/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TemplateHandlerParams holds dependencies for TemplateHandler, injected by Fx.
type TemplateHandlerParams struct {
	fx.In

	TemplateUC usecase.TemplateUsecase
	Logger     *slog.Logger
}

// TemplateHandler serves template submission and moderation.
type TemplateHandler struct {
	templateUC usecase.TemplateUsecase
	logger     *slog.Logger
}

// NewTemplateHandler is the constructor for TemplateHandler
func NewTemplateHandler(params TemplateHandlerParams) *TemplateHandler {
	return &TemplateHandler{
		templateUC: params.TemplateUC,
		logger:     params.Logger,
	}
}

// SubmitTemplate handles POST /templates
func (h *TemplateHandler) SubmitTemplate(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}

	var req usecase.ServiceInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	svc, err := h.templateUC.SubmitTemplate(c.Request().Context(), actor, req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toServiceResponse(svc))
}

// ListPendingTemplates handles GET /admin/templates
func (h *TemplateHandler) ListPendingTemplates(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}

	services, err := h.templateUC.ListPendingTemplates(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toServiceResponses(services))
}

// ApproveTemplate handles POST /admin/templates/:id/approve
func (h *TemplateHandler) ApproveTemplate(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "template")
	if !ok {
		return err
	}

	svc, err := h.templateUC.ApproveTemplate(c.Request().Context(), actor, serviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toServiceResponse(svc))
}

// RejectTemplate handles POST /admin/templates/:id/reject
func (h *TemplateHandler) RejectTemplate(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "template")
	if !ok {
		return err
	}

	if err := h.templateUC.RejectTemplate(c.Request().Context(), actor, serviceID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Template rejected"})
}
