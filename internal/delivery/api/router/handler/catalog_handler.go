package handler

import (
	"log/slog"
	"net/http"

	"toolbox/internal/delivery/api/response"
	"toolbox/internal/domain/entity"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves catalog browsing and the admin editing path.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ListServices handles GET /services with optional category_id, access_tier, search, sort, limit and offset.
func (h *CatalogHandler) ListServices(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}

	var (
		query       usecase.ListServicesQuery
		categoryRaw string
		tierRaw     string
	)
	bindErr := echo.QueryParamsBinder(c).
		String("category_id", &categoryRaw).
		String("access_tier", &tierRaw).
		String("search", &query.Search).
		String("sort", &query.Sort).
		Int("limit", &query.Limit).
		Int("offset", &query.Offset).
		BindError()
	if bindErr != nil {
		return response.BadRequest(c, "INVALID_QUERY", "Invalid query parameters")
	}
	if categoryRaw != "" {
		categoryID, err := uuid.Parse(categoryRaw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid category ID")
		}
		query.CategoryID = &categoryID
	}
	if tierRaw != "" {
		tier := entity.AccessTier(tierRaw)
		query.AccessTier = &tier
	}

	page, err := h.catalogUC.ListServices(c.Request().Context(), actor, query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toServicePageResponse(page))
}

// GetServiceDetail handles GET /services/:id
func (h *CatalogHandler) GetServiceDetail(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "service")
	if !ok {
		return err
	}

	view, err := h.catalogUC.GetServiceDetail(c.Request().Context(), actor, serviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toServiceViewResponse(view))
}

// CreateService handles POST /admin/services
func (h *CatalogHandler) CreateService(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}

	var req usecase.ServiceInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	svc, err := h.catalogUC.CreateService(c.Request().Context(), actor, req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toServiceResponse(svc))
}

// GetServiceForEdit handles GET /admin/services/:id
func (h *CatalogHandler) GetServiceForEdit(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "service")
	if !ok {
		return err
	}

	svc, err := h.catalogUC.GetServiceForEdit(c.Request().Context(), actor, serviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toServiceResponse(svc))
}

// UpdateService handles PUT /admin/services/:id
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "service")
	if !ok {
		return err
	}

	var req usecase.ServiceInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	svc, err := h.catalogUC.UpdateService(c.Request().Context(), actor, serviceID, req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toServiceResponse(svc))
}

// DeleteService handles DELETE /admin/services/:id
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "service")
	if !ok {
		return err
	}

	if err := h.catalogUC.DeleteService(c.Request().Context(), actor, serviceID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Service deleted successfully"})
}
