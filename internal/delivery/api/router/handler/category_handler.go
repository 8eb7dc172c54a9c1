package handler

import (
	"log/slog"
	"net/http"

	"toolbox/internal/delivery/api/response"
	"toolbox/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
	Logger     *slog.Logger
}

// CategoryHandler serves the category list and admin category management.
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
	logger     *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{
		categoryUC: params.CategoryUC,
		logger:     params.Logger,
	}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, categories)
}

// CreateCategory handles POST /admin/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}

	var req CreateCategoryRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	category, err := h.categoryUC.CreateCategory(c.Request().Context(), actor, req.Name)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, category)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	categoryID, ok, err := pathID(c, "id", "category")
	if !ok {
		return err
	}

	if err := h.categoryUC.DeleteCategory(c.Request().Context(), actor, categoryID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
