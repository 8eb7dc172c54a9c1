package handler

import (
	"log/slog"
	"net/http"

	"toolbox/internal/delivery/api/response"
	"toolbox/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FavoriteHandlerParams holds dependencies for FavoriteHandler, injected by Fx.
type FavoriteHandlerParams struct {
	fx.In

	FavoriteUC usecase.FavoriteUsecase
	Logger     *slog.Logger
}

// FavoriteHandler serves the caller's favorites.
type FavoriteHandler struct {
	favoriteUC usecase.FavoriteUsecase
	logger     *slog.Logger
}

// NewFavoriteHandler is the constructor for FavoriteHandler
func NewFavoriteHandler(params FavoriteHandlerParams) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUC: params.FavoriteUC,
		logger:     params.Logger,
	}
}

// ToggleFavorite handles POST /services/:id/favorite
func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "service")
	if !ok {
		return err
	}

	isFavorite, err := h.favoriteUC.ToggleFavorite(c.Request().Context(), actor, serviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, FavoriteToggleResponse{
		ServiceID:  serviceID,
		IsFavorite: isFavorite,
	})
}

// ListFavorites handles GET /favorites
func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}

	favorites, err := h.favoriteUC.ListFavorites(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, favorites)
}
