package handler

import (
	"log/slog"
	"net/http"

	"toolbox/internal/delivery/api/response"
	"toolbox/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler serves service reviews.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// ListReviews handles GET /services/:id/reviews
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	serviceID, ok, err := pathID(c, "id", "service")
	if !ok {
		return err
	}

	reviews, err := h.reviewUC.ListReviews(c.Request().Context(), serviceID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, reviews)
}

// AddReview handles POST /services/:id/reviews
func (h *ReviewHandler) AddReview(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	serviceID, ok, err := pathID(c, "id", "service")
	if !ok {
		return err
	}

	var req usecase.ReviewInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	review, err := h.reviewUC.AddReview(c.Request().Context(), actor, serviceID, req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, review)
}

// UpdateReview handles PUT /reviews/:id
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	reviewID, ok, err := pathID(c, "id", "review")
	if !ok {
		return err
	}

	var req usecase.ReviewInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), actor, reviewID, req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, review)
}

// DeleteReview handles DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	actor, ok, err := requireActor(c)
	if !ok {
		return err
	}
	reviewID, ok, err := pathID(c, "id", "review")
	if !ok {
		return err
	}

	if err := h.reviewUC.DeleteReview(c.Request().Context(), actor, reviewID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
