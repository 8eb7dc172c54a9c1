package handler

import (
	"time"

	"toolbox/internal/delivery/api/middleware"
	"toolbox/internal/delivery/api/response"
	"toolbox/internal/delivery/api/validator"
	"toolbox/internal/domain/entity"
	"toolbox/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ServiceResponse is the JSON shape of a catalog entry.
type ServiceResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	CategoryID       uuid.UUID  `json:"category_id"`
	AccessTier       string     `json:"access_tier"`
	State            string     `json:"state"`
	CreatedByUserID  uuid.UUID  `json:"created_by_user_id"`
	ApprovedByUserID *uuid.UUID `json:"approved_by_user_id,omitempty"`
	ApprovedOn       *time.Time `json:"approved_on,omitempty"`
	ViewsCount       int64      `json:"views_count"`
	CreatedOn        time.Time  `json:"created_on"`
	ModifiedOn       time.Time  `json:"modified_on"`
}

// ServiceViewResponse is a catalog entry annotated for the caller.
type ServiceViewResponse struct {
	ServiceResponse
	IsFavorite    bool    `json:"is_favorite"`
	CanUse        bool    `json:"can_use"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// ServicePageResponse is one page of the catalog.
type ServicePageResponse struct {
	Items  []ServiceViewResponse `json:"items"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// FavoriteToggleResponse reports the favorite state after a toggle.
type FavoriteToggleResponse struct {
	ServiceID  uuid.UUID `json:"service_id"`
	IsFavorite bool      `json:"is_favorite"`
}

// CreateCategoryRequest is the body of a category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func toServiceResponse(svc *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:               svc.ID,
		Title:            svc.Title,
		Description:      svc.Description,
		CategoryID:       svc.CategoryID,
		AccessTier:       string(svc.AccessTier),
		State:            string(svc.State),
		CreatedByUserID:  svc.CreatedByUserID,
		ApprovedByUserID: svc.ApprovedByUserID,
		ApprovedOn:       svc.ApprovedOn,
		ViewsCount:       svc.ViewsCount,
		CreatedOn:        svc.CreatedOn,
		ModifiedOn:       svc.ModifiedOn,
	}
}

func toServiceResponses(services []*entity.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, toServiceResponse(svc))
	}

	return result
}

func toServiceViewResponse(view *usecase.ServiceView) ServiceViewResponse {
	return ServiceViewResponse{
		ServiceResponse: toServiceResponse(view.Service),
		IsFavorite:      view.IsFavorite,
		CanUse:          view.CanUse,
		ReviewCount:     view.ReviewCount,
		AverageRating:   view.AverageRating,
	}
}

func toServicePageResponse(page *usecase.ServicePage) ServicePageResponse {
	items := make([]ServiceViewResponse, 0, len(page.Items))
	for _, view := range page.Items {
		items = append(items, toServiceViewResponse(view))
	}

	return ServicePageResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}

// requireActor fetches the authenticated caller or writes a 401.
func requireActor(c echo.Context) (usecase.Actor, bool, error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return usecase.Actor{}, false, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return actor, true, nil
}

// pathID parses a UUID path parameter or writes a 400.
func pathID(c echo.Context, name, label string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false, response.BadRequest(c, "INVALID_ID", "Invalid "+label+" ID")
	}

	return id, true, nil
}

// bindAndValidate binds the request body into dst and validates it, writing a 400 on failure.
func bindAndValidate(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, response.BindingError(c, "INVALID_INPUT", "Invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return false, response.BadRequestWithDetails(c, "VALIDATION_ERROR", "Input validation failed", validationDetails(err))
	}

	return true, nil
}

func validationDetails(err error) any {
	if fields := validator.FieldErrors(err); fields != nil {
		return fields
	}

	return err.Error()
}
