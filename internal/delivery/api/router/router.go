// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"toolbox/internal/delivery/api/middleware"
	"toolbox/internal/delivery/api/router/handler"
	"toolbox/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler  *handler.CatalogHandler
	TemplateHandler *handler.TemplateHandler
	FavoriteHandler *handler.FavoriteHandler
	ReviewHandler   *handler.ReviewHandler
	CategoryHandler *handler.CategoryHandler
	ToolHandler     *handler.ToolHandler
	AuthMiddleware  *middleware.AuthMiddleware
	ToolRateLimiter *middleware.ToolRateLimiter
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler  *handler.CatalogHandler
	templateHandler *handler.TemplateHandler
	favoriteHandler *handler.FavoriteHandler
	reviewHandler   *handler.ReviewHandler
	categoryHandler *handler.CategoryHandler
	toolHandler     *handler.ToolHandler
	authMiddleware  *middleware.AuthMiddleware
	toolRateLimiter *middleware.ToolRateLimiter
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:  params.CatalogHandler,
		templateHandler: params.TemplateHandler,
		favoriteHandler: params.FavoriteHandler,
		reviewHandler:   params.ReviewHandler,
		categoryHandler: params.CategoryHandler,
		toolHandler:     params.ToolHandler,
		authMiddleware:  params.AuthMiddleware,
		toolRateLimiter: params.ToolRateLimiter,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require authentication

	// Catalog browsing
	servicesGroup := apiV1.Group("/services")
	{
		servicesGroup.GET("", r.catalogHandler.ListServices)
		servicesGroup.GET("/:id", r.catalogHandler.GetServiceDetail)
		servicesGroup.POST("/:id/use", r.toolHandler.UseService, r.toolRateLimiter.Limit)
		servicesGroup.POST("/:id/favorite", r.favoriteHandler.ToggleFavorite)
		servicesGroup.GET("/:id/reviews", r.reviewHandler.ListReviews)
		servicesGroup.POST("/:id/reviews", r.reviewHandler.AddReview)
	}

	apiV1.GET("/favorites", r.favoriteHandler.ListFavorites)
	apiV1.GET("/categories", r.categoryHandler.ListCategories)
	apiV1.GET("/tools", r.toolHandler.ListTools)

	reviewsGroup := apiV1.Group("/reviews")
	{
		reviewsGroup.PUT("/:id", r.reviewHandler.UpdateReview)
		reviewsGroup.DELETE("/:id", r.reviewHandler.DeleteReview)
	}

	// Template submission (business users and admins; enforced by the usecase)
	apiV1.POST("/templates", r.templateHandler.SubmitTemplate)

	// Admin routes
	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/templates", r.templateHandler.ListPendingTemplates)
		adminGroup.POST("/templates/:id/approve", r.templateHandler.ApproveTemplate)
		adminGroup.POST("/templates/:id/reject", r.templateHandler.RejectTemplate)

		adminGroup.POST("/services", r.catalogHandler.CreateService)
		adminGroup.GET("/services/:id", r.catalogHandler.GetServiceForEdit)
		adminGroup.PUT("/services/:id", r.catalogHandler.UpdateService)
		adminGroup.DELETE("/services/:id", r.catalogHandler.DeleteService)

		adminGroup.POST("/categories", r.categoryHandler.CreateCategory)
		adminGroup.DELETE("/categories/:id", r.categoryHandler.DeleteCategory)
	}
}
