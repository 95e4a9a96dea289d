// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"dropradar/config"
	"dropradar/internal/delivery/api/middleware"
	"dropradar/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DropHandler     *handler.DropHandler
	LocationHandler *handler.LocationHandler
	TestHandler     *handler.TestHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	dropHandler     *handler.DropHandler
	locationHandler *handler.LocationHandler
	testHandler     *handler.TestHandler
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		dropHandler:     params.DropHandler,
		locationHandler: params.LocationHandler,
		testHandler:     params.TestHandler,
		authMiddleware:  params.AuthMiddleware,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// API v1 routes all require an access token
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	dropsGroup := apiV1.Group("/drops")
	{
		dropsGroup.GET("/nearby", r.dropHandler.FindNearby)
		dropsGroup.GET("/:id", r.dropHandler.GetDrop)
	}

	locationGroup := apiV1.Group("/location")
	{
		locationGroup.PUT("", r.locationHandler.ReportLocation)
		locationGroup.GET("", r.locationHandler.GetLocation)
	}
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.POST("/token", r.testHandler.IssueToken)
		testGroup.GET("/auth", r.testHandler.TestAuthMiddleware, r.authMiddleware.Authenticate)
	}
}
