// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ecowatch/internal/delivery/http/middleware"
	"ecowatch/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	ReportHandler   *handler.ReportHandler
	LocationHandler *handler.LocationHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	reportHandler   *handler.ReportHandler
	locationHandler *handler.LocationHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		reportHandler:   params.ReportHandler,
		locationHandler: params.LocationHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Login entry point, target of RequireAuth redirects
	e.GET("/login", r.authHandler.LoginPage)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me)
	}

	// Report routes that require a valid session
	reportGroup := e.Group("/reports")
	reportGroup.Use(r.authMiddleware.RequireAuth)
	{
		reportGroup.POST("", r.reportHandler.Create)
		reportGroup.GET("", r.reportHandler.ListMine)
		reportGroup.GET("/nearby", r.reportHandler.Nearby)
		reportGroup.GET("/:id", r.reportHandler.Get)
		reportGroup.GET("/:id/qr", r.reportHandler.QR)
	}

	// Location routes that require a valid session
	locationGroup := e.Group("/locations")
	locationGroup.Use(r.authMiddleware.RequireAuth)
	{
		locationGroup.POST("", r.locationHandler.Save)
		locationGroup.GET("", r.locationHandler.ListMine)
	}

	// Admin routes gated on the admin marker cookie
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/reports", r.reportHandler.AdminList)
		adminGroup.POST("/reports/:id/resolve", r.reportHandler.AdminResolve)
	}
}
