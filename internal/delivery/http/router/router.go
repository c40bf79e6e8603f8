// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"geosynth/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ZoneHandler *handler.ZoneHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	zoneHandler *handler.ZoneHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		zoneHandler: params.ZoneHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Interest zone routes; identity comes from the gateway header
	zoneGroup := e.Group("/zones")
	{
		zoneGroup.POST("", r.zoneHandler.CreateZone)
		zoneGroup.GET("", r.zoneHandler.GetZones)
		zoneGroup.PATCH("/:id", r.zoneHandler.UpdateZone)
		zoneGroup.DELETE("/:id", r.zoneHandler.DeleteZone)
	}
}
