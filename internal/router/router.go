// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/passenger-registry/internal/handler"
	"github.com/iliyamo/passenger-registry/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication: the health
// check used by load balancers and the Prometheus metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the auth endpoints under /api/auth. Login,
// register, refresh and logout are open; /me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login)
	g.POST("/register", a.Register)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPassengers registers all record endpoints under /api/passengers,
// protected by JWT auth. The response cache wraps only the list and search
// reads; file downloads are generated fresh on every request.
func RegisterPassengers(e *echo.Echo, h *handler.PassengerHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/passengers", middleware.JWTAuth(jwtSecret))

	g.GET("", h.List, cache)
	g.GET("/search", h.Search, cache)
	g.GET("/export", h.Export)
	g.GET("/template", h.Template)
	g.GET("/instructions", h.Instructions)
	g.GET("/:id", h.Get)

	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	g.POST("/bulk-import", h.BulkImport)
	g.POST("/import", h.ImportFile)
}
