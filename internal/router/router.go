package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/handler"
	"github.com/iliyamo/lab-desk/internal/middleware"
	"github.com/iliyamo/lab-desk/internal/model"
)

// Every collection follows the same shape: anonymous reads, and writes
// behind JWTAuth plus a role check.  Paths keep the trailing slash;
// main installs AddTrailingSlash so bare paths still match.

// RegisterRoutes registers non-authenticated infrastructure routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz/", handler.Health)
}

// RegisterAuth registers the /api/auth endpoints.  login and refresh
// are open; logout and me need a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/login/", a.Login)
	g.POST("/refresh/", a.Refresh)

	authed := middleware.JWTAuth(jwtSecret)
	g.POST("/logout/", a.Logout, authed)
	g.GET("/me/", a.Me, authed)
}

// adminOnly guards writes on the relational collections.
func adminOnly(jwtSecret string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	}
}

// staffOrAdmin guards writes on the document collections.
func staffOrAdmin(jwtSecret string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleStaff),
	}
}
