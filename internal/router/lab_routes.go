package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/handler"
)

// RegisterLab registers /api/Tests/ and /api/Orders/.  Writes need ADMIN.
func RegisterLab(e *echo.Echo, t *handler.TestHandler, o *handler.OrderHandler, jwtSecret string) {
	g := e.Group("/api")
	admin := adminOnly(jwtSecret)

	// ---- Tests ----
	g.GET("/Tests/", t.List)
	g.GET("/Tests/:id/", t.Get)
	g.POST("/Tests/", t.Create, admin...)
	g.PUT("/Tests/:id/", t.Update, admin...)
	g.DELETE("/Tests/:id/", t.Delete, admin...)

	// ---- Orders ----
	g.GET("/Orders/", o.List)
	g.GET("/Orders/:id/", o.Get)
	g.POST("/Orders/", o.Create, admin...)
	g.PUT("/Orders/:id/", o.Update, admin...)
	g.DELETE("/Orders/:id/", o.Delete, admin...)
}
