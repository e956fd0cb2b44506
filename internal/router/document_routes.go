package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/handler"
)

// RegisterDocuments registers the Redis-backed collections.  Writes are
// open to STAFF as well as ADMIN.
func RegisterDocuments(e *echo.Echo, d *handler.DocumentHandler, jwtSecret string) {
	g := e.Group("/api")
	staff := staffOrAdmin(jwtSecret)

	g.GET("/catalog-types/", d.ListCatalogTypes)
	g.GET("/catalog-types/:id/", d.GetCatalogType)
	g.POST("/catalog-types/", d.CreateCatalogType, staff...)
	g.DELETE("/catalog-types/:id/", d.DeleteCatalogType, staff...)

	g.GET("/order-events/", d.ListOrderEvents)
	g.GET("/order-events/:id/", d.GetOrderEvent)
	g.POST("/order-events/", d.CreateOrderEvent, staff...)
	g.DELETE("/order-events/:id/", d.DeleteOrderEvent, staff...)
}
