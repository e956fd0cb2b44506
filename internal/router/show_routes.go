package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/handler"
)

// RegisterShows registers /api/Shows/ and /api/Reservations/.  Writes
// need ADMIN.
func RegisterShows(e *echo.Echo, s *handler.ShowHandler, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/api")
	admin := adminOnly(jwtSecret)

	// ---- Shows ----
	g.GET("/Shows/", s.List)
	g.GET("/Shows/:id/", s.Get)
	g.POST("/Shows/", s.Create, admin...)
	g.PUT("/Shows/:id/", s.Update, admin...)
	g.DELETE("/Shows/:id/", s.Delete, admin...)

	// ---- Reservations ----
	g.GET("/Reservations/", r.List)
	g.GET("/Reservations/:id/", r.Get)
	g.POST("/Reservations/", r.Create, admin...)
	g.PUT("/Reservations/:id/", r.Update, admin...)
	g.DELETE("/Reservations/:id/", r.Delete, admin...)
}
