package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/model"
	"github.com/iliyamo/lab-desk/internal/repository"
)

// ReservationHandler serves /api/Reservations/.
type ReservationHandler struct {
	Repo     *repository.ReservationRepo
	PageSize int
}

func NewReservationHandler(repo *repository.ReservationRepo, pageSize int) *ReservationHandler {
	return &ReservationHandler{Repo: repo, PageSize: pageSize}
}

// show_title is read-only and silently ignored on input.
type reservationReq struct {
	ShowID       uint64                  `json:"show" validate:"required"`
	CustomerName string                  `json:"customer_name" validate:"required,max=120"`
	Seats        int64                   `json:"seats" validate:"required,min=1"`
	Status       model.ReservationStatus `json:"status" validate:"required,oneof=RESERVED CONFIRMED CANCELLED"`
}

func (r *reservationReq) normalize() { r.CustomerName = strings.TrimSpace(r.CustomerName) }

func (r *reservationReq) model(id uint64) *model.Reservation {
	return &model.Reservation{
		ID:           id,
		ShowID:       r.ShowID,
		CustomerName: r.CustomerName,
		Seats:        uint32(r.Seats),
		Status:       r.Status,
	}
}

// List handles GET /api/Reservations/, newest first.
func (h *ReservationHandler) List(c echo.Context) error {
	p, ok := newPager(c, h.PageSize)
	if !ok {
		return invalidPage(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, total, err := h.Repo.List(ctx, p.params())
	if err != nil {
		return storeError(c, err, "reservation")
	}
	if !p.inRange(total) {
		return invalidPage(c)
	}
	return c.JSON(http.StatusOK, pageOf(c, p, total, list))
}

// Get handles GET /api/Reservations/:id/.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	v, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "reservation")
	}
	return c.JSON(http.StatusOK, v)
}

// Create handles POST /api/Reservations/.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	v, err := h.Repo.Create(ctx, req.model(0))
	if err != nil {
		return storeError(c, err, "reservation")
	}
	return c.JSON(http.StatusCreated, v)
}

// Update handles PUT /api/Reservations/:id/.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var req reservationReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	v, err := h.Repo.Update(ctx, req.model(id))
	if err != nil {
		return storeError(c, err, "reservation")
	}
	return c.JSON(http.StatusOK, v)
}

// Delete handles DELETE /api/Reservations/:id/.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		return storeError(c, err, "reservation")
	}
	return c.NoContent(http.StatusNoContent)
}
