package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/model"
	"github.com/iliyamo/lab-desk/internal/repository"
)

// ShowHandler serves /api/Shows/.
type ShowHandler struct {
	Repo     *repository.ShowRepo
	PageSize int
}

func NewShowHandler(repo *repository.ShowRepo, pageSize int) *ShowHandler {
	return &ShowHandler{Repo: repo, PageSize: pageSize}
}

type showReq struct {
	MovieTitle string `json:"movie_title" validate:"required,max=200"`
}

func (r *showReq) normalize() { r.MovieTitle = strings.TrimSpace(r.MovieTitle) }

// List handles GET /api/Shows/.
func (h *ShowHandler) List(c echo.Context) error {
	p, ok := newPager(c, h.PageSize)
	if !ok {
		return invalidPage(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	shows, total, err := h.Repo.List(ctx, p.params())
	if err != nil {
		return storeError(c, err, "show")
	}
	if !p.inRange(total) {
		return invalidPage(c)
	}
	return c.JSON(http.StatusOK, pageOf(c, p, total, shows))
}

// Get handles GET /api/Shows/:id/.
func (h *ShowHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "show")
	}
	return c.JSON(http.StatusOK, s)
}

// Create handles POST /api/Shows/.
func (h *ShowHandler) Create(c echo.Context) error {
	var req showReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Repo.Create(ctx, &model.Show{MovieTitle: req.MovieTitle})
	if err != nil {
		return storeError(c, err, "show")
	}
	return c.JSON(http.StatusCreated, s)
}

// Update handles PUT /api/Shows/:id/.
func (h *ShowHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var req showReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Repo.Update(ctx, &model.Show{ID: id, MovieTitle: req.MovieTitle})
	if err != nil {
		return storeError(c, err, "show")
	}
	return c.JSON(http.StatusOK, s)
}

// Delete handles DELETE /api/Shows/:id/.  Shows with reservations are
// refused with 409.
func (h *ShowHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		return storeError(c, err, "show")
	}
	return c.NoContent(http.StatusNoContent)
}
