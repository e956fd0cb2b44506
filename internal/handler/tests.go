package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/model"
	"github.com/iliyamo/lab-desk/internal/repository"
)

// TestHandler serves /api/Tests/.
type TestHandler struct {
	Repo     *repository.TestRepo
	PageSize int
}

func NewTestHandler(repo *repository.TestRepo, pageSize int) *TestHandler {
	return &TestHandler{Repo: repo, PageSize: pageSize}
}

type testReq struct {
	TestName    string      `json:"test_name" validate:"required,max=120"`
	SampleType  string      `json:"sample_type" validate:"required,max=20"`
	Price       json.Number `json:"price" validate:"required,numeric"`
	IsAvailable *int64      `json:"is_available" validate:"required,min=0"`
}

func (r *testReq) normalize() {
	r.TestName = strings.TrimSpace(r.TestName)
	r.SampleType = strings.TrimSpace(r.SampleType)
}

func (r *testReq) model(id uint64) *model.Test {
	return &model.Test{
		ID:          id,
		TestName:    r.TestName,
		SampleType:  r.SampleType,
		Price:       r.Price.String(),
		IsAvailable: uint32(*r.IsAvailable),
	}
}

// List handles GET /api/Tests/.
func (h *TestHandler) List(c echo.Context) error {
	p, ok := newPager(c, h.PageSize)
	if !ok {
		return invalidPage(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tests, total, err := h.Repo.List(ctx, p.params())
	if err != nil {
		return storeError(c, err, "test")
	}
	if !p.inRange(total) {
		return invalidPage(c)
	}
	return c.JSON(http.StatusOK, pageOf(c, p, total, tests))
}

// Get handles GET /api/Tests/:id/.
func (h *TestHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "test")
	}
	return c.JSON(http.StatusOK, t)
}

// Create handles POST /api/Tests/.
func (h *TestHandler) Create(c echo.Context) error {
	var req testReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Repo.Create(ctx, req.model(0))
	if err != nil {
		return storeError(c, err, "test")
	}
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT /api/Tests/:id/.
func (h *TestHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var req testReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Repo.Update(ctx, req.model(id))
	if err != nil {
		return storeError(c, err, "test")
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/Tests/:id/.  A test with orders is refused
// with 409.
func (h *TestHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		return storeError(c, err, "test")
	}
	return c.NoContent(http.StatusNoContent)
}
