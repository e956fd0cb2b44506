package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/model"
	"github.com/iliyamo/lab-desk/internal/queue"
	"github.com/iliyamo/lab-desk/internal/repository"
)

// OrderHandler serves /api/Orders/.  Status changes are announced on the
// order events queue.
type OrderHandler struct {
	Repo      *repository.OrderRepo
	Publisher ActivityPublisher
	PageSize  int
}

func NewOrderHandler(repo *repository.OrderRepo, pub ActivityPublisher, pageSize int) *OrderHandler {
	return &OrderHandler{Repo: repo, Publisher: pub, PageSize: pageSize}
}

type orderReq struct {
	TestID        uint64            `json:"test_id" validate:"required"`
	PatientName   string            `json:"patient_name" validate:"required,max=120"`
	Status        model.OrderStatus `json:"status" validate:"required,oneof=CREATED PROCESSING COMPLETED CANCELLED"`
	ResultSummary string            `json:"result_summary" validate:"max=300"`
}

func (r *orderReq) normalize() {
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.ResultSummary = strings.TrimSpace(r.ResultSummary)
}

func (r *orderReq) model(id uint64) *model.Order {
	return &model.Order{
		ID:            id,
		TestID:        r.TestID,
		PatientName:   r.PatientName,
		Status:        r.Status,
		ResultSummary: r.ResultSummary,
	}
}

// List handles GET /api/Orders/[?test=<id>], newest first.
func (h *OrderHandler) List(c echo.Context) error {
	p, ok := newPager(c, h.PageSize)
	if !ok {
		return invalidPage(c)
	}
	var f repository.OrderFilter
	if raw := c.QueryParam("test"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"test": []string{"Select a valid choice."}})
		}
		f.TestID = id
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	orders, total, err := h.Repo.List(ctx, f, p.params())
	if err != nil {
		return storeError(c, err, "order")
	}
	if !p.inRange(total) {
		return invalidPage(c)
	}
	return c.JSON(http.StatusOK, pageOf(c, p, total, orders))
}

// Get handles GET /api/Orders/:id/.
func (h *OrderHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	o, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "order")
	}
	return c.JSON(http.StatusOK, o)
}

// Create handles POST /api/Orders/.
func (h *OrderHandler) Create(c echo.Context) error {
	var req orderReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	o, err := h.Repo.Create(ctx, req.model(0))
	if err != nil {
		return storeError(c, err, "order")
	}
	return c.JSON(http.StatusCreated, o)
}

// Update handles PUT /api/Orders/:id/.
func (h *OrderHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var req orderReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	before, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "order")
	}
	o, err := h.Repo.Update(ctx, req.model(id))
	if err != nil {
		return storeError(c, err, "order")
	}
	if o.Status != before.Status {
		notify(h.Publisher, queue.OrderActivity{
			OrderID:     o.ID,
			EventType:   string(o.Status),
			Source:      queue.SourceAPI,
			PatientName: o.PatientName,
		})
	}
	return c.JSON(http.StatusOK, o)
}

// Delete handles DELETE /api/Orders/:id/.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		return storeError(c, err, "order")
	}
	return c.NoContent(http.StatusNoContent)
}
