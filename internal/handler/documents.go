package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/model"
	"github.com/iliyamo/lab-desk/internal/queue"
	"github.com/iliyamo/lab-desk/internal/repository"
)

// DocumentHandler serves the two Redis-backed collections,
// /api/catalog-types/ and /api/order-events/.  Lists are bare arrays,
// newest first.
type DocumentHandler struct {
	CatalogTypes *repository.DocStore[model.CatalogType]
	OrderEvents  *repository.DocStore[model.OrderEvent]
	Publisher    ActivityPublisher
	now          func() time.Time
}

func NewDocumentHandler(types *repository.DocStore[model.CatalogType], events *repository.DocStore[model.OrderEvent], pub ActivityPublisher) *DocumentHandler {
	return &DocumentHandler{CatalogTypes: types, OrderEvents: events, Publisher: pub, now: time.Now}
}

type catalogTypeReq struct {
	TestName    string   `json:"test_name" validate:"required,max=120"`
	Category    string   `json:"category" validate:"max=120"`
	NormalRange string   `json:"normal_range" validate:"max=120"`
	Method      *float64 `json:"method"`
	IsActive    *bool    `json:"is_active"`
}

func (r *catalogTypeReq) normalize() {
	r.TestName = strings.TrimSpace(r.TestName)
	r.Category = strings.TrimSpace(r.Category)
	r.NormalRange = strings.TrimSpace(r.NormalRange)
}

type orderEventReq struct {
	LabOrderID uint64 `json:"lab_order_id" validate:"required"`
	EventType  string `json:"event_type" validate:"required,max=40"`
	Source     string `json:"source" validate:"required,max=40"`
	Note       string `json:"note" validate:"max=500"`
	CreatedAt  string `json:"created_at"`
}

func (r *orderEventReq) normalize() {
	r.EventType = strings.ToUpper(strings.TrimSpace(r.EventType))
	r.Source = strings.TrimSpace(r.Source)
	r.Note = strings.TrimSpace(r.Note)
	r.CreatedAt = strings.TrimSpace(r.CreatedAt)
}

// parseCreatedAt accepts a plain date or an RFC 3339 timestamp.
func parseCreatedAt(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// ListCatalogTypes handles GET /api/catalog-types/.
func (h *DocumentHandler) ListCatalogTypes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.CatalogTypes.List(ctx)
	if err != nil {
		return storeError(c, err, "catalog type")
	}
	return c.JSON(http.StatusOK, list)
}

// GetCatalogType handles GET /api/catalog-types/:id/.
func (h *DocumentHandler) GetCatalogType(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	doc, err := h.CatalogTypes.Get(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, err, "catalog type")
	}
	return c.JSON(http.StatusOK, doc)
}

// CreateCatalogType handles POST /api/catalog-types/.
func (h *DocumentHandler) CreateCatalogType(c echo.Context) error {
	var req catalogTypeReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	doc := model.CatalogType{
		TestName:    req.TestName,
		Category:    req.Category,
		NormalRange: req.NormalRange,
		Method:      req.Method,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	saved, err := h.CatalogTypes.Create(ctx, doc)
	if err != nil {
		return storeError(c, err, "catalog type")
	}
	return c.JSON(http.StatusCreated, saved)
}

// DeleteCatalogType handles DELETE /api/catalog-types/:id/.
func (h *DocumentHandler) DeleteCatalogType(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.CatalogTypes.Delete(ctx, c.Param("id")); err != nil {
		return storeError(c, err, "catalog type")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOrderEvents handles GET /api/order-events/.
func (h *DocumentHandler) ListOrderEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.OrderEvents.List(ctx)
	if err != nil {
		return storeError(c, err, "order event")
	}
	return c.JSON(http.StatusOK, list)
}

// GetOrderEvent handles GET /api/order-events/:id/.
func (h *DocumentHandler) GetOrderEvent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	doc, err := h.OrderEvents.Get(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, err, "order event")
	}
	return c.JSON(http.StatusOK, doc)
}

// CreateOrderEvent handles POST /api/order-events/ and announces the
// event on the queue.  lab_order_id is not checked against lab_orders.
func (h *DocumentHandler) CreateOrderEvent(c echo.Context) error {
	var req orderEventReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	created := h.now().UTC()
	if req.CreatedAt != "" {
		t, ok := parseCreatedAt(req.CreatedAt)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":  "validation failed",
				"fields": map[string]string{"created_at": "expected YYYY-MM-DD or RFC 3339"},
			})
		}
		created = t
	}
	doc := model.OrderEvent{
		LabOrderID: req.LabOrderID,
		EventType:  req.EventType,
		Source:     req.Source,
		Note:       req.Note,
		CreatedAt:  created,
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	saved, err := h.OrderEvents.Create(ctx, doc)
	if err != nil {
		return storeError(c, err, "order event")
	}
	notify(h.Publisher, queue.OrderActivity{
		OrderID:    saved.LabOrderID,
		EventID:    saved.ID,
		EventType:  saved.EventType,
		Source:     saved.Source,
		Note:       saved.Note,
		OccurredAt: saved.CreatedAt.Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, saved)
}

// DeleteOrderEvent handles DELETE /api/order-events/:id/.
func (h *DocumentHandler) DeleteOrderEvent(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.OrderEvents.Delete(ctx, c.Param("id")); err != nil {
		return storeError(c, err, "order event")
	}
	return c.NoContent(http.StatusNoContent)
}
