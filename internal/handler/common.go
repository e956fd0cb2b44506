package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/queue"
	"github.com/iliyamo/lab-desk/internal/repository"
)

// dbTimeout bounds every store call made on behalf of a request.
const dbTimeout = 5 * time.Second

// ActivityPublisher is the outbound side of the order events queue.
type ActivityPublisher interface {
	Publish(ctx context.Context, ev queue.OrderActivity) error
}

// notify publishes ev off the request path.  Broker trouble is logged by
// the publisher and never fails the request.
func notify(p ActivityPublisher, ev queue.OrderActivity) {
	if p == nil {
		return
	}
	if ev.OccurredAt == "" {
		ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Publish(ctx, ev)
	}()
}

// parseID reads the numeric :id path parameter.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not found."})
}

// storeError maps repository sentinels onto HTTP responses.  what names
// the resource in the conflict message.
func storeError(c echo.Context, err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(c)
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": what + " is still referenced"})
	case errors.Is(err, repository.ErrInvalidReference):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced record does not exist"})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "store timeout"})
	}
	log.Printf("handler: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
