package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lab-desk/internal/model"
	"github.com/iliyamo/lab-desk/internal/repository"
)

// pager turns ?page=N into a LIMIT/OFFSET and builds the paginated
// envelope with absolute next/previous links.
type pager struct {
	size int
	page int
}

func newPager(c echo.Context, size int) (pager, bool) {
	p := pager{size: size, page: 1}
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, false
		}
		p.page = n
	}
	return p, true
}

func (p pager) params() repository.ListParams {
	return repository.ListParams{Limit: p.size, Offset: (p.page - 1) * p.size}
}

// inRange reports whether the page exists.  Page 1 always exists, even
// for an empty collection.
func (p pager) inRange(total int) bool {
	return p.page == 1 || (p.page-1)*p.size < total
}

func (p pager) link(c echo.Context, page int) *string {
	u := *c.Request().URL
	u.Scheme = c.Scheme()
	u.Host = c.Request().Host
	q := u.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

func invalidPage(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"detail": "Invalid page."})
}

func pageOf[T any](c echo.Context, p pager, total int, results []T) model.Page[T] {
	out := model.Page[T]{Count: total, Results: results}
	if out.Results == nil {
		out.Results = []T{}
	}
	if p.page*p.size < total {
		out.Next = p.link(c, p.page+1)
	}
	if p.page > 1 {
		out.Previous = p.link(c, p.page-1)
	}
	return out
}
