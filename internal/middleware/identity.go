package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserID returns the authenticated user's id, if JWTAuth ran for this
// request.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

// Role returns the authenticated user's role or "".
func Role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}

// identity names the caller for rate-limit keys: the user id when known,
// "anon" otherwise.
func identity(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
