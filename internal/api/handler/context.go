package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/garagely/garage-api/internal/api/middleware"
)

// ctxUserID extracts the subject id injected by the Auth middleware and
// fast-fails before any service call: an empty id means the middleware never
// ran for this route, which is a wiring bug surfaced as 401 rather than a
// silent unauthenticated pass-through.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.UserIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
