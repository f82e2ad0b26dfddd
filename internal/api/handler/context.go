package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthwhisperer/wellness/internal/api/middleware"
)

// ctxUserID extracts the user id injected by the Auth middleware and fails
// fast when it is missing.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
