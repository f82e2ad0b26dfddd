package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	// CSRFField is the hidden form field carrying the token.
	CSRFField = "csrf_token"
	// CtxCSRF holds the token for the current request.
	CtxCSRF = "csrf"

	csrfCookie = "hw_csrf"
)

// CSRF guards the form posts with a double-submit token. The bearer-token
// API and the health, metrics and swagger endpoints are skipped.
func CSRF(secure bool) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/health") ||
				p == "/metrics" || strings.HasPrefix(p, "/swagger/")
		},
		TokenLookup:    "form:" + CSRFField,
		ContextKey:     CtxCSRF,
		CookieName:     csrfCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// CSRFToken returns the token issued for this request, or "" when the CSRF
// middleware did not run.
func CSRFToken(c echo.Context) string {
	token, _ := c.Get(CtxCSRF).(string)
	return token
}
