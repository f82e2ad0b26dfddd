package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/healthwhisperer/wellness/docs"
	"github.com/healthwhisperer/wellness/internal/api/handler"
	"github.com/healthwhisperer/wellness/internal/api/metrics"
	"github.com/healthwhisperer/wellness/internal/api/middleware"
	"github.com/healthwhisperer/wellness/internal/api/session"
	"github.com/healthwhisperer/wellness/internal/api/web"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

// Deps carries everything NewRouter wires together.
type Deps struct {
	Auth     ports.AuthService
	Checkins ports.CheckinService
	Log      zerolog.Logger

	SessionSecret string
	SecureCookies bool
	JWTSecret     string
	// RateLimit is the per-IP request rate of the JSON API; <= 0 disables it.
	RateLimit float64

	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.PingFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	promMW, err := echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(promMW)
	e.Use(session.Middleware(session.NewStore(d.SessionSecret, d.SecureCookies)))
	e.Use(middleware.CSRF(d.SecureCookies))

	// --- Operational routes ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)
	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Web pages ---
	pages := handler.NewPageHandler(d.Auth, d.Checkins)
	guest := middleware.RedirectIfAuthenticated()
	authed := middleware.RequireLogin(d.Auth)

	e.GET("/", pages.Landing, guest)
	e.GET("/signup", pages.SignupForm, guest)
	e.POST("/signup", pages.Signup, guest)
	e.GET("/login", pages.LoginForm, guest)
	e.POST("/login", pages.Login, guest)
	e.GET("/logout", pages.Logout, authed)
	e.POST("/logout", pages.Logout, authed)
	e.GET("/dashboard", pages.Dashboard, authed)
	e.GET("/check-in", pages.CheckinForm, authed)
	e.POST("/check-in", pages.Checkin, authed)
	e.GET("/suggestion", pages.Suggestion, authed)
	e.GET("/history", pages.History, authed)

	// --- JSON API ---
	var apiMW []echo.MiddlewareFunc
	if d.RateLimit > 0 {
		apiMW = append(apiMW, rateLimiter(d.RateLimit))
	}
	api := e.Group("/api/v1", apiMW...)

	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	bearer := middleware.Auth(d.JWTSecret)
	checkinHandler := handler.NewCheckinHandler(d.Checkins)
	api.POST("/checkins", checkinHandler.Create, bearer)
	api.GET("/checkins", checkinHandler.List, bearer)
	api.GET("/trends", checkinHandler.Trends, bearer)

	return e, nil
}

// rateLimiter limits each client IP to perSecond requests, with a burst of
// twice that.
func rateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond * 2)
	if burst < 1 {
		burst = 1
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}

// requestLogger feeds Echo's request logger into zerolog. Probe and scrape
// requests are logged at debug.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case strings.HasPrefix(v.URI, "/health"), v.URI == "/metrics":
				ev = log.Debug()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
