package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthwhisperer/wellness/internal/core/domain"
)

// ResolveError maps err to an HTTP status and a message that is safe to show.
// known is false for unexpected errors, which callers should log.
func ResolveError(err error) (code int, msg string, known bool) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Msg, true
	}

	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, "Username already exists.", true
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "Email already registered.", true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Username or email already registered.", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password.", true
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many failed login attempts. Please try again later.", true
	case errors.Is(err, domain.ErrEmptyMood):
		return http.StatusUnprocessableEntity, "Please tell us how you're feeling.", true
	case errors.Is(err, domain.ErrInputTooLong):
		return http.StatusUnprocessableEntity, fmt.Sprintf("Please keep each answer under %d characters.", domain.MaxCheckinTextLen), true
	case errors.Is(err, domain.ErrInteractionNotFound):
		return http.StatusNotFound, "Check-in not found.", true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found.", true
	}

	return http.StatusInternalServerError, "internal server error", false
}

// apiError turns a known domain error into an *echo.HTTPError so the JSON
// envelope carries the right status.
func apiError(err error) error {
	code, msg, known := ResolveError(err)
	if !known {
		return err
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}
