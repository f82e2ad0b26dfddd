package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthwhisperer/wellness/internal/api/session"
	"github.com/healthwhisperer/wellness/internal/core/domain"
)

// CtxUser holds the *domain.User loaded by RequireLogin.
const CtxUser = "user"

// UserLookup loads the account behind a session.
type UserLookup interface {
	UserByID(ctx context.Context, id string) (*domain.User, error)
}

// RequireLogin guards web pages. Anonymous visitors are sent to /login with a
// flash; a session whose user no longer exists is cleared first.
func RequireLogin(users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := session.UserID(c)
			if id == "" {
				return toLogin(c)
			}

			user, err := users.UserByID(c.Request().Context(), id)
			if errors.Is(err, domain.ErrUserNotFound) {
				_ = session.Logout(c)
				return toLogin(c)
			}
			if err != nil {
				return err
			}

			c.Set(CtxUser, user)
			return next(c)
		}
	}
}

// RedirectIfAuthenticated sends logged-in users from the landing and auth
// pages straight to the dashboard.
func RedirectIfAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.UserID(c) != "" {
				return c.Redirect(http.StatusFound, "/dashboard")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user set by RequireLogin, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(CtxUser).(*domain.User)
	return u
}

func toLogin(c echo.Context) error {
	_ = session.AddFlash(c, session.FlashError, "Please log in to access this page.")
	return c.Redirect(http.StatusFound, "/login")
}
