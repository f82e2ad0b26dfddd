package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthwhisperer/wellness/internal/api/metrics"
	"github.com/healthwhisperer/wellness/internal/api/middleware"
	"github.com/healthwhisperer/wellness/internal/api/session"
	"github.com/healthwhisperer/wellness/internal/api/web"
	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

// PageHandler serves the server-rendered web pages.
type PageHandler struct {
	auth     ports.AuthService
	checkins ports.CheckinService
}

func NewPageHandler(auth ports.AuthService, checkins ports.CheckinService) *PageHandler {
	return &PageHandler{auth: auth, checkins: checkins}
}

type signupForm struct {
	Username string
	Email    string
}

type loginForm struct {
	Username string
}

type checkinForm struct {
	QuickMoods []string
	Mood       string
	Nutrition  string
}

// render builds the common page data and writes the template.
func (h *PageHandler) render(c echo.Context, code int, name, title string, data any) error {
	return c.Render(code, name, web.Page{
		Title:   title,
		User:    middleware.CurrentUser(c),
		Flashes: session.Flashes(c),
		CSRF:    middleware.CSRFToken(c),
		Data:    data,
	})
}

func (h *PageHandler) flash(c echo.Context, kind, msg string) {
	_ = session.AddFlash(c, kind, msg)
}

// --- Public pages ---

func (h *PageHandler) Landing(c echo.Context) error {
	return h.render(c, http.StatusOK, "landing.html", "", nil)
}

func (h *PageHandler) SignupForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "signup.html", "Sign up", signupForm{})
}

func (h *PageHandler) Signup(c echo.Context) error {
	form := signupForm{
		Username: strings.TrimSpace(c.FormValue("username")),
		Email:    strings.TrimSpace(c.FormValue("email")),
	}

	user, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		Username: form.Username,
		Email:    form.Email,
		Password: c.FormValue("password"),
	})
	if err != nil {
		_, msg, known := ResolveError(err)
		if !known {
			return err
		}
		h.flash(c, session.FlashError, msg)
		return h.render(c, http.StatusOK, "signup.html", "Sign up", form)
	}

	metrics.SignupsTotal.Inc()
	if err := session.Login(c, user); err != nil {
		return err
	}
	h.flash(c, session.FlashSuccess, "Welcome to Health Whisperer!")
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) LoginForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "login.html", "Log in", loginForm{})
}

func (h *PageHandler) Login(c echo.Context) error {
	form := loginForm{Username: strings.TrimSpace(c.FormValue("username"))}
	password := c.FormValue("password")

	if form.Username == "" || strings.TrimSpace(password) == "" {
		h.flash(c, session.FlashError, "Please enter both username and password.")
		return h.render(c, http.StatusOK, "login.html", "Log in", form)
	}

	user, err := h.auth.Authenticate(c.Request().Context(), form.Username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		code, msg, known := ResolveError(err)
		if !known {
			return err
		}
		if code != http.StatusTooManyRequests {
			code = http.StatusOK
		}
		h.flash(c, session.FlashError, msg)
		return h.render(c, code, "login.html", "Log in", form)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if err := session.Login(c, user); err != nil {
		return err
	}
	h.flash(c, session.FlashSuccess, fmt.Sprintf("Welcome back, %s!", user.Username))
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) Logout(c echo.Context) error {
	if err := session.Logout(c); err != nil {
		return err
	}
	h.flash(c, session.FlashSuccess, "You have been logged out.")
	return c.Redirect(http.StatusFound, "/")
}

// --- Authenticated pages (behind middleware.RequireLogin) ---

func (h *PageHandler) Dashboard(c echo.Context) error {
	user := middleware.CurrentUser(c)
	dash, err := h.checkins.Dashboard(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "dashboard.html", "Dashboard", dash)
}

func (h *PageHandler) CheckinForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "checkin.html", "Check in", checkinForm{QuickMoods: domain.QuickMoods})
}

// Checkin takes the free-text mood, or the quick pick when the text is empty.
func (h *PageHandler) Checkin(c echo.Context) error {
	user := middleware.CurrentUser(c)
	form := checkinForm{
		QuickMoods: domain.QuickMoods,
		Mood:       strings.TrimSpace(c.FormValue("mood_input")),
		Nutrition:  strings.TrimSpace(c.FormValue("nutrition_input")),
	}
	mood := form.Mood
	if mood == "" {
		mood = strings.TrimSpace(c.FormValue("quick_mood"))
	}

	in, err := h.checkins.CheckIn(c.Request().Context(), ports.CheckinInput{
		UserID:    user.ID,
		Mood:      mood,
		Nutrition: form.Nutrition,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMood) || errors.Is(err, domain.ErrInputTooLong) {
			_, msg, _ := ResolveError(err)
			h.flash(c, session.FlashError, msg)
			return h.render(c, http.StatusOK, "checkin.html", "Check in", form)
		}
		return err
	}

	metrics.CheckinsTotal.WithLabelValues(string(in.Source)).Inc()
	if err := session.SetLastCheckin(c, in.ID); err != nil {
		return err
	}
	h.flash(c, session.FlashSuccess, "Thank you for sharing! Here's your personalized suggestion:")
	return c.Redirect(http.StatusFound, "/suggestion")
}

func (h *PageHandler) Suggestion(c echo.Context) error {
	user := middleware.CurrentUser(c)

	in, err := h.checkins.Get(c.Request().Context(), user.ID, session.LastCheckin(c))
	if errors.Is(err, domain.ErrInteractionNotFound) {
		h.flash(c, session.FlashError, "Please complete a check-in first.")
		return c.Redirect(http.StatusFound, "/check-in")
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "suggestion.html", "Your suggestion", in)
}

func (h *PageHandler) History(c echo.Context) error {
	user := middleware.CurrentUser(c)
	items, err := h.checkins.History(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "history.html", "History", items)
}

// ErrorPage renders the error template. It is used by the central error
// handler for non-API paths.
func ErrorPage(c echo.Context, code int, msg string) error {
	return c.Render(code, "error.html", web.Page{
		Title:   http.StatusText(code),
		User:    middleware.CurrentUser(c),
		Flashes: session.Flashes(c),
		CSRF:    middleware.CSRFToken(c),
		Data: struct {
			Code    int
			Status  string
			Message string
		}{code, http.StatusText(code), msg},
	})
}
