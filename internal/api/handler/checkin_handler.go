package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthwhisperer/wellness/internal/api/metrics"
	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

// CheckinHandler serves the JSON check-in endpoints. Every route expects the
// Auth middleware in front of it.
type CheckinHandler struct {
	service ports.CheckinService
	now     func() time.Time
}

func NewCheckinHandler(service ports.CheckinService) *CheckinHandler {
	return &CheckinHandler{service: service, now: time.Now}
}

// Create records a check-in and returns it with its suggestion.
//
// @Summary      Create a check-in
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkinRequest  true  "Mood and optional nutrition"
// @Success      201   {object}  checkinResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /checkins [post]
func (h *CheckinHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req checkinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in, err := h.service.CheckIn(c.Request().Context(), ports.CheckinInput{
		UserID:    userID,
		Mood:      req.Mood,
		Nutrition: req.Nutrition,
	})
	if err != nil {
		return apiError(err)
	}

	metrics.CheckinsTotal.WithLabelValues(string(in.Source)).Inc()
	return c.JSON(http.StatusCreated, checkinResponse{Checkin: in})
}

// List returns the caller's check-ins, newest first.
//
// @Summary      List check-ins
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  checkinListResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /checkins [get]
func (h *CheckinHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	items, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Interaction{}
	}
	return c.JSON(http.StatusOK, checkinListResponse{Data: items})
}

// Trends returns the dashboard view: totals, recent check-ins and mood trends.
//
// @Summary      Mood trends
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  trendsResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /trends [get]
func (h *CheckinHandler) Trends(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	dash, err := h.service.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTrendsResponse(dash, h.now().UTC()))
}
