package handler

import (
	"reflect"
	"strings"
	"time"

	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=5"`
}

// loginRequest accepts either a username or an email as the identifier.
type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Check-ins ---

type checkinRequest struct {
	Mood      string `json:"mood" validate:"required,max=2000"`
	Nutrition string `json:"nutrition" validate:"max=2000"`
}

type checkinResponse struct {
	Checkin *domain.Interaction `json:"checkin"`
}

type checkinListResponse struct {
	Data []domain.Interaction `json:"data"`
}

type moodCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

type timelinePointResponse struct {
	Date     string `json:"date"`
	Category string `json:"category"`
}

type trendsResponse struct {
	TotalCheckins int64                   `json:"total_checkins"`
	Recent        []domain.Interaction    `json:"recent"`
	Counts        []moodCountResponse     `json:"counts"`
	Timeline      []timelinePointResponse `json:"timeline"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

func toTrendsResponse(d *ports.Dashboard, now time.Time) trendsResponse {
	resp := trendsResponse{
		TotalCheckins: d.TotalCheckins,
		Recent:        d.Recent,
		Counts:        make([]moodCountResponse, 0, len(d.Trends.Counts)),
		Timeline:      make([]timelinePointResponse, 0, len(d.Trends.Timeline)),
		GeneratedAt:   now,
	}
	if resp.Recent == nil {
		resp.Recent = []domain.Interaction{}
	}
	for _, c := range d.Trends.Counts {
		resp.Counts = append(resp.Counts, moodCountResponse{Category: string(c.Category), Count: c.Count, Percent: c.Percent})
	}
	for _, p := range d.Trends.Timeline {
		resp.Timeline = append(resp.Timeline, timelinePointResponse{Date: p.Date, Category: string(p.Category)})
	}
	return resp
}

// --- Errors ---

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// jsonFieldName makes validator messages use the JSON field names.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
