package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	authFn   func(ctx context.Context, identifier, password string) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	return s.authFn(ctx, identifier, password)
}

func (s *stubAuthService) IssueToken(user *domain.User) (string, error) {
	return "token-for-" + user.ID, nil
}

func (s *stubAuthService) UserByID(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

// newEcho returns an Echo instance with the validator installed.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// statusOf runs h and returns the status Echo would send.
func statusOf(e *echo.Echo, c echo.Context, rec *httptest.ResponseRecorder, h echo.HandlerFunc) int {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
			if in.Username != "alice" || in.Email != "alice@x.com" || in.Password != "pw123" {
				t.Fatalf("unexpected args: %+v", in)
			}
			return &domain.User{ID: "u1", Username: in.Username, Email: in.Email, PasswordHash: "secret-hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/api/v1/auth/signup", `{"username":"alice","email":"alice@x.com","password":"pw123"}`)
	if code := statusOf(e, c, rec, handler.Signup); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, rec.Body.String())
	}

	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked in response")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["id"] != "u1" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Signup_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"short password", `{"username":"a","email":"a@x.com","password":"123"}`, nil, http.StatusUnprocessableEntity},
		{"bad email", `{"username":"a","email":"nope","password":"pw123"}`, nil, http.StatusUnprocessableEntity},
		{"bad json", `{`, nil, http.StatusBadRequest},
		{"username taken", `{"username":"a","email":"a@x.com","password":"pw123"}`, domain.ErrUsernameTaken, http.StatusConflict},
		{"email taken", `{"username":"a","email":"a@x.com","password":"pw123"}`, domain.ErrEmailTaken, http.StatusConflict},
		{"service validation", `{"username":"a","email":"a@x.com","password":"pw123"}`, domain.NewValidationError("nope"), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			called := false
			stub := &stubAuthService{
				signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
					called = true
					return nil, tc.err
				},
			}
			c, rec := postJSON(e, "/api/v1/auth/signup", tc.body)
			if code := statusOf(e, c, rec, NewAuthHandler(stub).Signup); code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, code)
			}
			if tc.err == nil && called {
				t.Fatalf("service must not be called for invalid input")
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		authFn: func(ctx context.Context, identifier, password string) (*domain.User, error) {
			if identifier != "alice@x.com" || password != "pw123" {
				t.Fatalf("unexpected args: %s %s", identifier, password)
			}
			return &domain.User{ID: "u1", Username: "alice"}, nil
		},
	}

	c, rec := postJSON(e, "/api/v1/auth/login", `{"email":"alice@x.com","password":"pw123"}`)
	if code := statusOf(e, c, rec, NewAuthHandler(stub).Login); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token-for-u1" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"missing fields", `{"username":"alice"}`, nil, http.StatusBadRequest},
		{"invalid credentials", `{"username":"alice","password":"bad"}`, domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"throttled", `{"username":"alice","password":"bad"}`, domain.ErrTooManyAttempts, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubAuthService{
				authFn: func(context.Context, string, string) (*domain.User, error) {
					return nil, tc.err
				},
			}
			c, rec := postJSON(e, "/api/v1/auth/login", tc.body)
			if code := statusOf(e, c, rec, NewAuthHandler(stub).Login); code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, code)
			}
		})
	}
}
