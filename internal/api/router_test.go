package api

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthwhisperer/wellness/internal/api/handler"
	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/service"
	"github.com/healthwhisperer/wellness/internal/infrastructure/ai"
	"github.com/healthwhisperer/wellness/internal/infrastructure/db/sqlstore"
)

const testSecret = "router-test-secret"

// newTestServer wires the real services to an in-memory SQLite store and an
// AI endpoint that always fails, so every suggestion is a curated one.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	name := regexp.MustCompile(`[^A-Za-z0-9]`).ReplaceAllString(t.Name(), "_")
	store, err := sqlstore.Open(ctx, sqlstore.Config{URL: "file:" + name + "?mode=memory&cache=shared"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))

	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(gemini.Close)

	auth := service.NewAuthService(store.Users(), testSecret, time.Hour)
	checkins := service.NewCheckinService(
		store.Interactions(),
		ai.NewGeminiClient(ai.Config{APIKey: "test", BaseURL: gemini.URL, Timeout: time.Second}),
		zerolog.Nop(),
	)

	e, err := NewRouter(Deps{
		Auth:          auth,
		Checkins:      checkins,
		Log:           zerolog.Nop(),
		SessionSecret: testSecret,
		JWTSecret:     testSecret,
		Checks:        map[string]handler.PingFunc{"database": store.Ping},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

var csrfInput = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

// postForm loads the page at u first, as a browser would, and submits form
// with the CSRF token found there.
func postForm(t *testing.T, c *http.Client, u string, form url.Values) (int, string, string) {
	t.Helper()
	_, _, page := get(t, c, u)
	m := csrfInput.FindStringSubmatch(page)
	require.NotNil(t, m, "no csrf token on %s", u)
	form.Set("csrf_token", m[1])
	return rawPost(t, c, u, form)
}

func rawPost(t *testing.T, c *http.Client, u string, form url.Values) (int, string, string) {
	t.Helper()
	resp, err := c.PostForm(u, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Request.URL.Path, string(body)
}

func get(t *testing.T, c *http.Client, u string) (int, string, string) {
	t.Helper()
	resp, err := c.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Request.URL.Path, string(body)
}

func apiCall(t *testing.T, method, u, token, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, u, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestWebFlow_SignupLogoutLoginCheckin(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	code, path, body := postForm(t, browser, srv.URL+"/signup", url.Values{
		"username": {"alice"},
		"email":    {"alice@x.com"},
		"password": {"pw123"},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/dashboard", path)
	assert.Contains(t, body, "Welcome to Health Whisperer!")

	code, path, body = get(t, browser, srv.URL+"/logout")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/", path)
	assert.Contains(t, body, "You have been logged out.")

	code, path, _ = get(t, browser, srv.URL+"/dashboard")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/login", path, "logged-out users are sent to the login page")

	code, path, body = postForm(t, browser, srv.URL+"/login", url.Values{
		"username": {"alice"},
		"password": {"pw123"},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/dashboard", path)
	assert.Contains(t, body, "Welcome back, alice!")

	code, path, body = postForm(t, browser, srv.URL+"/check-in", url.Values{
		"mood_input":      {"feeling anxious today"},
		"nutrition_input": {""},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/suggestion", path)
	assert.Contains(t, body, "Thank you for sharing!")

	code, _, body = get(t, browser, srv.URL+"/history")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, strings.Count(body, "feeling anxious today"), "exactly one history entry")
	assert.True(t, containsAny(body, service.FallbackSuggestions(domain.MoodAnxious)),
		"history should show the curated anxious suggestion")
}

func containsAny(body string, suggestions []string) bool {
	for _, s := range suggestions {
		if strings.Contains(body, template.HTMLEscapeString(s)) {
			return true
		}
	}
	return false
}

func TestWebFlow_FailedLoginStaysOnForm(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	code, path, body := postForm(t, browser, srv.URL+"/login", url.Values{
		"username": {"nobody"},
		"password": {"wrong-password"},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/login", path)
	assert.Contains(t, body, "Invalid username or password.")

	code, path, body = postForm(t, browser, srv.URL+"/login", url.Values{"username": {"nobody"}})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/login", path)
	assert.Contains(t, body, "Please enter both username and password.")
}

func TestWebFlow_RejectsFormWithoutCSRFToken(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	_, _, _ = get(t, browser, srv.URL+"/signup")
	code, _, _ := rawPost(t, browser, srv.URL+"/signup", url.Values{
		"username": {"mallory"},
		"email":    {"mallory@x.com"},
		"password": {"pw123"},
	})
	assert.Contains(t, []int{http.StatusBadRequest, http.StatusForbidden}, code)

	resp, _ := apiCall(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "",
		`{"username":"mallory","password":"pw123"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "no account may be created without a token")
}

func TestWebFlow_SuggestionWithoutCheckinRedirects(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	_, _, _ = postForm(t, browser, srv.URL+"/signup", url.Values{
		"username": {"carol"},
		"email":    {"carol@x.com"},
		"password": {"pw123"},
	})

	code, path, body := get(t, browser, srv.URL+"/suggestion")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "/check-in", path)
	assert.Contains(t, body, "Please complete a check-in first.")
}

func TestWebFlow_UsersSeeOnlyTheirOwnHistory(t *testing.T) {
	srv := newTestServer(t)

	alice, bob := newBrowser(t), newBrowser(t)
	for name, c := range map[string]*http.Client{"alice": alice, "bob": bob} {
		code, path, _ := postForm(t, c, srv.URL+"/signup", url.Values{
			"username": {name},
			"email":    {name + "@x.com"},
			"password": {"pw123"},
		})
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "/dashboard", path)
	}

	_, _, _ = postForm(t, alice, srv.URL+"/check-in", url.Values{"mood_input": {"alice is happy"}})
	_, _, _ = postForm(t, bob, srv.URL+"/check-in", url.Values{"mood_input": {"bob is tired"}})

	_, _, body := get(t, alice, srv.URL+"/history")
	assert.Contains(t, body, "alice is happy")
	assert.NotContains(t, body, "bob is tired")

	_, _, body = get(t, bob, srv.URL+"/history")
	assert.Contains(t, body, "bob is tired")
	assert.NotContains(t, body, "alice is happy")
}

func TestAPI_SignupLoginCheckin(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1"

	resp, _ := apiCall(t, http.MethodPost, base+"/auth/signup", "",
		`{"username":"dave","email":"dave@x.com","password":"pw123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = apiCall(t, http.MethodPost, base+"/auth/signup", "",
		`{"username":"dave","email":"other@x.com","password":"pw123"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, data := apiCall(t, http.MethodPost, base+"/auth/login", "",
		`{"email":"dave@x.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &login))
	require.NotEmpty(t, login.Token)

	resp, _ = apiCall(t, http.MethodGet, base+"/checkins", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, data = apiCall(t, http.MethodPost, base+"/checkins", login.Token,
		`{"mood":"so stressed about work","nutrition":"just coffee"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Checkin domain.Interaction `json:"checkin"`
	}
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, domain.SourceFallback, created.Checkin.Source)
	assert.Contains(t, service.FallbackSuggestions(domain.MoodStressed), created.Checkin.Suggestion)

	resp, data = apiCall(t, http.MethodGet, base+"/checkins", login.Token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Data []domain.Interaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "so stressed about work", list.Data[0].MoodInput)

	resp, data = apiCall(t, http.MethodGet, base+"/trends", login.Token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trends struct {
		TotalCheckins int64 `json:"total_checkins"`
		Counts        []struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(data, &trends))
	assert.EqualValues(t, 1, trends.TotalCheckins)
	require.Len(t, trends.Counts, 1)
	assert.Equal(t, string(domain.MoodStressed), trends.Counts[0].Category)
}

func TestAPI_ErrorsUseJSONEnvelope(t *testing.T) {
	srv := newTestServer(t)

	resp, data := apiCall(t, http.MethodGet, srv.URL+"/api/v1/nope", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var env handler.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &env))
	assert.NotEmpty(t, env.Error)

	resp, data = apiCall(t, http.MethodPost, srv.URL+"/api/v1/auth/signup", "", `{"username":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &env))
	assert.NotEmpty(t, env.Error)
}

func TestOperationalRoutes(t *testing.T) {
	srv := newTestServer(t)
	c := newBrowser(t)

	code, _, _ := get(t, c, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, code)

	code, _, body := get(t, c, srv.URL+"/health/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "database")

	_, _, _ = get(t, c, srv.URL+"/")
	code, _, body = get(t, c, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "health_whisperer_signups_total")
	assert.Contains(t, body, "http_requests_total")

	code, _, body = get(t, c, srv.URL+"/does-not-exist")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "<html")
}
