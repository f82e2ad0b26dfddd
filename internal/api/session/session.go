// Package session wraps the signed cookie session used by the web pages.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/healthwhisperer/wellness/internal/core/domain"
)

const (
	cookieName = "hw_session"
	maxAge     = 7 * 24 * 60 * 60

	keyUserID      = "user_id"
	keyUsername    = "username"
	keyLastCheckin = "last_checkin"
)

// Flash kinds, rendered as alert styles.
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// NewStore returns a cookie store signed with secret. secure marks the
// cookie HTTPS-only.
func NewStore(secret string, secure bool) sessions.Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Middleware makes store available to the helpers below.
func Middleware(store sessions.Store) echo.MiddlewareFunc {
	return session.Middleware(store)
}

func get(c echo.Context) (*sessions.Session, error) {
	return session.Get(cookieName, c)
}

func save(c echo.Context, s *sessions.Session) error {
	return s.Save(c.Request(), c.Response())
}

// UserID returns the logged-in user's id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	s, err := get(c)
	if err != nil {
		return ""
	}
	id, _ := s.Values[keyUserID].(string)
	return id
}

// Login binds user to the session.
func Login(c echo.Context, user *domain.User) error {
	s, err := get(c)
	if err != nil {
		return err
	}
	s.Values[keyUserID] = user.ID
	s.Values[keyUsername] = user.Username
	delete(s.Values, keyLastCheckin)
	return save(c, s)
}

// Logout drops every value from the session. Flashes added afterwards on
// the same request survive.
func Logout(c echo.Context) error {
	s, err := get(c)
	if err != nil {
		return err
	}
	for k := range s.Values {
		delete(s.Values, k)
	}
	return save(c, s)
}

// AddFlash queues a message for the next page render.
func AddFlash(c echo.Context, kind, msg string) error {
	s, err := get(c)
	if err != nil {
		return err
	}
	s.AddFlash(Flash{Kind: kind, Message: msg})
	return save(c, s)
}

// Flashes consumes and returns the queued messages.
func Flashes(c echo.Context) []Flash {
	s, err := get(c)
	if err != nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	out := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if fl, ok := f.(Flash); ok {
			out = append(out, fl)
		}
	}
	_ = save(c, s)
	return out
}

// SetLastCheckin remembers the interaction shown on the suggestion page.
func SetLastCheckin(c echo.Context, id string) error {
	s, err := get(c)
	if err != nil {
		return err
	}
	s.Values[keyLastCheckin] = id
	return save(c, s)
}

// LastCheckin returns the id stored by SetLastCheckin, or "".
func LastCheckin(c echo.Context) string {
	s, err := get(c)
	if err != nil {
		return ""
	}
	id, _ := s.Values[keyLastCheckin].(string)
	return id
}
