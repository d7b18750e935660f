package view

// flash.go carries one-shot user feedback messages ("Venue X was
// successfully listed!") across the redirect that follows every mutation.
// Messages live in a signed cookie session and are consumed on first read.

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

// sessionName is the cookie the flash session is stored under.
const sessionName = "bandboard_session"

// Flash stores and retrieves one-shot messages in a cookie session.
type Flash struct {
	store *sessions.CookieStore
}

// NewFlash builds a Flash backed by a signed cookie store.
func NewFlash(secret string) *Flash {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}
	return &Flash{store: store}
}

// Add queues a message for the next rendered page. Save must happen
// before any body bytes are written, which holds because handlers flash
// and then redirect or render.
func (f *Flash) Add(c echo.Context, msg string) {
	sess, _ := f.store.Get(c.Request(), sessionName)
	sess.AddFlash(msg)
	_ = sess.Save(c.Request(), c.Response())
}

// Pop returns all queued messages and clears them from the session.
func (f *Flash) Pop(c echo.Context) []string {
	sess, _ := f.store.Get(c.Request(), sessionName)
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
