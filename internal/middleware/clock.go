package middleware

// clock.go stamps every request with a single "now" instant. Handlers that
// partition shows into past and upcoming, or compute upcoming counts, read
// that one snapshot instead of calling time.Now repeatedly, so a request
// never straddles two different nows mid-computation.

import (
	"time"

	"github.com/labstack/echo/v4"
)

// nowKey is the context key the snapshot is stored under.
const nowKey = "request_now"

// RequestClock returns middleware that records time.Now().UTC() once per
// request in the Echo context.
func RequestClock() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(nowKey, time.Now().UTC())
			return next(c)
		}
	}
}

// Now returns the request's snapshot instant. When the middleware is not
// installed (some tests build bare contexts) it falls back to the current
// time so callers always get a usable instant.
func Now(c echo.Context) time.Time {
	if v, ok := c.Get(nowKey).(time.Time); ok {
		return v
	}
	return time.Now().UTC()
}
