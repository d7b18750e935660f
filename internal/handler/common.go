// Package handler exposes the HTTP handlers behind every route. Handlers
// compose repository calls and hand plain records to the template layer;
// they never build SQL themselves. This file holds the pieces shared by
// all of them: id parsing, flash-aware rendering and the error-page
// handler.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avdeev/bandboard/internal/view"
)

// Pages is embedded by every handler that renders HTML. It injects the
// pending flash messages into each page's data bag.
type Pages struct {
	Flash *view.Flash
}

// render pops queued flash messages and renders the named page. Popping
// writes the session cookie, so it must happen before the template
// produces body bytes; Echo renders straight to the response writer.
func (p *Pages) render(c echo.Context, status int, name string, data view.Data) error {
	if data == nil {
		data = view.Data{}
	}
	data["Flashes"] = p.Flash.Pop(c)
	return c.Render(status, name, data)
}

// parseID parses the :id path parameter. A non-numeric id can only come
// from a hand-edited URL, so callers treat failure as not-found rather
// than bad-request.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// ErrorPages is Echo's HTTPErrorHandler rendering the static 404 and 500
// views. Store failures on listing pages never reach here (those degrade
// to empty); this catches missing records, unknown routes and panics
// recovered by the Recover middleware.
func ErrorPages(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	name := "errors/500"
	if code == http.StatusNotFound {
		name = "errors/404"
	}
	if rErr := c.Render(code, name, view.Data{}); rErr != nil {
		c.Logger().Error(rErr)
	}
}
