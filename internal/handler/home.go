package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler renders the landing page.
type HomeHandler struct {
	Pages
}

// Index handles GET / and shows the landing page with any pending flash
// messages from a preceding mutation.
func (h *HomeHandler) Index(c echo.Context) error {
	return h.render(c, http.StatusOK, "home", nil)
}
