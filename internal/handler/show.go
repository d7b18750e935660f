// This file implements the show pages: the global denormalized listing
// and the create form. Shows have no edit or delete flow; they disappear
// when their venue or artist is removed.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avdeev/bandboard/internal/repository"
	"github.com/avdeev/bandboard/internal/view"
)

// formTimeLayout is the value format of an HTML datetime-local input.
const formTimeLayout = "2006-01-02T15:04"

// ShowHandler serves the show listing and creation flow.
type ShowHandler struct {
	Pages
	Shows *repository.ShowRepo
}

// List handles GET /shows with venue and artist names denormalized into
// each row. Read errors degrade to an empty listing.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list shows: %v", err)
		shows = nil
	}
	return h.render(c, http.StatusOK, "shows", view.Data{"Shows": shows})
}

// CreateForm handles GET /shows/create.
func (h *ShowHandler) CreateForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "new_show", nil)
}

// Create handles POST /shows/create. Both ids must reference existing
// rows; that is enforced by the store's foreign keys, and a violation
// surfaces as a flashed failure like any other store error.
func (h *ShowHandler) Create(c echo.Context) error {
	fail := func() error {
		h.Flash.Add(c, "An error occurred. Show could not be listed.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	artistID, err := strconv.ParseUint(c.FormValue("artist_id"), 10, 64)
	if err != nil {
		return fail()
	}
	venueID, err := strconv.ParseUint(c.FormValue("venue_id"), 10, 64)
	if err != nil {
		return fail()
	}
	start, err := parseStartTime(c.FormValue("start_time"))
	if err != nil {
		return fail()
	}

	s := &repository.Show{
		VenueID:   venueID,
		ArtistID:  artistID,
		StartTime: start.UTC().Format(repository.TimeLayout),
	}
	if err := h.Shows.Create(c.Request().Context(), s); err != nil {
		c.Logger().Errorf("create show venue=%d artist=%d: %v", venueID, artistID, err)
		return fail()
	}
	h.Flash.Add(c, "Show was successfully listed!")
	return c.Redirect(http.StatusSeeOther, "/")
}

// parseStartTime accepts the browser's datetime-local format and the
// storage layout, both read as UTC.
func parseStartTime(s string) (time.Time, error) {
	if t, err := time.Parse(formTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(repository.TimeLayout, s)
}
