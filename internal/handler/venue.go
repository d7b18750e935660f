// This file implements the venue pages: the grouped listing, name search,
// detail view with past/upcoming partition, and the create/edit/delete
// form flows. Read errors on listing pages degrade to an empty result;
// detail and mutation paths surface not-found and flashed failures.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avdeev/bandboard/internal/middleware"
	"github.com/avdeev/bandboard/internal/repository"
	"github.com/avdeev/bandboard/internal/view"
)

// VenueHandler aggregates the repositories the venue pages need.
type VenueHandler struct {
	Pages
	Venues *repository.VenueRepo
	Shows  *repository.ShowRepo
}

// SearchItem is one row of a search result page: the matched entity plus
// its upcoming-show count, recomputed at request time.
type SearchItem struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

// areaGroup is one (city, state) section of the venue listing.
type areaGroup struct {
	City   string
	State  string
	Venues []SearchItem
}

// List handles GET /venues. Venues are grouped by their exact
// (city, state) pair and each carries its upcoming-show count. Any read
// error is logged and the page renders with what was gathered so far.
func (h *VenueHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	now := middleware.Now(c).Format(repository.TimeLayout)

	var groups []areaGroup
	areas, err := h.Venues.DistinctAreas(ctx)
	if err != nil {
		c.Logger().Errorf("list venue areas: %v", err)
		areas = nil
	}
	for _, a := range areas {
		venues, err := h.Venues.ListByCityState(ctx, a.City, a.State)
		if err != nil {
			c.Logger().Errorf("list venues in %s, %s: %v", a.City, a.State, err)
			continue
		}
		group := areaGroup{City: a.City, State: a.State}
		for _, v := range venues {
			n, err := h.Shows.CountUpcomingByVenue(ctx, v.ID, now)
			if err != nil {
				c.Logger().Errorf("count upcoming for venue %d: %v", v.ID, err)
			}
			group.Venues = append(group.Venues, SearchItem{ID: v.ID, Name: v.Name, NumUpcomingShows: n})
		}
		groups = append(groups, group)
	}
	return h.render(c, http.StatusOK, "venues", view.Data{"Areas": groups})
}

// Search handles POST /venues/search. The match is a case-insensitive
// substring test against the name column only; an empty term matches
// everything. Read errors degrade to an empty result set.
func (h *VenueHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	now := middleware.Now(c).Format(repository.TimeLayout)
	term := c.FormValue("search_term")

	venues, err := h.Venues.SearchByName(ctx, term)
	if err != nil {
		c.Logger().Errorf("search venues %q: %v", term, err)
		venues = nil
	}
	results := make([]SearchItem, 0, len(venues))
	for _, v := range venues {
		n, err := h.Shows.CountUpcomingByVenue(ctx, v.ID, now)
		if err != nil {
			c.Logger().Errorf("count upcoming for venue %d: %v", v.ID, err)
		}
		results = append(results, SearchItem{ID: v.ID, Name: v.Name, NumUpcomingShows: n})
	}
	return h.render(c, http.StatusOK, "search_venues", view.Data{
		"SearchTerm": term,
		"Count":      len(results),
		"Results":    results,
	})
}

// Detail handles GET /venues/:id. Shows referencing the venue are
// partitioned into past and upcoming against the request's single "now"
// snapshot; start_time >= now counts as upcoming. A missing id renders
// the 404 page.
func (h *VenueHandler) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return err
	}

	now := middleware.Now(c)
	past := make([]repository.VenueShow, 0, len(shows))
	upcoming := make([]repository.VenueShow, 0, len(shows))
	for _, s := range shows {
		t, err := time.Parse(repository.TimeLayout, s.StartTime)
		if err != nil {
			c.Logger().Errorf("bad start_time %q for venue %d: %v", s.StartTime, id, err)
			continue
		}
		if t.Before(now) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return h.render(c, http.StatusOK, "show_venue", view.Data{
		"Venue":         v,
		"PastShows":     past,
		"UpcomingShows": upcoming,
		"PastCount":     len(past),
		"UpcomingCount": len(upcoming),
	})
}

// CreateForm handles GET /venues/create.
func (h *VenueHandler) CreateForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "new_venue", view.Data{
		"Genres": view.Genres,
		"States": view.States,
	})
}

// Create handles POST /venues/create. On a store failure nothing
// persists (single-row insert), the failure is flashed and the request
// still completes with a redirect rather than a 500.
func (h *VenueHandler) Create(c echo.Context) error {
	v := venueFromForm(c)
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		c.Logger().Errorf("create venue %q: %v", v.Name, err)
		h.Flash.Add(c, "An error occurred. Venue "+v.Name+" could not be listed.")
	} else {
		h.Flash.Add(c, "Venue "+v.Name+" was successfully listed!")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditForm handles GET /venues/:id/edit and prefills the form with the
// current row. Missing ids render the 404 page.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "edit_venue", view.Data{
		"Venue":  v,
		"Genres": view.Genres,
		"States": view.States,
	})
}

// Edit handles POST /venues/:id/edit. Every editable attribute is
// overwritten unconditionally; last writer wins.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	v := venueFromForm(c)
	v.ID = id
	err = h.Venues.Update(c.Request().Context(), v)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		c.Logger().Errorf("update venue %d: %v", id, err)
		h.Flash.Add(c, "An error occurred. Venue "+v.Name+" could not be updated.")
	} else {
		h.Flash.Add(c, "Venue "+v.Name+" was successfully updated!")
	}
	return c.Redirect(http.StatusSeeOther, "/venues/"+c.Param("id"))
}

// Delete handles POST /venues/:id (the overloaded verb on the canonical
// path). The repository removes the venue and its shows in one
// transaction; success and failure are flashed distinctly instead of
// pretending every delete worked.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	err = h.Venues.Delete(c.Request().Context(), id)
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		return echo.ErrNotFound
	case err != nil:
		c.Logger().Errorf("delete venue %d: %v", id, err)
		h.Flash.Add(c, "An error occurred. Venue could not be removed.")
	default:
		h.Flash.Add(c, "Venue is removed.")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// venueFromForm builds a Venue from the submitted form fields. Checkbox
// absence means false; the genre multi-select arrives as repeated values.
func venueFromForm(c echo.Context) *repository.Venue {
	form, _ := c.FormParams()
	return &repository.Venue{
		Name:               c.FormValue("name"),
		Genres:             form["genres"],
		Address:            c.FormValue("address"),
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Phone:              c.FormValue("phone"),
		ImageLink:          c.FormValue("image_link"),
		FacebookLink:       c.FormValue("facebook_link"),
		Website:            c.FormValue("website"),
		SeekingTalent:      c.FormValue("seeking_talent") != "",
		SeekingDescription: c.FormValue("seeking_description"),
	}
}
