// This file implements the artist pages, mirroring the venue flows:
// listing, name search, detail with past/upcoming partition, and the
// create/edit/delete forms. Artist deletion cascades to its shows the
// same way venue deletion does.
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

// ArtistHandler aggregates the repositories the artist pages need.
type ArtistHandler struct {
	Pages
	Artists *repository.ArtistRepo
	Shows   *repository.ShowRepo
}

// List handles GET /artists. The page renders id and name per artist;
// read errors degrade to an empty listing.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Artists.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list artists: %v", err)
		artists = nil
	}
	return h.render(c, http.StatusOK, "artists", view.Data{"Artists": artists})
}

// Search handles POST /artists/search, a case-insensitive substring
// match against artist names only.
func (h *ArtistHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	now := middleware.Now(c).Format(repository.TimeLayout)
	term := c.FormValue("search_term")

	artists, err := h.Artists.SearchByName(ctx, term)
	if err != nil {
		c.Logger().Errorf("search artists %q: %v", term, err)
		artists = nil
	}
	results := make([]SearchItem, 0, len(artists))
	for _, a := range artists {
		n, err := h.Shows.CountUpcomingByArtist(ctx, a.ID, now)
		if err != nil {
			c.Logger().Errorf("count upcoming for artist %d: %v", a.ID, err)
		}
		results = append(results, SearchItem{ID: a.ID, Name: a.Name, NumUpcomingShows: n})
	}
	return h.render(c, http.StatusOK, "search_artists", view.Data{
		"SearchTerm": term,
		"Count":      len(results),
		"Results":    results,
	})
}

// Detail handles GET /artists/:id with the same single-snapshot
// past/upcoming partition as the venue detail page.
func (h *ArtistHandler) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return err
	}

	now := middleware.Now(c)
	past := make([]repository.ArtistShow, 0, len(shows))
	upcoming := make([]repository.ArtistShow, 0, len(shows))
	for _, s := range shows {
		t, err := time.Parse(repository.TimeLayout, s.StartTime)
		if err != nil {
			c.Logger().Errorf("bad start_time %q for artist %d: %v", s.StartTime, id, err)
			continue
		}
		if t.Before(now) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return h.render(c, http.StatusOK, "show_artist", view.Data{
		"Artist":        a,
		"PastShows":     past,
		"UpcomingShows": upcoming,
		"PastCount":     len(past),
		"UpcomingCount": len(upcoming),
	})
}

// CreateForm handles GET /artists/create.
func (h *ArtistHandler) CreateForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "new_artist", view.Data{
		"Genres": view.Genres,
		"States": view.States,
	})
}

// Create handles POST /artists/create with flashed success or failure.
func (h *ArtistHandler) Create(c echo.Context) error {
	a := artistFromForm(c)
	if err := h.Artists.Create(c.Request().Context(), a); err != nil {
		c.Logger().Errorf("create artist %q: %v", a.Name, err)
		h.Flash.Add(c, "An error occurred. Artist "+a.Name+" could not be listed.")
	} else {
		h.Flash.Add(c, "Artist "+a.Name+" was successfully listed!")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// EditForm handles GET /artists/:id/edit.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "edit_artist", view.Data{
		"Artist": a,
		"Genres": view.Genres,
		"States": view.States,
	})
}

// Edit handles POST /artists/:id/edit, a full replace of every editable
// attribute.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	a := artistFromForm(c)
	a.ID = id
	err = h.Artists.Update(c.Request().Context(), a)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		c.Logger().Errorf("update artist %d: %v", id, err)
		h.Flash.Add(c, "An error occurred. Artist "+a.Name+" could not be updated.")
	} else {
		h.Flash.Add(c, "Artist "+a.Name+" was successfully updated!")
	}
	return c.Redirect(http.StatusSeeOther, "/artists/"+c.Param("id"))
}

// Delete handles POST /artists/:id, cascading to the artist's shows.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.ErrNotFound
	}
	err = h.Artists.Delete(c.Request().Context(), id)
	switch {
	case errors.Is(err, repository.ErrArtistNotFound):
		return echo.ErrNotFound
	case err != nil:
		c.Logger().Errorf("delete artist %d: %v", id, err)
		h.Flash.Add(c, "An error occurred. Artist could not be removed.")
	default:
		h.Flash.Add(c, "Artist is removed.")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// artistFromForm builds an Artist from the submitted form fields.
func artistFromForm(c echo.Context) *repository.Artist {
	form, _ := c.FormParams()
	return &repository.Artist{
		Name:               c.FormValue("name"),
		Genres:             form["genres"],
		City:               c.FormValue("city"),
		State:              c.FormValue("state"),
		Phone:              c.FormValue("phone"),
		Website:            c.FormValue("website"),
		ImageLink:          c.FormValue("image_link"),
		FacebookLink:       c.FormValue("facebook_link"),
		SeekingVenue:       c.FormValue("seeking_venue") != "",
		SeekingDescription: c.FormValue("seeking_description"),
	}
}
