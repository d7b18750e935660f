// Package testutil backs the repository and handler tests with an
// in-memory sqlite store and seed helpers. The schema mirrors the MySQL
// one in internal/database with sqlite column types; the queries under
// test only use constructs both dialects share (? placeholders, LOWER,
// LIKE, COUNT, joins) and time strings compare chronologically in both.
package testutil

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"

	"github.com/avdeev/bandboard/internal/handler"
	"github.com/avdeev/bandboard/internal/middleware"
	"github.com/avdeev/bandboard/internal/repository"
	"github.com/avdeev/bandboard/internal/router"
	"github.com/avdeev/bandboard/internal/view"
)

// SetupTestDB opens a fresh in-memory database with the full schema.
// The pool is pinned to one connection so the in-memory store is shared
// across every statement of a test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE venues (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			genres TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			image_link TEXT NOT NULL DEFAULT '',
			facebook_link TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			seeking_talent INTEGER NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE artists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			genres TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			image_link TEXT NOT NULL DEFAULT '',
			facebook_link TEXT NOT NULL DEFAULT '',
			seeking_venue INTEGER NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE shows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			venue_id INTEGER NOT NULL REFERENCES venues (id) ON DELETE CASCADE,
			artist_id INTEGER NOT NULL REFERENCES artists (id) ON DELETE CASCADE,
			start_time TEXT NOT NULL
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create schema: %v", err)
		}
	}
	return db
}

// NewServer builds an Echo instance wired exactly like main: renderer,
// error pages, request clock and all routes, backed by the given store.
func NewServer(db *sql.DB) *echo.Echo {
	e := echo.New()
	e.Renderer = view.NewRenderer()
	e.HTTPErrorHandler = handler.ErrorPages
	e.Use(middleware.RequestClock())

	pages := handler.Pages{Flash: view.NewFlash("test-session-secret")}
	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	router.RegisterRoutes(e,
		&handler.HomeHandler{Pages: pages},
		&handler.VenueHandler{Pages: pages, Venues: venueRepo, Shows: showRepo},
		&handler.ArtistHandler{Pages: pages, Artists: artistRepo, Shows: showRepo},
		&handler.ShowHandler{Pages: pages, Shows: showRepo},
	)
	return e
}

// CreateTestVenue inserts a venue row and returns its id.
func CreateTestVenue(t *testing.T, db *sql.DB, name, city, state string) uint64 {
	t.Helper()

	res, err := db.Exec(`
		INSERT INTO venues (name, genres, address, city, state)
		VALUES (?, 'Jazz,Folk', '123 Main St', ?, ?)
	`, name, city, state)
	if err != nil {
		t.Fatalf("Failed to create test venue: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// CreateTestArtist inserts an artist row and returns its id.
func CreateTestArtist(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()

	res, err := db.Exec(`
		INSERT INTO artists (name, genres, city, state)
		VALUES (?, 'Jazz', 'San Francisco', 'CA')
	`, name)
	if err != nil {
		t.Fatalf("Failed to create test artist: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// CreateTestShow inserts a show row. start must use repository.TimeLayout.
func CreateTestShow(t *testing.T, db *sql.DB, venueID, artistID uint64, start string) uint64 {
	t.Helper()

	res, err := db.Exec(`
		INSERT INTO shows (venue_id, artist_id, start_time)
		VALUES (?, ?, ?)
	`, venueID, artistID, start)
	if err != nil {
		t.Fatalf("Failed to create test show: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// TimeFromNow formats now+d in the storage layout, UTC.
func TimeFromNow(d time.Duration) string {
	return time.Now().UTC().Add(d).Format(repository.TimeLayout)
}

// GetRequest runs a GET against the wired server and records the response.
func GetRequest(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// PostForm runs a form-encoded POST against the wired server.
func PostForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
