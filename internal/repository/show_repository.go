// This file defines the Show model and repository methods for shows. A Show
// represents a booking: one artist performs at one venue at one start time.
// Shows carry their own identifier, so the same artist/venue pair can be
// booked any number of times.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
)

// Show represents one booking row.
// NOTE: Time strings are stored in DB format "2006-01-02 15:04:05" (UTC).
type Show struct {
	ID        uint64 // ID is the primary key of the show
	VenueID   uint64 // VenueID references the venue hosting the show
	ArtistID  uint64 // ArtistID references the performing artist
	StartTime string // StartTime is the DB timestamp when the show begins ("YYYY-MM-DD HH:MM:SS" UTC)
}

// VenueShow is a show listed on a venue detail page, denormalized with
// the counterpart artist's display fields.
type VenueShow struct {
	ArtistID        uint64 // artist performing at the venue
	ArtistName      string // artist display name
	ArtistImageLink string // artist image for the listing card
	StartTime       string // show start time ("YYYY-MM-DD HH:MM:SS" UTC)
}

// ArtistShow is a show listed on an artist detail page, denormalized with
// the counterpart venue's display fields.
type ArtistShow struct {
	VenueID        uint64 // venue hosting the artist
	VenueName      string // venue display name
	VenueImageLink string // venue image for the listing card
	StartTime      string // show start time ("YYYY-MM-DD HH:MM:SS" UTC)
}

// ShowListing is one row of the global /shows page with both names
// denormalized.
type ShowListing struct {
	VenueID         uint64 // venue half of the booking
	VenueName       string // venue display name
	ArtistID        uint64 // artist half of the booking
	ArtistName      string // artist display name
	ArtistImageLink string // artist image for the listing card
	StartTime       string // show start time ("YYYY-MM-DD HH:MM:SS" UTC)
}

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show into the database and assigns the generated
// ID back to the show struct.  The caller must provide venue_id,
// artist_id and start_time.  Both ids are enforced by the store's
// foreign-key constraints, so inserting against a missing venue or
// artist fails at the DB level.
func (r *ShowRepo) Create(ctx context.Context, s *Show) error {
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*Show, error) {
	const q = `SELECT id, venue_id, artist_id, start_time FROM shows WHERE id = ?`
	var s Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.VenueID, &s.ArtistID, &s.StartTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every show joined with its venue and artist names for
// the global listing page.  Results are ordered by start time ascending.
// When no shows exist it returns an empty slice and nil error.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowListing, error) {
	const q = `SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
               FROM shows s
               JOIN venues v ON v.id = s.venue_id
               JOIN artists a ON a.id = s.artist_id
               ORDER BY s.start_time ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ShowListing
	for rows.Next() {
		var l ShowListing
		if err := rows.Scan(
			&l.VenueID, &l.VenueName, &l.ArtistID, &l.ArtistName, &l.ArtistImageLink, &l.StartTime,
		); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByVenue returns all shows booked at a venue, joined with the
// counterpart artist, ordered by start time ascending.  The past/upcoming
// partition happens in the caller so one "now" snapshot covers the whole
// request.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]VenueShow, error) {
	const q = `SELECT s.artist_id, a.name, a.image_link, s.start_time
               FROM shows s
               JOIN artists a ON a.id = s.artist_id
               WHERE s.venue_id = ?
               ORDER BY s.start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []VenueShow
	for rows.Next() {
		var s VenueShow
		if err := rows.Scan(&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByArtist returns all shows an artist is booked for, joined with the
// counterpart venue, ordered by start time ascending.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]ArtistShow, error) {
	const q = `SELECT s.venue_id, v.name, v.image_link, s.start_time
               FROM shows s
               JOIN venues v ON v.id = s.venue_id
               WHERE s.artist_id = ?
               ORDER BY s.start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ArtistShow
	for rows.Next() {
		var s ArtistShow
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountUpcomingByVenue counts shows at a venue strictly after the given
// instant.  The value is recomputed on every call; nothing is cached or
// materialized.  now must use TimeLayout.
func (r *ShowRepo) CountUpcomingByVenue(ctx context.Context, venueID uint64, now string) (int, error) {
	const q = `SELECT COUNT(*) FROM shows WHERE venue_id = ? AND start_time > ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, venueID, now).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountUpcomingByArtist counts shows an artist performs strictly after
// the given instant.  now must use TimeLayout.
func (r *ShowRepo) CountUpcomingByArtist(ctx context.Context, artistID uint64, now string) (int, error) {
	const q = `SELECT COUNT(*) FROM shows WHERE artist_id = ? AND start_time > ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, artistID, now).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
