// This file defines the Venue model and repository methods for CRUD and lookup
// operations. A Venue represents a physical location that can host shows.
// The (city, state) pair is a non-unique grouping key used by the listing
// page; venue names carry no uniqueness constraint.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
)

// Venue represents a venue entity persisted in the database. The ID field is
// the primary key and is auto-incremented by the DB. Genres are stored as a
// single comma-joined column and exposed as a slice.
type Venue struct {
	ID                 uint64   // ID is the unique identifier of the venue
	Name               string   // Name is the human-friendly name of the venue
	Genres             []string // Genres is the list of genre tags
	Address            string   // Address is the street address
	City               string   // City is the city used for grouping
	State              string   // State is the state used for grouping
	Phone              string   // Phone is a display-only contact number
	ImageLink          string   // ImageLink is the URL of the venue image
	FacebookLink       string   // FacebookLink is the venue's social link
	Website            string   // Website is the venue's own site
	SeekingTalent      bool     // SeekingTalent marks venues looking for performers
	SeekingDescription string   // SeekingDescription explains what the venue seeks
}

// Area is one (city, state) grouping key present across all venues.
type Area struct {
	City  string // City half of the grouping key
	State string // State half of the grouping key
}

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// venueCols is the column list shared by every venue SELECT.
const venueCols = `id, name, genres, address, city, state, phone, image_link,
	facebook_link, website, seeking_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.  There is no initialization logic beyond assigning the field.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue into the database.  On success the venue's
// ID field will be populated with the auto-generated value.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) error {
	const q = `INSERT INTO venues
		(name, genres, address, city, state, phone, image_link, facebook_link,
		 website, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, joinGenres(v.Genres), v.Address, v.City, v.State, v.Phone,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// scanVenue reads one venue row into a struct, splitting the genre column.
func scanVenue(row interface{ Scan(...any) error }) (*Venue, error) {
	var v Venue
	var genres string
	if err := row.Scan(&v.ID, &v.Name, &genres, &v.Address, &v.City, &v.State,
		&v.Phone, &v.ImageLink, &v.FacebookLink, &v.Website,
		&v.SeekingTalent, &v.SeekingDescription); err != nil {
		return nil, err
	}
	v.Genres = splitGenres(genres)
	return &v, nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found, so callers never dereference a missing entity.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*Venue, error) {
	const q = `SELECT ` + venueCols + ` FROM venues WHERE id = ?`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// DistinctAreas returns the distinct set of (city, state) pairs present
// across all venues, ordered for stable rendering.  When no venues exist
// it returns an empty slice and nil error.
func (r *VenueRepo) DistinctAreas(ctx context.Context) ([]Area, error) {
	const q = `SELECT DISTINCT city, state FROM venues ORDER BY state, city`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Area
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.City, &a.State); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCityState returns all venues matching the exact (city, state)
// pair ordered by id.
func (r *VenueRepo) ListByCityState(ctx context.Context, city, state string) ([]*Venue, error) {
	const q = `SELECT ` + venueCols + ` FROM venues WHERE city = ? AND state = ? ORDER BY id`
	return r.list(ctx, q, city, state)
}

// SearchByName performs a case-insensitive substring match against venue
// names only.  An empty term matches every venue; that is a deliberate
// pass-through, not a special case.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]*Venue, error) {
	const q = `SELECT ` + venueCols + ` FROM venues WHERE LOWER(name) LIKE ? ORDER BY id`
	return r.list(ctx, q, likePattern(term))
}

// list runs one of the venue SELECTs above and scans all rows.
func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]*Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every editable attribute of the venue row identified
// by v.ID.  This is a full replace with last-write-wins semantics; there
// is no optimistic-concurrency check.  It returns ErrVenueNotFound when
// the row does not exist.  Zero affected rows can also mean the values
// were already identical, so existence is checked separately.
func (r *VenueRepo) Update(ctx context.Context, v *Venue) error {
	const q = `UPDATE venues
		SET name = ?, genres = ?, address = ?, city = ?, state = ?, phone = ?,
		    image_link = ?, facebook_link = ?, website = ?,
		    seeking_talent = ?, seeking_description = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, joinGenres(v.Genres), v.Address, v.City, v.State, v.Phone,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent,
		v.SeekingDescription, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	const qExists = `SELECT 1 FROM venues WHERE id = ? LIMIT 1`
	var one int
	if err := r.db.QueryRowContext(ctx, qExists, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil // row exists but values were identical
}

// Delete removes a venue and all shows referencing it.  The deletion
// occurs within a transaction so no partial cleanup is ever committed,
// which also makes the operation safe to retry.  If the venue does not
// exist, ErrVenueNotFound is returned and nothing is touched.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Ensure rollback or commit at the end
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Verify the venue exists before cascading
	var one int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	// Cascade delete: remove shows booked at this venue first
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	// Finally delete the venue itself
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
