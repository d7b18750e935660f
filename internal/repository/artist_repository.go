// This file defines the Artist model and repository methods for CRUD and
// lookup operations. An Artist represents a performer that can be booked
// into venues through shows.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Artist represents a performer entity persisted in the database. The ID
// field is the primary key and is auto-incremented by the DB. Genres are
// stored as a single comma-joined column and exposed as a slice.
type Artist struct {
	ID                 uint64   // ID is the unique identifier of the artist
	Name               string   // Name is the performer's display name
	Genres             []string // Genres is the list of genre tags
	City               string   // City is where the artist is based
	State              string   // State is where the artist is based
	Phone              string   // Phone is a display-only contact number
	Website            string   // Website is the artist's own site
	ImageLink          string   // ImageLink is the URL of the artist image
	FacebookLink       string   // FacebookLink is the artist's social link
	SeekingVenue       bool     // SeekingVenue marks artists looking for venues
	SeekingDescription string   // SeekingDescription explains what the artist seeks
}

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

const artistCols = `id, name, genres, city, state, phone, website, image_link,
	facebook_link, seeking_venue, seeking_description`

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts a new artist into the database.  On success the artist's
// ID field will be populated with the auto-generated value.
func (r *ArtistRepo) Create(ctx context.Context, a *Artist) error {
	const q = `INSERT INTO artists
		(name, genres, city, state, phone, website, image_link, facebook_link,
		 seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, joinGenres(a.Genres), a.City, a.State, a.Phone, a.Website,
		a.ImageLink, a.FacebookLink, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

func scanArtist(row interface{ Scan(...any) error }) (*Artist, error) {
	var a Artist
	var genres string
	if err := row.Scan(&a.ID, &a.Name, &genres, &a.City, &a.State, &a.Phone,
		&a.Website, &a.ImageLink, &a.FacebookLink,
		&a.SeekingVenue, &a.SeekingDescription); err != nil {
		return nil, err
	}
	a.Genres = splitGenres(genres)
	return &a, nil
}

// GetByID fetches an artist by its ID.  It returns ErrArtistNotFound if
// no row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*Artist, error) {
	const q = `SELECT ` + artistCols + ` FROM artists WHERE id = ?`
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAll returns all artists ordered by id.  The listing page only
// renders id and name but the full record is returned so callers don't
// need a second lookup.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]*Artist, error) {
	const q = `SELECT ` + artistCols + ` FROM artists ORDER BY id`
	return r.list(ctx, q)
}

// SearchByName performs a case-insensitive substring match against artist
// names only.  An empty term matches every artist.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]*Artist, error) {
	const q = `SELECT ` + artistCols + ` FROM artists WHERE LOWER(name) LIKE ? ORDER BY id`
	return r.list(ctx, q, likePattern(term))
}

func (r *ArtistRepo) list(ctx context.Context, q string, args ...any) ([]*Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every editable attribute of the artist row identified
// by a.ID.  Full replace, last-write-wins.  Returns ErrArtistNotFound
// when the row does not exist; zero affected rows with an existing row
// means the values were already identical and is not an error.
func (r *ArtistRepo) Update(ctx context.Context, a *Artist) error {
	const q = `UPDATE artists
		SET name = ?, genres = ?, city = ?, state = ?, phone = ?, website = ?,
		    image_link = ?, facebook_link = ?, seeking_venue = ?, seeking_description = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, joinGenres(a.Genres), a.City, a.State, a.Phone, a.Website,
		a.ImageLink, a.FacebookLink, a.SeekingVenue, a.SeekingDescription, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	const qExists = `SELECT 1 FROM artists WHERE id = ? LIMIT 1`
	var one int
	if err := r.db.QueryRowContext(ctx, qExists, a.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	return nil
}

// Delete removes an artist and all shows referencing it inside one
// transaction.  The cascade is deliberately symmetric with venue
// deletion.  Returns ErrArtistNotFound when the artist does not exist.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	if err = tx.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
