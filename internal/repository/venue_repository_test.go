package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev/bandboard/internal/repository"
	"github.com/avdeev/bandboard/internal/testutil"
)

func TestVenueCreateAndGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVenueRepo(db)
	ctx := context.Background()

	v := &repository.Venue{
		Name:               "The Musical Hop",
		Genres:             []string{"Jazz", "Reggae", "Swing"},
		Address:            "1015 Folsom Street",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		ImageLink:          "https://example.com/hop.jpg",
		FacebookLink:       "https://facebook.com/themusicalhop",
		Website:            "https://themusicalhop.com",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist.",
	}
	require.NoError(t, repo.Create(ctx, v))
	require.NotZero(t, v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestVenueGetByIDNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVenueRepo(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)
}

func TestVenueDistinctAreas(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVenueRepo(db)
	ctx := context.Background()

	areas, err := repo.DistinctAreas(ctx)
	require.NoError(t, err)
	assert.Empty(t, areas)

	testutil.CreateTestVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	testutil.CreateTestVenue(t, db, "Park Square Live Music & Coffee", "San Francisco", "CA")
	testutil.CreateTestVenue(t, db, "The Dueling Pianos Bar", "New York", "NY")

	areas, err = repo.DistinctAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, repository.Area{City: "San Francisco", State: "CA"}, areas[0])
	assert.Equal(t, repository.Area{City: "New York", State: "NY"}, areas[1])

	sf, err := repo.ListByCityState(ctx, "San Francisco", "CA")
	require.NoError(t, err)
	require.Len(t, sf, 2)
	assert.Equal(t, "The Musical Hop", sf[0].Name)
	assert.Equal(t, "Park Square Live Music & Coffee", sf[1].Name)
}

func TestVenueSearchByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVenueRepo(db)
	ctx := context.Background()

	testutil.CreateTestVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	testutil.CreateTestVenue(t, db, "Park Square Live Music & Coffee", "San Francisco", "CA")
	testutil.CreateTestVenue(t, db, "The Wild Sax Band Hall", "New York", "NY")

	// Case-insensitive substring against the name only.
	got, err := repo.SearchByName(ctx, "band")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Wild Sax Band Hall", got[0].Name)

	got, err = repo.SearchByName(ctx, "MUSIC")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Empty term is a pass-through matching every row.
	got, err = repo.SearchByName(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// Non-matching term yields an empty result, not an error.
	got, err = repo.SearchByName(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVenueUpdateFullReplace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVenueRepo(db)
	ctx := context.Background()

	id := testutil.CreateTestVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	otherID := testutil.CreateTestVenue(t, db, "The Dueling Pianos Bar", "New York", "NY")

	updated := &repository.Venue{
		ID:     id,
		Name:   "The Renamed Hop",
		Genres: []string{"Blues"},
		City:   "Oakland",
		State:  "CA",
	}
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "The Renamed Hop", got.Name)
	assert.Equal(t, []string{"Blues"}, got.Genres)
	assert.Equal(t, "Oakland", got.City)
	// Full replace: fields absent from the update are overwritten too.
	assert.Empty(t, got.Address)
	assert.False(t, got.SeekingTalent)

	// Only the targeted row changes.
	other, err := repo.GetByID(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, "The Dueling Pianos Bar", other.Name)

	// Re-submitting identical values is not an error.
	require.NoError(t, repo.Update(ctx, updated))

	updated.ID = 9999
	assert.ErrorIs(t, repo.Update(ctx, updated), repository.ErrVenueNotFound)
}

func TestVenueDeleteCascadesToShows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewVenueRepo(db)
	ctx := context.Background()

	venueID := testutil.CreateTestVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	keptID := testutil.CreateTestVenue(t, db, "Park Square Live Music & Coffee", "San Francisco", "CA")
	artistID := testutil.CreateTestArtist(t, db, "Guns N Petals")
	testutil.CreateTestShow(t, db, venueID, artistID, testutil.TimeFromNow(24*time.Hour))
	testutil.CreateTestShow(t, db, venueID, artistID, testutil.TimeFromNow(-24*time.Hour))
	keptShow := testutil.CreateTestShow(t, db, keptID, artistID, testutil.TimeFromNow(48*time.Hour))

	require.NoError(t, repo.Delete(ctx, venueID))

	_, err := repo.GetByID(ctx, venueID)
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM shows WHERE venue_id = ?`, venueID).Scan(&n))
	assert.Zero(t, n, "shows referencing the deleted venue must be gone")

	// The artist and unrelated shows are intact.
	shows := repository.NewShowRepo(db)
	s, err := shows.GetByID(ctx, keptShow)
	require.NoError(t, err)
	assert.Equal(t, keptID, s.VenueID)
	artists := repository.NewArtistRepo(db)
	_, err = artists.GetByID(ctx, artistID)
	assert.NoError(t, err)

	// Deleting again reports not found and changes nothing.
	assert.ErrorIs(t, repo.Delete(ctx, venueID), repository.ErrVenueNotFound)
}
