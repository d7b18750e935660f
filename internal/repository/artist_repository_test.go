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

func TestArtistCreateAndGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewArtistRepo(db)
	ctx := context.Background()

	a := &repository.Artist{
		Name:               "Guns N Petals",
		Genres:             []string{"Rock n Roll"},
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Website:            "https://gunsnpetalsband.com",
		ImageLink:          "https://example.com/gnp.jpg",
		FacebookLink:       "https://facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	}
	require.NoError(t, repo.Create(ctx, a))
	require.NotZero(t, a.ID)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestArtistGetByIDNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewArtistRepo(db)

	_, err := repo.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, repository.ErrArtistNotFound)
}

func TestArtistListAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewArtistRepo(db)
	ctx := context.Background()

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	testutil.CreateTestArtist(t, db, "Guns N Petals")
	testutil.CreateTestArtist(t, db, "Matt Quevedo")
	testutil.CreateTestArtist(t, db, "The Wild Sax Band")

	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Guns N Petals", all[0].Name)
	assert.Equal(t, "The Wild Sax Band", all[2].Name)
}

func TestArtistSearchByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewArtistRepo(db)
	ctx := context.Background()

	testutil.CreateTestArtist(t, db, "Guns N Petals")
	testutil.CreateTestArtist(t, db, "Matt Quevedo")
	testutil.CreateTestArtist(t, db, "The Wild Sax Band")

	got, err := repo.SearchByName(ctx, "band")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Wild Sax Band", got[0].Name)

	got, err = repo.SearchByName(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = repo.SearchByName(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = repo.SearchByName(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestArtistUpdateFullReplace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewArtistRepo(db)
	ctx := context.Background()

	id := testutil.CreateTestArtist(t, db, "Matt Quevedo")
	otherID := testutil.CreateTestArtist(t, db, "Guns N Petals")

	updated := &repository.Artist{
		ID:     id,
		Name:   "Matt Quevedo Trio",
		Genres: []string{"Jazz", "Classical"},
		City:   "New York",
		State:  "NY",
	}
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Matt Quevedo Trio", got.Name)
	assert.Equal(t, []string{"Jazz", "Classical"}, got.Genres)
	assert.Equal(t, "New York", got.City)
	assert.Empty(t, got.Phone)

	other, err := repo.GetByID(ctx, otherID)
	require.NoError(t, err)
	assert.Equal(t, "Guns N Petals", other.Name)

	updated.ID = 4242
	assert.ErrorIs(t, repo.Update(ctx, updated), repository.ErrArtistNotFound)
}

func TestArtistDeleteCascadesToShows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewArtistRepo(db)
	ctx := context.Background()

	artistID := testutil.CreateTestArtist(t, db, "Guns N Petals")
	venueID := testutil.CreateTestVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	testutil.CreateTestShow(t, db, venueID, artistID, testutil.TimeFromNow(24*time.Hour))

	require.NoError(t, repo.Delete(ctx, artistID))

	_, err := repo.GetByID(ctx, artistID)
	assert.ErrorIs(t, err, repository.ErrArtistNotFound)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM shows WHERE artist_id = ?`, artistID).Scan(&n))
	assert.Zero(t, n, "artist deletion cascades to its shows")

	// The venue survives its shows.
	venues := repository.NewVenueRepo(db)
	_, err = venues.GetByID(ctx, venueID)
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, artistID), repository.ErrArtistNotFound)
}
