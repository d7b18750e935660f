package handler_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev/bandboard/internal/testutil"
)

func TestArtistListing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := testutil.NewServer(db)

	rec := testutil.GetRequest(e, "/artists")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No artists listed yet")

	testutil.CreateTestArtist(t, db, "Guns N Petals")
	testutil.CreateTestArtist(t, db, "Matt Quevedo")

	rec = testutil.GetRequest(e, "/artists")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Guns N Petals")
	assert.Contains(t, rec.Body.String(), "Matt Quevedo")
}

func TestArtistCreateRoundtrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := testutil.NewServer(db)

	rec := testutil.PostForm(e, "/artists/create", url.Values{
		"name":                {"The Wild Sax Band"},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"genres":              {"Jazz", "Classical"},
		"phone":               {"432-325-5432"},
		"seeking_venue":       {"y"},
		"seeking_description": {"Looking for bar gigs."},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	home := getWithCookies(e, "/", rec)
	assert.Contains(t, home.Body.String(), "Artist The Wild Sax Band was successfully listed!")

	var id uint64
	require.NoError(t, db.QueryRow(`SELECT id FROM artists WHERE name = ?`, "The Wild Sax Band").Scan(&id))

	// The detail view returns exactly the submitted values.
	detail := testutil.GetRequest(e, "/artists/"+itoa(id))
	require.Equal(t, http.StatusOK, detail.Code)
	body := detail.Body.String()
	assert.Contains(t, body, "The Wild Sax Band")
	assert.Contains(t, body, "San Francisco, CA")
	assert.Contains(t, body, "Jazz, Classical")
	assert.Contains(t, body, "432-325-5432")
	assert.Contains(t, body, "Currently seeking performance venues")
	assert.Contains(t, body, "Looking for bar gigs.")
}

func TestArtistDetailPartitionsShows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := testutil.NewServer(db)

	artistID := testutil.CreateTestArtist(t, db, "Guns N Petals")
	venueID := testutil.CreateTestVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	testutil.CreateTestShow(t, db, venueID, artistID, testutil.TimeFromNow(-48*time.Hour))
	testutil.CreateTestShow(t, db, venueID, artistID, testutil.TimeFromNow(48*time.Hour))
	testutil.CreateTestShow(t, db, venueID, artistID, testutil.TimeFromNow(96*time.Hour))

	rec := testutil.GetRequest(e, "/artists/"+itoa(artistID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 upcoming shows")
	assert.Contains(t, rec.Body.String(), "1 past shows")
	assert.Contains(t, rec.Body.String(), "The Musical Hop")
}

func TestArtistDetailNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := testutil.NewServer(db)

	rec := testutil.GetRequest(e, "/artists/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 Not Found")
}

func TestArtistSearchCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := testutil.NewServer(db)

	testutil.CreateTestArtist(t, db, "Guns N Petals")
	testutil.CreateTestArtist(t, db, "The Wild Sax Band")

	rec := testutil.PostForm(e, "/artists/search", url.Values{"search_term": {"band"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 result")
	assert.Contains(t, rec.Body.String(), "The Wild Sax Band")
	assert.NotContains(t, rec.Body.String(), "Guns N Petals")
}

func TestArtistEdit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := testutil.NewServer(db)

	id := testutil.CreateTestArtist(t, db, "Matt Quevedo")

	rec := testutil.PostForm(e, "/artists/"+itoa(id)+"/edit", url.Values{
		"name":  {"Matt Quevedo Trio"},
		"city":  {"New York"},
		"state": {"NY"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	detail := testutil.GetRequest(e, "/artists/"+itoa(id))
	assert.Contains(t, detail.Body.String(), "Matt Quevedo Trio")
	assert.Contains(t, detail.Body.String(), "New York, NY")

	rec = testutil.PostForm(e, "/artists/999/edit", url.Values{"name": {"x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArtistDeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := testutil.NewServer(db)

	artistID := testutil.CreateTestArtist(t, db, "Guns N Petals")
	venueID := testutil.CreateTestVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	testutil.CreateTestShow(t, db, venueID, artistID, testutil.TimeFromNow(24*time.Hour))

	rec := testutil.PostForm(e, "/artists/"+itoa(artistID), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Equal(t, http.StatusNotFound, testutil.GetRequest(e, "/artists/"+itoa(artistID)).Code)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM shows`).Scan(&n))
	assert.Zero(t, n)

	// The venue keeps existing with an empty show history.
	detail := testutil.GetRequest(e, "/venues/"+itoa(venueID))
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "0 upcoming shows")
}
