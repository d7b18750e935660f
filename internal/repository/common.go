// Package repository contains data access logic separated from HTTP handlers.
// Each entity (venue, artist, show) gets its own repository over a shared
// *sql.DB.  All queries are parameterized; none of the repositories cache
// anything, so every read reflects the store at call time.
package repository

import "strings"

// TimeLayout is the format show start times are stored in.
// NOTE: Time strings are stored in DB format "2006-01-02 15:04:05" (UTC).
// String comparison of this layout is chronological, which keeps the
// start_time predicates portable across stores.
const TimeLayout = "2006-01-02 15:04:05"

// joinGenres flattens a genre tag list into the single column the store
// keeps.  Tags themselves never contain commas (the form vocabulary has
// none), so a plain join is unambiguous.
func joinGenres(genres []string) string {
	return strings.Join(genres, ",")
}

// splitGenres is the inverse of joinGenres.  An empty column yields nil
// rather than a one-element slice holding "".
func splitGenres(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// likePattern builds the argument for a case-insensitive substring match
// against LOWER(col) LIKE ?.  An empty term yields "%%", which matches
// every row; that pass-through is deliberate.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
