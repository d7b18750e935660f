package database

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// One statement per entry: the MySQL driver executes a single statement
// per Exec unless multiStatements is enabled on the DSN.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(120) NOT NULL,
		genres VARCHAR(500) NOT NULL DEFAULT '',
		address VARCHAR(120) NOT NULL DEFAULT '',
		city VARCHAR(120) NOT NULL,
		state VARCHAR(120) NOT NULL,
		phone VARCHAR(120) NOT NULL DEFAULT '',
		image_link VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link VARCHAR(120) NOT NULL DEFAULT '',
		website VARCHAR(120) NOT NULL DEFAULT '',
		seeking_talent TINYINT(1) NOT NULL DEFAULT 0,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		PRIMARY KEY (id),
		KEY idx_venues_city_state (city, state)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS artists (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(120) NOT NULL,
		genres VARCHAR(500) NOT NULL DEFAULT '',
		city VARCHAR(120) NOT NULL,
		state VARCHAR(120) NOT NULL,
		phone VARCHAR(120) NOT NULL DEFAULT '',
		website VARCHAR(120) NOT NULL DEFAULT '',
		image_link VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link VARCHAR(120) NOT NULL DEFAULT '',
		seeking_venue TINYINT(1) NOT NULL DEFAULT 0,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shows (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		venue_id BIGINT UNSIGNED NOT NULL,
		artist_id BIGINT UNSIGNED NOT NULL,
		start_time DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_shows_venue_start (venue_id, start_time),
		KEY idx_shows_artist_start (artist_id, start_time),
		CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id)
			REFERENCES venues (id) ON DELETE CASCADE,
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id)
			REFERENCES artists (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}
