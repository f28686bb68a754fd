// Package sqlite implements the repository interfaces using SQLite as the
// storage backend (modernc.org/sqlite — pure Go, no C compiler needed).
//
// All SQL goes through parameterized queries; user input is never
// interpolated into SQL text. Inserts and updates read their row back
// with RETURNING, so callers get exactly what was persisted.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	// Importing the driver also registers it with database/sql under
	// the name "sqlite".
	sqlite3 "modernc.org/sqlite"
)

// SQLite extended result codes for uniqueness violations. A constraint
// error at insert time is the secondary guard behind the explicit
// duplicate pre-checks: two concurrent registrations can both pass the
// pre-check, but only one survives the UNIQUE index.
const (
	codeConstraintPrimaryKey = 1555
	codeConstraintUnique     = 2067
)

// isUniqueViolation reports whether err is a storage-level uniqueness
// violation.
func isUniqueViolation(err error) bool {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		return se.Code() == codeConstraintUnique || se.Code() == codeConstraintPrimaryKey
	}
	return false
}

// DB wraps a sql.DB connection pool and implements the repository
// interfaces.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in flight — required
	// for a web server sharing one database file.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS breeds (
			id    INTEGER PRIMARY KEY,
			breed TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS shelters (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			username     TEXT NOT NULL UNIQUE,
			password     TEXT NOT NULL,
			name         TEXT NOT NULL,
			address      TEXT NOT NULL DEFAULT '',
			city         TEXT NOT NULL DEFAULT '',
			state        TEXT NOT NULL DEFAULT '',
			postcode     TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			email        TEXT NOT NULL DEFAULT '',
			logo         TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			is_admin     INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS adopters (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			username         TEXT NOT NULL UNIQUE,
			password         TEXT NOT NULL,
			email            TEXT NOT NULL DEFAULT '',
			picture          TEXT NOT NULL DEFAULT '',
			description      TEXT NOT NULL DEFAULT '',
			private_outdoors INTEGER NOT NULL DEFAULT 0,
			num_of_dogs      INTEGER NOT NULL DEFAULT 0,
			preferred_gender TEXT NOT NULL DEFAULT '',
			preferred_age    TEXT NOT NULL DEFAULT '',
			is_admin         INTEGER NOT NULL DEFAULT 0
		);

		-- good_w_* columns are nullable: NULL means the compatibility is
		-- unknown, and an unknown row never matches an exact yes/no filter.
		CREATE TABLE IF NOT EXISTS adoptable_dogs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			breed_id    INTEGER NOT NULL REFERENCES breeds(id),
			gender      TEXT NOT NULL DEFAULT '',
			age         TEXT NOT NULL DEFAULT '',
			picture     TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			good_w_kids INTEGER,
			good_w_dogs INTEGER,
			good_w_cats INTEGER,
			shelter_id  INTEGER NOT NULL REFERENCES shelters(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_adoptable_dogs_shelter_id ON adoptable_dogs(shelter_id);

		-- dog_id is TEXT with no foreign key: the ledger holds remote
		-- catalog ids alongside local ones, and deleting a dog must not
		-- be blocked by existing favorites. Dangling entries are dropped
		-- lazily when favorites are listed.
		CREATE TABLE IF NOT EXISTS fav_dogs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			adopter_id INTEGER NOT NULL REFERENCES adopters(id) ON DELETE CASCADE,
			dog_id     TEXT NOT NULL,
			UNIQUE (adopter_id, dog_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
