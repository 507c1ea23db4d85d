package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

func Connect(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables the service needs if they are missing.
// Run once at startup, before the first request.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id               SERIAL PRIMARY KEY,
			task_name        TEXT NOT NULL UNIQUE,
			scale_difficulty INT NOT NULL,
			priority         TEXT NOT NULL DEFAULT 'Pending',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			due_at           TIMESTAMPTZ
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS task_scores (
			id            SERIAL PRIMARY KEY,
			task_name     TEXT NOT NULL,
			score         DOUBLE PRECISION NOT NULL,
			calculated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}
