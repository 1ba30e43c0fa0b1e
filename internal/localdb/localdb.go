package localdb

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var DBClient *sql.DB

func SetupDB(dbPath string) (*sql.DB, error) {
	if DBClient != nil {
		return DBClient, nil
	}

	// WAL mode and busy timeout guard against concurrent handler access.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// sqlite is a single writer, keep the pool at one connection.
	db.SetMaxOpenConns(1)

	DBClient = db

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		agent_id TEXT NOT NULL,
		agent_name TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS api_cache (
		cache_version TEXT NOT NULL,
		path TEXT NOT NULL,
		payload BLOB NOT NULL,
		stored_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (cache_version, path)
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create api_cache table: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS print_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_serial TEXT NOT NULL,
		printed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create print_log table: %w", err)
	}

	return db, nil
}

// GetDB returns the current database connection.
func GetDB() *sql.DB {
	return DBClient
}

// CloseDB closes the connection. Only used at shutdown and in tests.
func CloseDB() {
	if DBClient != nil {
		_ = DBClient.Close()
		DBClient = nil
	}
}
