package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type DBClient struct {
	DB *sql.DB
}

// Schema is created idempotently so restarts against an existing database
// file are safe.
const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ip_address TEXT NOT NULL,
	user_agent TEXT NOT NULL,
	country TEXT,
	city TEXT,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	session_duration REAL NOT NULL DEFAULT 0,
	pages_visited INTEGER NOT NULL DEFAULT 1,
	referrer TEXT
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors (timestamp);
CREATE INDEX IF NOT EXISTS idx_visitors_country ON visitors (country);

CREATE TABLE IF NOT EXISTS contact_messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	is_read BOOLEAN NOT NULL DEFAULT 0,
	ip_address TEXT
);
CREATE INDEX IF NOT EXISTS idx_contact_messages_timestamp ON contact_messages (timestamp);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	hashed_password BLOB NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// NewSQLiteDB opens (or creates) the local database file and ensures the
// schema exists.
func NewSQLiteDB(path string) (*DBClient, error) {
	if path == "" {
		path = "./portfolio.db"
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("error opening database connection: %w", err)
	}

	// SQLite serializes writers; a single connection avoids database-locked
	// errors from concurrent requests.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database (ping failed): %w", err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating database schema: %w", err)
	}

	log.Printf("Successfully connected to SQLite database at %s", path)
	return &DBClient{DB: db}, nil
}

func (c *DBClient) Close() {
	if c.DB != nil {
		err := c.DB.Close()
		if err != nil {
			log.Printf("Error closing database connection: %v", err)
		} else {
			log.Println("SQLite database connection closed.")
		}
	}
}
