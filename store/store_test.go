package store

import (
	"database/sql"
	"testing"

	"portfolio/api/database"
)

// newTestDB opens an in-memory SQLite database with the full schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	client, err := database.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(client.Close)

	return client.DB
}

func strPtr(s string) *string {
	return &s
}
