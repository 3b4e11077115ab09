package handlers

import (
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"

	"portfolio/api/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestDB opens an in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	client, err := database.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(client.Close)

	return client.DB
}
