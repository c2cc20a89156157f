package testutil

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/documind/documind/internal/db"
)

func OpenTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(db.Config{
		Host:     host,
		Port:     5432,
		User:     "documind",
		Password: "documind_pass",
		DBName:   "documind_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
