// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup goes through setupTestDB, which loads the authoritative
// schema from internal/db. Do not hardcode CREATE TABLE statements in
// test files; drift between test and production schemas must fail loudly.
package sqlite_test

import (
	"database/sql"
	"encoding/json"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/autofix/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedViolation inserts a test violation and returns its ID.
func seedViolation(t *testing.T, db *sql.DB, id, projectID, category, typ, nodeID string, snapshot map[string]any) string {
	t.Helper()
	if snapshot == nil {
		snapshot = map[string]any{"type": "FRAME"}
	}
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("failed to encode snapshot: %v", err)
	}
	_, err = db.Exec(
		"INSERT INTO violations (id, project_id, category, type, node_id, node_name, snapshot) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, projectID, category, typ, nodeID, "Test Node", string(encoded),
	)
	if err != nil {
		t.Fatalf("failed to seed violation: %v", err)
	}
	return id
}
