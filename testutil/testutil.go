// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/peer-survey/cliparse"
	"github.com/danielhkuo/peer-survey/db"
	"github.com/danielhkuo/peer-survey/sheet"
	"github.com/danielhkuo/peer-survey/staging"
	"github.com/danielhkuo/peer-survey/status"
)

// TestOperatorKey is the operator key used by GetTestConfig
const TestOperatorKey = "test-operator-key"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
// and every staging queue and output table registered
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each test gets its own named in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.Open(sheet.SQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, sheet.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	if err := staging.CreateSheets(context.Background(), sheet.NewSQLStore(conn, sheet.SQLite)); err != nil {
		t.Fatalf("Failed to create sheets: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Command:      cliparse.CommandServe,
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		OperatorKey:  TestOperatorKey,
	}
}

// NewStores returns the sheet and status stores backed by db
func NewStores(db *sql.DB) (*sheet.SQLStore, *status.Store) {
	return sheet.NewSQLStore(db, sheet.SQLite), status.NewStore(db, sheet.SQLite)
}

// SetSurveyActive flips the availability flag
func SetSurveyActive(t *testing.T, db *sql.DB, active bool) {
	t.Helper()

	if err := status.NewStore(db, sheet.SQLite).SetActive(context.Background(), active); err != nil {
		t.Fatalf("Failed to set survey status: %v", err)
	}
}

// AppendTestRows appends rows to a table
func AppendTestRows(t *testing.T, store sheet.Store, table string, rows ...sheet.Row) {
	t.Helper()

	if err := store.AppendRows(context.Background(), table, rows); err != nil {
		t.Fatalf("Failed to append rows to %s: %v", table, err)
	}
}

// ReadAllRows returns every data row of a table in append order
func ReadAllRows(t *testing.T, store sheet.Store, table string) []sheet.Row {
	t.Helper()

	ctx := context.Background()
	n, err := store.DataRowCount(ctx, table)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	if n == 0 {
		return []sheet.Row{}
	}
	rows, err := store.ReadRange(ctx, table, 0, n)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", table, err)
	}
	return rows
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// OperatorHeaders returns headers carrying the test operator key
func OperatorHeaders() map[string]string {
	return map[string]string{"X-Operator-Key": TestOperatorKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
