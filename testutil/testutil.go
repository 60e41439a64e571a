// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// Each test gets its own file under t.TempDir, so tests are hermetic and
// parallelizable without a running postgres.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "ballotbox_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// sqlite allows one writer; a single pooled connection keeps concurrent
	// test traffic serialized at the driver instead of failing with BUSY.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  "file:ballotbox_test.db",
		DatabaseType: "sqlite",
		TokenSecret:  "test-token-secret",
		TokenTTL:     time.Hour,
		SeedVoters:   40,
	}
}

// CreateTestVoter inserts a voter and returns its ID and access code
func CreateTestVoter(t *testing.T, conn *sql.DB, fullname string, hasVoted bool) (voterID, accessCode string) {
	t.Helper()

	voterID = uuid.NewString()
	accessCode, err := auth.GenerateAccessCode()
	if err != nil {
		t.Fatalf("Failed to generate access code: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO voter (id, fullname, access_code, has_voted, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voterID, fullname, accessCode, hasVoted, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterID, accessCode
}

// CreateTestCandidate inserts a candidate with zeroed counters and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, name, position string) string {
	t.Helper()

	candidateID, err := auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO candidate (id, name, position, approve_count, reject_count)
		VALUES ($1, $2, $3, 0, 0)
	`, candidateID, name, position)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// IssueTestToken signs a bearer token for a voter using the test secret
func IssueTestToken(cfg cliparse.Config, voterID string) string {
	return auth.SignVoterToken(voterID, cfg.TokenSecret, cfg.TokenTTL)
}

// CandidateCounts reads the current counters for a candidate
func CandidateCounts(t *testing.T, conn *sql.DB, candidateID string) (approve, reject int) {
	t.Helper()

	err := conn.QueryRow(`
		SELECT approve_count, reject_count FROM candidate WHERE id = $1
	`, candidateID).Scan(&approve, &reject)
	if err != nil {
		t.Fatalf("Failed to read candidate counts: %v", err)
	}
	return approve, reject
}

// VoterHasVoted reads a voter's has_voted flag
func VoterHasVoted(t *testing.T, conn *sql.DB, voterID string) bool {
	t.Helper()

	var hasVoted bool
	err := conn.QueryRow(`
		SELECT has_voted FROM voter WHERE id = $1
	`, voterID).Scan(&hasVoted)
	if err != nil {
		t.Fatalf("Failed to read voter flag: %v", err)
	}
	return hasVoted
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
