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

	"github.com/danielhkuo/livevote/auth"
	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/db"
	"github.com/danielhkuo/livevote/models"
	"github.com/google/uuid"
)

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB opens a fresh SQLite database with the full schema.
// The file lives in the test's temp dir and is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "livevote_test.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "livevote_test.db",
		DatabaseType:     db.TypeSQLite,
		JWTSecret:        TestJWTSecret,
		TokenTTL:         time.Hour,
		JoinCodeLength:   5,
		JoinCodeAttempts: 10,
	}
}

// CreateTestUser inserts an account and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, email, password string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	userID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO app_user (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, email, "Test User", hash, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// TestEvent describes an event fixture. EndAt may be in the past to
// produce a closed event.
type TestEvent struct {
	CreatorID          string
	Title              string
	Options            []string
	AllowMultipleVotes bool
	EndAt              time.Time
}

// CreateTestEvent inserts an event with options at positions 1..N and
// returns its ID and join code
func CreateTestEvent(t *testing.T, conn *sql.DB, ev TestEvent) (eventID, joinCode string) {
	t.Helper()

	if ev.Title == "" {
		ev.Title = "Test Event"
	}
	if len(ev.Options) == 0 {
		ev.Options = []string{"Red", "Green", "Blue"}
	}
	if ev.EndAt.IsZero() {
		ev.EndAt = time.Now().Add(time.Hour)
	}

	eventID = uuid.NewString()
	joinCode, err := auth.GenerateJoinCode(8)
	if err != nil {
		t.Fatalf("Failed to generate join code: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO event (id, creator_id, title, question, allow_multiple_votes, join_code, created_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, eventID, ev.CreatorID, ev.Title, "Which one?", ev.AllowMultipleVotes, joinCode,
		time.Now().UnixMilli(), ev.EndAt.UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	for i, label := range ev.Options {
		_, err := conn.Exec(`
			INSERT INTO event_option (id, event_id, position, label)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), eventID, i+1, label)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}

	return eventID, joinCode
}

// JoinTestVoter inserts a participation record and returns its ID
func JoinTestVoter(t *testing.T, conn *sql.DB, eventID, voterID string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, event_id, voter_id, joined_at, already_voted)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, eventID, voterID, time.Now().UnixMilli(), false)
	if err != nil {
		t.Fatalf("Failed to join test voter: %v", err)
	}

	return voteID
}

// CountRows runs a COUNT query and returns the result
func CountRows(t *testing.T, conn *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// AuthHeader returns an Authorization header for userID signed with the
// config's secret
func AuthHeader(t *testing.T, cfg cliparse.Config, userID string) map[string]string {
	t.Helper()

	token, _, err := auth.IssueToken(userID, cfg.JWTSecret, cfg.TokenTTL, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": models.TokenTypeBearer + " " + token}
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
