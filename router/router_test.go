// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "livevote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/auth/me"},
		{"POST", "/events"},
		{"GET", "/events/mine"},
		{"GET", "/events/ABCDE"},
		{"POST", "/events/ABCDE/join"},
		{"POST", "/events/ABCDE/vote"},
		{"GET", "/events/ABCDE/results"},
		{"GET", "/votes/mine"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 without token, got %d", w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Test that unsupported methods on defined routes return 405
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},               // Only GET is defined
		{"DELETE", "/events/ABCDE"},       // Only GET is defined
		{"DELETE", "/events/ABCDE/vote"},  // Only POST is defined
		{"PUT", "/events/ABCDE/join"},     // Only POST is defined
		{"POST", "/events/ABCDE/results"}, // Only GET is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMineTakesPrecedenceOverCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	userID := testutil.CreateTestUser(t, db, "owner@example.com", "password-1")
	testutil.CreateTestEvent(t, db, testutil.TestEvent{CreatorID: userID, Title: "Owned"})

	req := testutil.MakeRequest("GET", "/events/mine", nil, testutil.AuthHeader(t, cfg, userID))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var views []models.EventView
	testutil.AssertJSON(t, w, &views)
	if len(views) != 1 || views[0].Title != "Owned" {
		t.Errorf("Expected the caller's event list, got %+v", views)
	}
}

// TestFullVotingWorkflow tests the complete end-to-end workflow:
// 1. Creator and voters register and log in
// 2. Creator creates a multi-select event
// 3. Voters join by code and cast ballots
// 4. Creator reads the live tally
// 5. Voters see their history
func TestFullVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	do := func(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
		var headers map[string]string
		if token != "" {
			headers = map[string]string{"Authorization": models.TokenTypeBearer + " " + token}
		}
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
		return w
	}

	// Step 1: Register and log in
	login := func(email string) string {
		w := do("POST", "/auth/register", models.RegisterRequest{
			Email: email, Name: email, Password: "password-1",
		}, "")
		testutil.AssertStatus(t, w, http.StatusCreated)

		w = do("POST", "/auth/login", models.LoginRequest{Email: email, Password: "password-1"}, "")
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.LoginResponse
		testutil.AssertJSON(t, w, &resp)
		return resp.AccessToken
	}
	creator := login("creator@example.com")
	alice := login("alice@example.com")
	bob := login("bob@example.com")

	w := do("GET", "/auth/me", nil, alice)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Step 2: Create event
	w = do("POST", "/events", models.CreateEventRequest{
		Title:              "Team Offsite",
		Question:           "Which activities?",
		Options:            []string{"Hiking", "Kayaking", "Museum"},
		AllowMultipleVotes: true,
		EndAt:              time.Now().Add(time.Hour),
	}, creator)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.CreateEventResponse
	testutil.AssertJSON(t, w, &created)
	code := created.Event.JoinCode
	t.Logf("Step 2 - Created event: %s", code)

	// Creator cannot take part
	w = do("POST", "/events/"+code+"/join", nil, creator)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Step 3: Join and vote
	w = do("POST", "/events/"+code+"/vote", models.CastVoteRequest{Choices: []int{1}}, alice)
	testutil.AssertStatus(t, w, http.StatusNotFound) // not joined yet

	for _, token := range []string{alice, bob} {
		w = do("POST", "/events/"+code+"/join", nil, token)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}
	w = do("POST", "/events/"+code+"/join", nil, alice)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = do("POST", "/events/"+code+"/vote", models.CastVoteRequest{Choices: []int{1, 2}}, alice)
	testutil.AssertStatus(t, w, http.StatusCreated)
	w = do("POST", "/events/"+code+"/vote", models.CastVoteRequest{Choices: []int{2}}, bob)
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = do("POST", "/events/"+code+"/vote", models.CastVoteRequest{Choices: []int{3}}, bob)
	testutil.AssertStatus(t, w, http.StatusConflict)
	w = do("POST", "/events/"+code+"/join", nil, bob)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Step 4: Results
	w = do("GET", "/events/"+code+"/results", nil, alice)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = do("GET", "/events/"+code+"/results", nil, creator)
	testutil.AssertStatus(t, w, http.StatusOK)
	var results models.EventResults
	testutil.AssertJSON(t, w, &results)

	if results.TotalVotes != 3 {
		t.Errorf("Expected 3 selections, got %d", results.TotalVotes)
	}
	if results.MostVotedOption == nil || *results.MostVotedOption != "Kayaking" {
		t.Errorf("Expected Kayaking to lead, got %v", results.MostVotedOption)
	}
	wantVotes := []int{1, 2, 0}
	for i, r := range results.Results {
		if r.Votes != wantVotes[i] {
			t.Errorf("Option %d (%s): expected %d votes, got %d", r.Position, r.Text, wantVotes[i], r.Votes)
		}
	}

	// Step 5: History
	w = do("GET", "/votes/mine", nil, alice)
	testutil.AssertStatus(t, w, http.StatusOK)
	var history []models.VoteHistoryEntry
	testutil.AssertJSON(t, w, &history)
	if len(history) != 1 || len(history[0].VoteChoices) != 2 {
		t.Errorf("Unexpected history: %+v", history)
	}

	w = do("GET", "/events/mine", nil, creator)
	testutil.AssertStatus(t, w, http.StatusOK)
}
