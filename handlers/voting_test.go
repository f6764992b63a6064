package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/testutil"
)

func TestJoinEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	_, code := testutil.CreateTestEvent(t, db, testutil.TestEvent{CreatorID: "creator-1", Title: "Colors"})
	_, closedCode := testutil.CreateTestEvent(t, db, testutil.TestEvent{
		CreatorID: "creator-1",
		EndAt:     time.Now().Add(-time.Minute),
	})

	tests := []struct {
		name           string
		code           string
		userID         string
		expectedStatus int
		alreadyJoined  bool
	}{
		{"first join", code, "voter-1", http.StatusCreated, false},
		{"second join", code, "voter-1", http.StatusOK, true},
		{"creator cannot join", code, "creator-1", http.StatusForbidden, false},
		{"closed event", closedCode, "voter-1", http.StatusGone, false},
		{"unknown event", "NOPE1", "voter-1", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest("POST", "/events/"+tt.code+"/join", nil, tt.userID)
			req.SetPathValue("code", tt.code)
			w := httptest.NewRecorder()

			handler.JoinEvent(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if w.Code == http.StatusCreated || w.Code == http.StatusOK {
				var resp models.JoinEventResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.AlreadyJoined != tt.alreadyJoined {
					t.Errorf("Expected already_joined=%v, got %v", tt.alreadyJoined, resp.AlreadyJoined)
				}
				if resp.EventTitle != "Colors" || resp.JoinCode != code {
					t.Errorf("Unexpected acknowledgment: %+v", resp)
				}
				if resp.ClosesIn == "" {
					t.Error("Expected closes_in to be set")
				}
				if !strings.Contains(resp.Message, "POST /events/"+code+"/vote") {
					t.Errorf("Expected message to point at the ballot route, got %q", resp.Message)
				}
			}
		})
	}
}

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	eventID, code := testutil.CreateTestEvent(t, db, testutil.TestEvent{CreatorID: "creator-1", Title: "Colors"})
	testutil.JoinTestVoter(t, db, eventID, "voter-1")
	testutil.JoinTestVoter(t, db, eventID, "voter-2")

	tests := []struct {
		name           string
		userID         string
		requestBody    interface{}
		expectedStatus int
	}{
		{"not joined", "voter-3", models.CastVoteRequest{Choices: []int{1}}, http.StatusNotFound},
		{"no choices", "voter-1", models.CastVoteRequest{}, http.StatusBadRequest},
		{"unknown position", "voter-1", models.CastVoteRequest{Choices: []int{7}}, http.StatusBadRequest},
		{"too many for single-select", "voter-1", models.CastVoteRequest{Choices: []int{1, 2}}, http.StatusBadRequest},
		{"invalid JSON", "voter-1", "choices", http.StatusBadRequest},
		{"valid vote", "voter-1", models.CastVoteRequest{Choices: []int{2}}, http.StatusCreated},
		{"second vote", "voter-1", models.CastVoteRequest{Choices: []int{3}}, http.StatusConflict},
		{"another voter", "voter-2", models.CastVoteRequest{Choices: []int{3}}, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest("POST", "/events/"+code+"/vote", tt.requestBody, tt.userID)
			req.SetPathValue("code", code)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated {
				var resp models.CastVoteResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.SelectionCount != 1 || resp.EventTitle != "Colors" {
					t.Errorf("Unexpected confirmation: %+v", resp)
				}
			}
		})
	}

	n := testutil.CountRows(t, db, `
		SELECT COUNT(*) FROM selection s
		JOIN vote v ON v.id = s.vote_id
		WHERE v.event_id = $1
	`, eventID)
	if n != 2 {
		t.Errorf("Expected 2 selections in total, got %d", n)
	}
}

func TestListMyVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	w := httptest.NewRecorder()
	handler.ListMyVotes(w, authedRequest("GET", "/votes/mine", nil, "voter-1"))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	_, code := testutil.CreateTestEvent(t, db, testutil.TestEvent{
		CreatorID:          "creator-1",
		Title:              "Colors",
		AllowMultipleVotes: true,
	})

	join := authedRequest("POST", "/events/"+code+"/join", nil, "voter-1")
	join.SetPathValue("code", code)
	handler.JoinEvent(httptest.NewRecorder(), join)

	vote := authedRequest("POST", "/events/"+code+"/vote", models.CastVoteRequest{Choices: []int{3, 2}}, "voter-1")
	vote.SetPathValue("code", code)
	w = httptest.NewRecorder()
	handler.CastVote(w, vote)
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	handler.ListMyVotes(w, authedRequest("GET", "/votes/mine", nil, "voter-1"))

	testutil.AssertStatus(t, w, http.StatusOK)
	var entries []models.VoteHistoryEntry
	testutil.AssertJSON(t, w, &entries)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(entries))
	}
	entry := entries[0]
	if !entry.AlreadyVoted || entry.EventUniqueCode != code {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if len(entry.VoteChoices) != 2 || entry.VoteChoices[0] != "Green" || entry.VoteChoices[1] != "Blue" {
		t.Errorf("Expected [Green Blue], got %v", entry.VoteChoices)
	}
}
