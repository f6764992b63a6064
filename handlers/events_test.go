// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/testutil"
	"github.com/danielhkuo/livevote/voting"
)

func TestCreateEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewEventHandler(db, cfg)

	future := time.Now().Add(2 * time.Hour)

	tests := []struct {
		name           string
		userID         string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreateEventResponse)
	}{
		{
			name:   "valid event",
			userID: "creator-1",
			requestBody: models.CreateEventRequest{
				Title:    "Team Lunch",
				Question: "Where to?",
				Options:  []string{"Tacos", "Sushi", "Pizza"},
				EndAt:    future,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateEventResponse) {
				if len(resp.Event.JoinCode) != cfg.JoinCodeLength {
					t.Errorf("Expected join code of length %d, got %q", cfg.JoinCodeLength, resp.Event.JoinCode)
				}
				if resp.Event.Closed {
					t.Error("New event should be open")
				}
				if resp.Event.ClosesIn == "" {
					t.Error("Expected closes_in to be set")
				}
				if len(resp.Event.Options) != 3 || resp.Event.Options[2].Position != 3 {
					t.Errorf("Unexpected options: %+v", resp.Event.Options)
				}

				n := testutil.CountRows(t, db, `SELECT COUNT(*) FROM event WHERE join_code = $1 AND creator_id = $2`,
					resp.Event.JoinCode, "creator-1")
				if n != 1 {
					t.Error("Event was not stored for its creator")
				}
			},
		},
		{
			name:   "multi-select event",
			userID: "creator-1",
			requestBody: models.CreateEventRequest{
				Title:              "Toppings",
				Options:            []string{"Cheese", "Olives"},
				AllowMultipleVotes: true,
				EndAt:              future,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateEventResponse) {
				if !resp.Event.AllowMultipleVotes {
					t.Error("Expected allow_multiple_votes to be true")
				}
			},
		},
		{
			name:           "missing title",
			userID:         "creator-1",
			requestBody:    models.CreateEventRequest{Options: []string{"A", "B"}, EndAt: future},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "one option",
			userID:         "creator-1",
			requestBody:    models.CreateEventRequest{Title: "T", Options: []string{"A"}, EndAt: future},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "deadline in the past",
			userID:         "creator-1",
			requestBody:    models.CreateEventRequest{Title: "T", Options: []string{"A", "B"}, EndAt: time.Now().Add(-time.Hour)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			userID:         "creator-1",
			requestBody:    []int{1, 2},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CreateEvent(w, authedRequest("POST", "/events", tt.requestBody, tt.userID))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreateEventResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestGetEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewEventHandler(db, cfg)

	_, code := testutil.CreateTestEvent(t, db, testutil.TestEvent{
		CreatorID: "creator-1",
		Title:     "Colors",
	})
	_, closedCode := testutil.CreateTestEvent(t, db, testutil.TestEvent{
		CreatorID: "creator-1",
		EndAt:     time.Now().Add(-time.Hour),
	})

	t.Run("open event", func(t *testing.T) {
		req := authedRequest("GET", "/events/"+code, nil, "voter-1")
		req.SetPathValue("code", code)
		w := httptest.NewRecorder()

		handler.GetEvent(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var view models.EventView
		testutil.AssertJSON(t, w, &view)
		if view.Title != "Colors" || view.JoinCode != code {
			t.Errorf("Unexpected view: %+v", view)
		}
		if view.Closed {
			t.Error("Expected open event")
		}
		want := []string{"Red", "Green", "Blue"}
		for i, opt := range view.Options {
			if opt.Position != i+1 || opt.Text != want[i] {
				t.Errorf("Option %d: got %+v", i, opt)
			}
		}
	})

	t.Run("closed event is still visible", func(t *testing.T) {
		req := authedRequest("GET", "/events/"+closedCode, nil, "voter-1")
		req.SetPathValue("code", closedCode)
		w := httptest.NewRecorder()

		handler.GetEvent(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var view models.EventView
		testutil.AssertJSON(t, w, &view)
		if !view.Closed {
			t.Error("Expected closed flag")
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		req := authedRequest("GET", "/events/NOPE1", nil, "voter-1")
		req.SetPathValue("code", "NOPE1")
		w := httptest.NewRecorder()

		handler.GetEvent(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestListMyEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewEventHandler(db, cfg)

	w := httptest.NewRecorder()
	handler.ListMyEvents(w, authedRequest("GET", "/events/mine", nil, "creator-1"))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	testutil.CreateTestEvent(t, db, testutil.TestEvent{CreatorID: "creator-1", Title: "Mine"})
	testutil.CreateTestEvent(t, db, testutil.TestEvent{CreatorID: "creator-2", Title: "Theirs"})

	w = httptest.NewRecorder()
	handler.ListMyEvents(w, authedRequest("GET", "/events/mine", nil, "creator-1"))

	testutil.AssertStatus(t, w, http.StatusOK)
	var views []models.EventView
	testutil.AssertJSON(t, w, &views)
	if len(views) != 1 || views[0].Title != "Mine" {
		t.Errorf("Expected only the caller's event, got %+v", views)
	}
}

// TestEventViewFollowsEngineClock verifies that the closed flag and
// closes_in come from the engine clock rather than the wall clock
func TestEventViewFollowsEngineClock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	endAt := time.Now().Add(time.Hour)
	_, code := testutil.CreateTestEvent(t, db, testutil.TestEvent{
		CreatorID: "creator-1",
		EndAt:     endAt,
	})

	later := endAt.Add(2 * time.Hour)
	handler := &EventHandler{engine: voting.NewEngine(db, voting.Config{
		Now: func() time.Time { return later },
	})}

	req := authedRequest("GET", "/events/"+code, nil, "voter-1")
	req.SetPathValue("code", code)
	w := httptest.NewRecorder()

	handler.GetEvent(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var view models.EventView
	testutil.AssertJSON(t, w, &view)
	if !view.Closed {
		t.Error("Expected event closed by the engine clock")
	}
	if view.ClosesIn != "2 hours ago" {
		t.Errorf("Expected '2 hours ago', got %q", view.ClosesIn)
	}
}

func TestCreateEventUsesConfiguredCodeLength(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.JoinCodeLength = 8
	handler := NewEventHandler(db, cfg)

	req := authedRequest("POST", "/events", models.CreateEventRequest{
		Title:   "Standup",
		Options: []string{"Now", "Later"},
		EndAt:   time.Now().Add(time.Hour),
	}, "creator-1")
	w := httptest.NewRecorder()

	handler.CreateEvent(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.CreateEventResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Event.JoinCode) != 8 {
		t.Errorf("Expected 8-character join code, got %q", resp.Event.JoinCode)
	}
}
