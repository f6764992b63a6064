package models

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Token type returned on login
const TokenTypeBearer = "Bearer"

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateEventRequest struct {
	Title              string    `json:"title"`
	Question           string    `json:"question"`
	Options            []string  `json:"options"`
	AllowMultipleVotes bool      `json:"allow_multiple_votes"`
	EndAt              time.Time `json:"end_at"`
}

// Choices are option positions (1-indexed), never option IDs
type CastVoteRequest struct {
	Choices []int `json:"choices"`
}

// Response types

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UserResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateEventResponse struct {
	Message string    `json:"message"`
	Event   EventView `json:"event"`
}

type JoinEventResponse struct {
	Message       string `json:"message"`
	EventTitle    string `json:"event_title"`
	JoinCode      string `json:"join_code"`
	ClosesIn      string `json:"closes_in"`
	AlreadyJoined bool   `json:"already_joined"`
}

type CastVoteResponse struct {
	Message        string `json:"message"`
	EventTitle     string `json:"event_title"`
	SelectionCount int    `json:"selection_count"`
}

// EventView is the public shape of an event; internal IDs are never exposed.
type EventView struct {
	JoinCode           string       `json:"join_code"`
	Title              string       `json:"title"`
	Question           string       `json:"question"`
	AllowMultipleVotes bool         `json:"allow_multiple_votes"`
	CreatedAt          time.Time    `json:"created_at"`
	EndAt              time.Time    `json:"end_at"`
	Closed             bool         `json:"closed"`
	ClosesIn           string       `json:"closes_in"`
	Options            []OptionView `json:"options"`
}

type OptionView struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// Domain types

type User struct {
	ID           string    `json:"-"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Event struct {
	ID                 string    `json:"-"`
	CreatorID          string    `json:"-"`
	Title              string    `json:"title"`
	Question           string    `json:"question"`
	AllowMultipleVotes bool      `json:"allow_multiple_votes"`
	JoinCode           string    `json:"join_code"`
	CreatedAt          time.Time `json:"created_at"`
	EndAt              time.Time `json:"end_at"`
	Options            []Option  `json:"options"`
}

// Closed reports whether now is past the event deadline.
func (e Event) Closed(now time.Time) bool {
	return now.After(e.EndAt)
}

// View converts an event into its public shape.
func (e Event) View(now time.Time) EventView {
	options := make([]OptionView, 0, len(e.Options))
	for _, opt := range e.Options {
		options = append(options, OptionView{Position: opt.Position, Text: opt.Text})
	}

	return EventView{
		JoinCode:           e.JoinCode,
		Title:              e.Title,
		Question:           e.Question,
		AllowMultipleVotes: e.AllowMultipleVotes,
		CreatedAt:          e.CreatedAt,
		EndAt:              e.EndAt,
		Closed:             e.Closed(now),
		ClosesIn:           ClosesIn(e.EndAt, now),
		Options:            options,
	}
}

// ClosesIn renders a deadline relative to now, e.g. "3 hours from now".
func ClosesIn(endAt, now time.Time) string {
	return humanize.RelTime(endAt, now, "ago", "from now")
}

type Option struct {
	ID       string `json:"-"`
	EventID  string `json:"-"`
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// Vote is a voter's participation record for one event.
type Vote struct {
	ID           string    `json:"-"`
	EventID      string    `json:"-"`
	VoterID      string    `json:"-"`
	JoinedAt     time.Time `json:"joined_at"`
	AlreadyVoted bool      `json:"already_voted"`
}

type Selection struct {
	ID       string `json:"-"`
	VoteID   string `json:"-"`
	OptionID string `json:"-"`
}

// JoinResult is the ledger's acknowledgment of a join.
type JoinResult struct {
	Event         Event
	Vote          Vote
	AlreadyJoined bool
}

// BallotReceipt confirms a committed ballot.
type BallotReceipt struct {
	EventTitle     string `json:"event_title"`
	JoinCode       string `json:"join_code"`
	SelectionCount int    `json:"selection_count"`
}

// Tally types

type OptionResult struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
	Votes    int    `json:"votes"`
}

// EventResults counts selections, so a multi-select voter contributes once
// per chosen option to TotalVotes.
type EventResults struct {
	Title           string         `json:"title"`
	Question        string         `json:"question"`
	TotalVotes      int            `json:"total_votes"`
	Results         []OptionResult `json:"results"`
	MostVotedOption *string        `json:"most_voted_option"`
}

// VoteHistoryEntry describes one event the voter joined.
type VoteHistoryEntry struct {
	EventTitle      string    `json:"event_title"`
	EventQuestion   string    `json:"event_question"`
	EventUniqueCode string    `json:"event_unique_code"`
	VoteChoices     []string  `json:"vote_choices"`
	AlreadyVoted    bool      `json:"already_voted"`
	JoinedAt        time.Time `json:"joined_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
