// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: email, name, password
  - LoginRequest: email, password
  - CreateEventRequest: title, question, options, allow_multiple_votes, end_at
  - CastVoteRequest: choices (option positions, 1-indexed)

# Response Types

Types for JSON responses:

  - RegisterResponse, LoginResponse, UserResponse
  - CreateEventResponse: message, event view
  - JoinEventResponse: event title, join code, closes_in, already_joined
  - CastVoteResponse: event title, selection count
  - EventView, OptionView: public event shape without internal IDs
  - EventResults, OptionResult: live tally
  - VoteHistoryEntry: one joined event in a voter's history
  - ErrorResponse: error, message

# Domain Types

Internal data structures. ID fields never serialize:

  - User: account with bcrypt password hash
  - Event: poll metadata, join code and deadline
  - Option: answer at a stable position within an event
  - Vote: a voter's participation record and already_voted flag
  - Selection: one chosen option recorded against a vote

# Time

An event is closed once now is strictly after EndAt. ClosesIn renders the
deadline relative to now ("2 hours from now", "5 minutes ago").
*/
package models
