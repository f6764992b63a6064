// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livevote/accounts"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/voting"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, voting.ErrInvalidInput),
		errors.Is(err, voting.ErrTooManyChoices),
		errors.Is(err, accounts.ErrInvalidAccount):
		return http.StatusBadRequest
	case errors.Is(err, voting.ErrUnauthenticated),
		errors.Is(err, accounts.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, voting.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, voting.ErrNotFound),
		errors.Is(err, voting.ErrNotJoined),
		errors.Is(err, accounts.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, voting.ErrAlreadyVoted),
		errors.Is(err, accounts.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, voting.ErrEventClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends the mapped status. Store failures are logged and
// reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, status, "Internal server error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}

// requireUser reads the authenticated user ID placed by RequireAuth
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}
