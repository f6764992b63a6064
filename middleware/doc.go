// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client_ip) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type and
Authorization.

# Authentication

RequireAuth checks an "Authorization: Bearer <token>" header and puts the
token subject in the request context:

	mux.HandleFunc("GET /auth/me", middleware.RequireAuth(secret, handler))

	userID, ok := middleware.UserIDFromContext(r.Context())

Missing, malformed or expired tokens get 401 with a WWW-Authenticate header.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
