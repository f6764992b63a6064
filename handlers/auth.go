// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/livevote/accounts"
	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/models"
)

type AuthHandler struct {
	accounts *accounts.Service
	cfg      cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{
		accounts: accounts.NewService(db, cfg.JWTSecret, cfg.TokenTTL, nil),
		cfg:      cfg,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Message: "Account created",
		User:    userResponse(user),
	})
}

// Login handles POST /auth/login
// Returns a bearer token whose subject is the user ID
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	token, expiresAt, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, userResponse(user))
}

func userResponse(user models.User) models.UserResponse {
	return models.UserResponse{
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
