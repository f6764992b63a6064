// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/livevote/auth"
	"github.com/danielhkuo/livevote/db"
	"github.com/danielhkuo/livevote/models"
	"github.com/google/uuid"
)

// Password bounds. bcrypt rejects input longer than 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	ErrInvalidAccount     = errors.New("invalid account")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Service manages user accounts and issues access tokens.
type Service struct {
	db     *sql.DB
	secret string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, secret string, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, secret: secret, ttl: ttl, logger: logger, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, name, password string) (models.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if !strings.Contains(email, "@") {
		return models.User{}, fmt.Errorf("%w: a valid email is required", ErrInvalidAccount)
	}
	if name == "" {
		return models.User{}, fmt.Errorf("%w: name is required", ErrInvalidAccount)
	}
	if len(password) < MinPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidAccount, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidAccount, MaxPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt.UnixMilli())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies credentials and returns a signed access token
// with its expiry.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.getUser(ctx, `WHERE email = $1`, normalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}

	token, expiresAt, err := auth.IssueToken(user.ID, s.secret, s.ttl, s.now())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return token, expiresAt, nil
}

// GetUser loads an account by ID.
func (s *Service) GetUser(ctx context.Context, userID string) (models.User, error) {
	return s.getUser(ctx, `WHERE id = $1`, userID)
}

func (s *Service) getUser(ctx context.Context, where string, arg string) (models.User, error) {
	var user models.User
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM app_user `+where, arg).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", err)
	}
	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	return user, nil
}
