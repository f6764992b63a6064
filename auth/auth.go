// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidPassword = errors.New("invalid password")
	ErrMissingSecret   = errors.New("token secret is required")
)

// base62Chars is the join code alphabet (0-9, a-z, A-Z)
const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateJoinCode creates a random alphanumeric code of the given length.
// Codes are short enough to read aloud, so callers must retry on collision.
func GenerateJoinCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("join code length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(base62Chars)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
		code[i] = base62Chars[n.Int64()]
	}
	return string(code), nil
}

// HashPassword returns a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a password against a stored bcrypt hash
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// IssueToken signs an HS256 access token whose subject is the user ID
func IssueToken(userID, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, errors.New("user id is required")
	}

	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

// ParseToken verifies an access token and returns its subject.
// Any signature, algorithm, or expiry failure is reported as ErrInvalidToken.
func ParseToken(token, secret string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
