// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and token utilities.

# Access Tokens

Access tokens are HS256 JWTs whose subject is the user ID:

	token, expiresAt, err := auth.IssueToken(userID, secret, 24*time.Hour, time.Now())
	userID, err := auth.ParseToken(token, secret)

ParseToken only accepts HS256 and requires an expiry. Every verification
failure wraps ErrInvalidToken.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, password)

# Join Codes

Join codes are short random base62 strings used to share events:

	code, err := auth.GenerateJoinCode(5)

They are not unique by construction. The event store retries generation
when a code is already taken.
*/
package auth
