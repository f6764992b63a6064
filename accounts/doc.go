// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package accounts registers users and authenticates them into access
// tokens. The user ID carried in a token is the identity the voting engine
// sees for creators and voters.
package accounts
