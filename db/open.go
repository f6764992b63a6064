// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open connects to the configured database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	var (
		conn *sql.DB
		err  error
	)
	switch dbType {
	case TypePostgres:
		conn, err = sql.Open("postgres", url)
	case TypeSQLite:
		conn, err = sql.Open("sqlite", sqliteDSN(url))
		if err == nil {
			// SQLite allows one writer; a single connection serializes
			// transactions instead of surfacing SQLITE_BUSY.
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dbType, err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s db: %w", dbType, err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	if strings.Contains(url, "?") {
		return url + "&" + sqlitePragmas
	}
	return url + "?" + sqlitePragmas
}
