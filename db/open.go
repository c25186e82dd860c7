// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/peer-survey/sheet"
)

// Open connects to the database for the given dialect and verifies the
// connection. SQLite URLs get a busy timeout so concurrent submissions wait
// for the write lock instead of failing.
func Open(dialect sheet.Dialect, url string) (*sql.DB, error) {
	var driver string
	switch dialect {
	case sheet.Postgres:
		driver = "postgres"
	case sheet.SQLite:
		driver = "sqlite"
		url = withPragmas(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == sheet.SQLite {
		// One writer at a time; also keeps :memory: databases on one connection.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func withPragmas(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}
