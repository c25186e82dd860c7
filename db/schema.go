// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/peer-survey/sheet"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect sheet.Dialect) error {
	ddl := sqliteSchema
	if dialect == sheet.Postgres {
		ddl = postgresSchema
	}

	_, err := db.Exec(ddl + statusSeed)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const sqliteSchema = `
-- Sheets (staging queues and output tables)
CREATE TABLE IF NOT EXISTS sheet (
    name TEXT PRIMARY KEY,
    header TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Sheet rows, in append order
CREATE TABLE IF NOT EXISTS sheet_row (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sheet TEXT NOT NULL REFERENCES sheet(name) ON DELETE CASCADE,
    cells TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sheet_row_sheet ON sheet_row(sheet, id);

-- Survey availability
CREATE TABLE IF NOT EXISTS survey_status (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    active BOOLEAN NOT NULL DEFAULT FALSE,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const postgresSchema = `
-- Sheets (staging queues and output tables)
CREATE TABLE IF NOT EXISTS sheet (
    name TEXT PRIMARY KEY,
    header TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Sheet rows, in append order
CREATE TABLE IF NOT EXISTS sheet_row (
    id BIGSERIAL PRIMARY KEY,
    sheet TEXT NOT NULL REFERENCES sheet(name) ON DELETE CASCADE,
    cells TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sheet_row_sheet ON sheet_row(sheet, id);

-- Survey availability
CREATE TABLE IF NOT EXISTS survey_status (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    active BOOLEAN NOT NULL DEFAULT FALSE,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

const statusSeed = `
INSERT INTO survey_status (id, active) VALUES (1, FALSE)
ON CONFLICT (id) DO NOTHING;
`
