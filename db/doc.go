// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

	conn, err := db.Open(sheet.SQLite, "file:peer-survey.db")

SQLite connections get a busy timeout and a single open connection.
PostgreSQL uses lib/pq.

# Schema Creation

	if err := db.CreateSchema(conn, sheet.SQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times.

# Tables

  - sheet: One row per logical table, with its JSON header
  - sheet_row: Data rows as JSON cell arrays, ordered by id
  - survey_status: Single row holding the active flag

	sheet 1──* sheet_row
*/
package db
