// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax for SQLStore queries.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLStore keeps every table in the shared sheet / sheet_row tables created
// by db.CreateSchema. Append order is the sheet_row id.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// rebind rewrites ? placeholders to $N for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// CreateSheet registers a table with its header. Existing tables are left
// untouched.
func (s *SQLStore) CreateSheet(ctx context.Context, table string, header []string) error {
	h, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO sheet (name, header) VALUES (?, ?)
		ON CONFLICT (name) DO NOTHING
	`), table, string(h))
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) ensure(ctx context.Context, q queryer, table string) error {
	var one int
	err := q.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM sheet WHERE name = ?`), table).Scan(&one)
	if err == sql.ErrNoRows {
		return notFound(table)
	}
	if err != nil {
		return fmt.Errorf("failed to look up sheet %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) DataRowCount(ctx context.Context, table string) (int, error) {
	if err := s.ensure(ctx, s.db, table); err != nil {
		return 0, err
	}

	var n int
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT COUNT(*) FROM sheet_row WHERE sheet = ?
	`), table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}

func (s *SQLStore) ReadRange(ctx context.Context, table string, offset, limit int) ([]Row, error) {
	if limit <= 0 || offset < 0 {
		return nil, ErrInvalidRange
	}
	if err := s.ensure(ctx, s.db, table); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT cells FROM sheet_row
		WHERE sheet = ?
		ORDER BY id
		LIMIT ? OFFSET ?
	`), table, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("failed to scan row in %s: %w", table, err)
		}
		r, err := decodeCells(cells)
		if err != nil {
			return nil, fmt.Errorf("failed to decode row in %s: %w", table, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return out, nil
}

func (s *SQLStore) AppendRows(ctx context.Context, table string, rows []Row) error {
	if len(rows) == 0 {
		return ErrInvalidRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.ensure(ctx, tx, table); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(`INSERT INTO sheet_row (sheet, cells) VALUES (?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare append to %s: %w", table, err)
	}
	defer stmt.Close()

	for _, r := range rows {
		cells, err := encodeCells(r)
		if err != nil {
			return fmt.Errorf("failed to encode row for %s: %w", table, err)
		}
		if _, err := stmt.ExecContext(ctx, table, cells); err != nil {
			return fmt.Errorf("failed to append to %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit append to %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) ClearDataRows(ctx context.Context, table string) error {
	if err := s.ensure(ctx, s.db, table); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM sheet_row WHERE sheet = ?`), table)
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) LastRow(ctx context.Context, table string) (Row, bool, error) {
	if err := s.ensure(ctx, s.db, table); err != nil {
		return nil, false, err
	}

	var cells string
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT cells FROM sheet_row
		WHERE sheet = ?
		ORDER BY id DESC
		LIMIT 1
	`), table).Scan(&cells)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read last row of %s: %w", table, err)
	}

	r, err := decodeCells(cells)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode last row of %s: %w", table, err)
	}
	return r, true, nil
}

func (s *SQLStore) Header(ctx context.Context, table string) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT header FROM sheet WHERE name = ?`), table).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, notFound(table)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", table, err)
	}

	var header []string
	if err := json.Unmarshal([]byte(raw), &header); err != nil {
		return nil, fmt.Errorf("failed to decode header of %s: %w", table, err)
	}
	return header, nil
}
