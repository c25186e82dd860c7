// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package status

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/peer-survey/sheet"
)

// Store reads and flips the survey availability flag. The flag is advisory:
// operators switch it off before consolidating.
type Store struct {
	db      *sql.DB
	dialect sheet.Dialect
}

func NewStore(db *sql.DB, dialect sheet.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) query(q string) string {
	if s.dialect == sheet.Postgres {
		// Only single-argument statements live here.
		return strings.Replace(q, "?", "$1", 1)
	}
	return q
}

// IsActive reports whether the survey form accepts submissions.
func (s *Store) IsActive(ctx context.Context) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx, `SELECT active FROM survey_status WHERE id = 1`).Scan(&active)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query survey status: %w", err)
	}
	return active, nil
}

// SetActive opens or closes the survey form.
func (s *Store) SetActive(ctx context.Context, active bool) error {
	_, err := s.db.ExecContext(ctx, s.query(`
		UPDATE survey_status SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1
	`), active)
	if err != nil {
		return fmt.Errorf("failed to update survey status: %w", err)
	}
	return nil
}
