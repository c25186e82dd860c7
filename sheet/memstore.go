// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"context"
	"sync"
)

type memSheet struct {
	header []string
	rows   []Row
}

// MemStore is an in-process Store. Rows are copied on the way in and out.
type MemStore struct {
	mu     sync.RWMutex
	sheets map[string]*memSheet
}

func NewMemStore() *MemStore {
	return &MemStore{sheets: make(map[string]*memSheet)}
}

// CreateSheet registers a table. Creating an existing table keeps its rows.
func (s *MemStore) CreateSheet(_ context.Context, table string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sheets[table]; ok {
		return nil
	}
	s.sheets[table] = &memSheet{header: append([]string(nil), header...)}
	return nil
}

func (s *MemStore) get(table string) (*memSheet, error) {
	sh, ok := s.sheets[table]
	if !ok {
		return nil, notFound(table)
	}
	return sh, nil
}

func (s *MemStore) DataRowCount(_ context.Context, table string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, err := s.get(table)
	if err != nil {
		return 0, err
	}
	return len(sh.rows), nil
}

func (s *MemStore) ReadRange(_ context.Context, table string, offset, limit int) ([]Row, error) {
	if limit <= 0 || offset < 0 {
		return nil, ErrInvalidRange
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, err := s.get(table)
	if err != nil {
		return nil, err
	}
	if offset >= len(sh.rows) {
		return []Row{}, nil
	}
	end := min(offset+limit, len(sh.rows))
	return Clone(sh.rows[offset:end]), nil
}

func (s *MemStore) AppendRows(_ context.Context, table string, rows []Row) error {
	if len(rows) == 0 {
		return ErrInvalidRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sh, err := s.get(table)
	if err != nil {
		return err
	}
	sh.rows = append(sh.rows, Clone(rows)...)
	return nil
}

func (s *MemStore) ClearDataRows(_ context.Context, table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, err := s.get(table)
	if err != nil {
		return err
	}
	sh.rows = nil
	return nil
}

func (s *MemStore) LastRow(_ context.Context, table string) (Row, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, err := s.get(table)
	if err != nil {
		return nil, false, err
	}
	if len(sh.rows) == 0 {
		return nil, false, nil
	}
	return append(Row(nil), sh.rows[len(sh.rows)-1]...), true, nil
}

func (s *MemStore) Header(_ context.Context, table string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, err := s.get(table)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), sh.header...), nil
}
