// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package staging

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/danielhkuo/peer-survey/sheet"
)

type Reader struct {
	store sheet.Store
}

func NewReader(store sheet.Store) *Reader {
	return &Reader{store: store}
}

// Load returns every data row of a queue ordered by correlation key. Rows
// sharing a key keep their append order.
func (r *Reader) Load(ctx context.Context, table string) ([]sheet.Row, error) {
	n, err := r.store.DataRowCount(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", table, err)
	}
	// Header only: a zero-length range read is invalid.
	if n <= 0 {
		return []sheet.Row{}, nil
	}

	rows, err := r.store.ReadRange(ctx, table, 0, n)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	slices.SortStableFunc(rows, func(a, b sheet.Row) int {
		return CompareKeys(KeyOf(a), KeyOf(b))
	})
	return rows, nil
}

// KeyOf returns the correlation key cell of a staged row, or nil for an
// empty row.
func KeyOf(r sheet.Row) any {
	if len(r) == 0 {
		return nil
	}
	return r[0]
}

// CompareKeys orders numeric keys ascending, then non-numeric keys by their
// string form.
func CompareKeys(a, b any) int {
	ai, aok := sheet.Int(a)
	bi, bok := sheet.Int(b)
	switch {
	case aok && bok:
		return cmp.Compare(ai, bi)
	case aok:
		return -1
	case bok:
		return 1
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// GroupKey is the canonical form used to match rows across queues, so a key
// read back as "1000", 1000 or 1000.0 groups together.
func GroupKey(v any) string {
	if i, ok := sheet.Int(v); ok {
		return fmt.Sprintf("%d", i)
	}
	return fmt.Sprint(v)
}
