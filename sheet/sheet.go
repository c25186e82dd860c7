// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrInvalidRange  = errors.New("invalid row range")
)

// Row is one data row. The first cell of staged and output rows is always
// the correlation key or the row's identifier.
type Row []any

// Store is a tabular store addressed by table name. Every table has a header
// row that is never returned as data and survives ClearDataRows.
type Store interface {
	// DataRowCount returns the number of rows below the header.
	DataRowCount(ctx context.Context, table string) (int, error)
	// ReadRange returns limit data rows starting at offset, in append order.
	// A non-positive limit is ErrInvalidRange.
	ReadRange(ctx context.Context, table string, offset, limit int) ([]Row, error)
	// AppendRows writes rows as one range. Empty rows is ErrInvalidRange.
	AppendRows(ctx context.Context, table string, rows []Row) error
	// ClearDataRows deletes every row below the header.
	ClearDataRows(ctx context.Context, table string) error
	// LastRow returns the most recently appended data row, if any.
	LastRow(ctx context.Context, table string) (Row, bool, error)
	Header(ctx context.Context, table string) ([]string, error)
}

func notFound(table string) error {
	return fmt.Errorf("%w: %s", ErrTableNotFound, table)
}

// Int reads a cell as an integer. Integral floats and numeric strings are
// accepted; anything else reports false.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsNaN(n) || n != math.Trunc(n) || n < -(1<<63) || n >= 1<<63 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return Int(f)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return Int(f)
	}
	return 0, false
}

// Clone deep-copies rows so callers never share backing arrays with a store.
func Clone(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = append(Row(nil), r...)
	}
	return out
}

// encodeCells and decodeCells are the SQL cell codec. Integral JSON numbers
// come back as int64, everything else as float64.
func encodeCells(r Row) (string, error) {
	if r == nil {
		r = Row{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCells(s string) (Row, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	row := make(Row, len(raw))
	for i, v := range raw {
		num, ok := v.(json.Number)
		if !ok {
			row[i] = v
			continue
		}
		if n, err := num.Int64(); err == nil {
			row[i] = n
		} else if f, err := num.Float64(); err == nil {
			row[i] = f
		} else {
			row[i] = num.String()
		}
	}
	return row, nil
}
