// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"encoding/json"
	"math"
	"testing"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int64
		wantOK bool
	}{
		{"int", 7, 7, true},
		{"int64", int64(1700000000123), 1700000000123, true},
		{"integral float", 8.0, 8, true},
		{"fractional float", 8.5, 0, false},
		{"json number", json.Number("42"), 42, true},
		{"numeric string", " 12 ", 12, true},
		{"float string", "3.0", 3, true},
		{"text", "abc", 0, false},
		{"empty string", "", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"float above int64", 1e19, 0, false},
		{"float below int64", -1e19, 0, false},
		{"float at int64 min", -9.223372036854775808e18, math.MinInt64, true},
		{"NaN", math.NaN(), 0, false},
		{"infinity", math.Inf(1), 0, false},
		{"huge json number", json.Number("1e19"), 0, false},
		{"huge string", "1e19", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Int(%v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRebind(t *testing.T) {
	pg := &SQLStore{dialect: Postgres}
	lite := &SQLStore{dialect: SQLite}

	q := `SELECT cells FROM sheet_row WHERE sheet = ? LIMIT ? OFFSET ?`

	if got := pg.rebind(q); got != `SELECT cells FROM sheet_row WHERE sheet = $1 LIMIT $2 OFFSET $3` {
		t.Errorf("postgres rebind = %q", got)
	}
	if got := lite.rebind(q); got != q {
		t.Errorf("sqlite rebind should not change query, got %q", got)
	}
}
