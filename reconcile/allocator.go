// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"fmt"

	"github.com/danielhkuo/peer-survey/sheet"
)

// LastID returns the identifier in the first cell of an output table's last
// row. An empty table or a non-numeric cell yields 0.
func LastID(ctx context.Context, store sheet.Store, table string) (int64, error) {
	row, ok, err := store.LastRow(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("failed to read last id of %s: %w", table, err)
	}
	if !ok || len(row) == 0 {
		return 0, nil
	}
	id, ok := sheet.Int(row[0])
	if !ok {
		return 0, nil
	}
	return id, nil
}
