// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/peer-survey/sheet"
	"github.com/danielhkuo/peer-survey/staging"
)

// Commit appends a plan to the output tables and then clears the staging
// queues. If any output write fails the queues are left intact so the next
// run reprocesses them.
func Commit(ctx context.Context, store sheet.Store, plan Plan) error {
	writes := []struct {
		table string
		rows  []sheet.Row
	}{
		{staging.ResponseTable, plan.Responses},
		{staging.SubjectTable, plan.Subjects},
		{staging.SubjectPeerTable, plan.SubjectPeers},
		{staging.RecordsTable, plan.Records},
	}

	for _, w := range writes {
		if len(w.rows) == 0 {
			continue
		}
		if err := store.AppendRows(ctx, w.table, w.rows); err != nil {
			return fmt.Errorf("failed to write %s: %w", w.table, err)
		}
	}

	for _, q := range staging.Queues {
		if err := store.ClearDataRows(ctx, q); err != nil {
			// Outputs are already written; re-running now would duplicate them.
			slog.Error("output written but staging not cleared", "queue", q, "error", err)
			return fmt.Errorf("failed to clear %s: %w", q, err)
		}
	}

	return nil
}
