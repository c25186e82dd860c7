// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package staging

import (
	"context"
	"fmt"
)

// Staging queues, written by Stage and cleared after a successful
// consolidation.
const (
	ResponseQueue = "response_queue"
	SubjectQueue  = "subject_queue"
	PeerQueue     = "peer_queue"
)

// Output tables. Append-only.
const (
	ResponseTable    = "responses"
	SubjectTable     = "subjects"
	SubjectPeerTable = "subject_peers"
	RecordsTable     = "records"
)

// Queues lists the staging queues in the order Stage writes them.
var Queues = []string{ResponseQueue, SubjectQueue, PeerQueue}

var headers = map[string][]string{
	ResponseQueue:    {"submitted_at", "response"},
	SubjectQueue:     {"submitted_at", "subject"},
	PeerQueue:        {"submitted_at", "peer"},
	ResponseTable:    {"response_id", "response"},
	SubjectTable:     {"subject_id", "subject"},
	SubjectPeerTable: {"subject_id", "peer_id", "peer"},
	RecordsTable:     {"response_id", "subject_id", "peer_id"},
}

// SheetCreator is implemented by stores that can register tables.
type SheetCreator interface {
	CreateSheet(ctx context.Context, table string, header []string) error
}

// CreateSheets registers every queue and output table. Safe to call on every
// startup.
func CreateSheets(ctx context.Context, c SheetCreator) error {
	for _, name := range []string{
		ResponseQueue, SubjectQueue, PeerQueue,
		ResponseTable, SubjectTable, SubjectPeerTable, RecordsTable,
	} {
		if err := c.CreateSheet(ctx, name, headers[name]); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
	}
	return nil
}
