// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package staging

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/peer-survey/sheet"
)

var ErrInvalidInput = errors.New("invalid submission payload")

// Writer appends submissions to the staging queues. It takes no locks; rows
// of one submission are tied together only by their shared key.
type Writer struct {
	store sheet.Store
	now   func() time.Time
	last  atomic.Int64
}

func NewWriter(store sheet.Store) *Writer {
	return &Writer{store: store, now: time.Now}
}

// Stage writes one submission and returns its correlation key. The three
// appends are independent; a failure leaves earlier appends in place.
func (w *Writer) Stage(ctx context.Context, responses [][]any, subject []any, peers [][]any) (int64, error) {
	if subject == nil {
		return 0, fmt.Errorf("%w: subject data is required", ErrInvalidInput)
	}
	for i, r := range responses {
		if r == nil {
			return 0, fmt.Errorf("%w: response %d is not a sequence", ErrInvalidInput, i)
		}
	}
	for i, p := range peers {
		if p == nil {
			return 0, fmt.Errorf("%w: peer %d is not a sequence", ErrInvalidInput, i)
		}
	}

	key := w.nextKey()

	if len(responses) > 0 {
		if err := w.store.AppendRows(ctx, ResponseQueue, keyed(key, responses)); err != nil {
			return key, fmt.Errorf("failed to stage responses: %w", err)
		}
	}

	if err := w.store.AppendRows(ctx, SubjectQueue, []sheet.Row{withKey(key, subject)}); err != nil {
		return key, fmt.Errorf("failed to stage subject: %w", err)
	}

	if len(peers) > 0 {
		if err := w.store.AppendRows(ctx, PeerQueue, keyed(key, peers)); err != nil {
			return key, fmt.Errorf("failed to stage peers: %w", err)
		}
	}

	return key, nil
}

// nextKey returns the current time in milliseconds, bumped past the last key
// this writer issued. Keys are strictly increasing within the process.
func (w *Writer) nextKey() int64 {
	for {
		last := w.last.Load()
		key := max(w.now().UnixMilli(), last+1)
		if w.last.CompareAndSwap(last, key) {
			return key
		}
	}
}

func withKey(key int64, payload []any) sheet.Row {
	row := make(sheet.Row, 0, len(payload)+1)
	row = append(row, key)
	return append(row, payload...)
}

func keyed(key int64, payloads [][]any) []sheet.Row {
	rows := make([]sheet.Row, len(payloads))
	for i, p := range payloads {
		rows[i] = withKey(key, p)
	}
	return rows
}
