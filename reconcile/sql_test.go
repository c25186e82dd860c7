// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/peer-survey/sheet"
	"github.com/danielhkuo/peer-survey/staging"
	"github.com/danielhkuo/peer-survey/testutil"
)

// TestRun_SQLStore runs the full stage → reconcile cycle against SQLite with
// the real status flag.
func TestRun_SQLStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	store, statusStore := testutil.NewStores(db)
	ctx := context.Background()

	testutil.SetSurveyActive(t, db, true)

	w := staging.NewWriter(store)
	_, err := w.Stage(ctx,
		[][]any{{"80", "60"}, {"70", "50"}},
		[]any{"F", "22"},
		[][]any{{"M", "21"}, {"F", "23"}},
	)
	require.NoError(t, err)

	r := New(store, statusStore)

	// Survey still open: nothing happens
	sum, err := r.Run(ctx)
	require.NoError(t, err)
	if !sum.Skipped {
		t.Fatalf("Expected skipped run while active, got %+v", sum)
	}
	if rows := testutil.ReadAllRows(t, store, staging.SubjectQueue); len(rows) != 1 {
		t.Fatalf("Expected staged subject to remain, got %d rows", len(rows))
	}

	testutil.SetSurveyActive(t, db, false)

	sum, err = r.Run(ctx)
	require.NoError(t, err)
	if !sum.Committed || sum.Subjects != 1 || sum.Records != 2 {
		t.Fatalf("Unexpected summary %+v", sum)
	}

	wantPeers := []sheet.Row{
		{int64(1), int64(1), "M", "21"},
		{int64(1), int64(2), "F", "23"},
	}
	if diff := cmp.Diff(wantPeers, testutil.ReadAllRows(t, store, staging.SubjectPeerTable)); diff != "" {
		t.Errorf("subject peers mismatch (-want +got):\n%s", diff)
	}

	wantResponses := []sheet.Row{
		{int64(1), "80", "60"},
		{int64(2), "70", "50"},
	}
	if diff := cmp.Diff(wantResponses, testutil.ReadAllRows(t, store, staging.ResponseTable)); diff != "" {
		t.Errorf("responses mismatch (-want +got):\n%s", diff)
	}

	for _, q := range staging.Queues {
		if rows := testutil.ReadAllRows(t, store, q); len(rows) != 0 {
			t.Errorf("Expected %s cleared, has %d rows", q, len(rows))
		}
	}

	// A second batch continues the sequences
	_, err = w.Stage(ctx, [][]any{{"90", "10"}}, []any{"M", "40"}, [][]any{{"M", "41"}})
	require.NoError(t, err)

	_, err = r.Run(ctx)
	require.NoError(t, err)

	wantRecords := []sheet.Row{
		{int64(1), int64(1), int64(1)},
		{int64(2), int64(1), int64(2)},
		{int64(3), int64(2), int64(1)},
	}
	if diff := cmp.Diff(wantRecords, testutil.ReadAllRows(t, store, staging.RecordsTable)); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}
