// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/peer-survey/sheet"
	"github.com/danielhkuo/peer-survey/staging"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name           string
		in             Input
		wantRecords    []sheet.Row
		wantSubjects   int
		wantMismatches int
	}{
		{
			name: "subject without responses or peers",
			in: Input{
				Subjects: []sheet.Row{{int64(1), "F"}},
			},
			wantRecords:  []sheet.Row{},
			wantSubjects: 1,
		},
		{
			name: "more peers than responses",
			in: Input{
				Subjects:  []sheet.Row{{int64(1), "F"}},
				Responses: []sheet.Row{{int64(1), "r1"}},
				Peers:     []sheet.Row{{int64(1), "p1"}, {int64(1), "p2"}, {int64(1), "p3"}},
			},
			wantRecords:    []sheet.Row{{int64(1), int64(1), int64(1)}},
			wantSubjects:   1,
			wantMismatches: 1,
		},
		{
			name: "keys match across cell types",
			in: Input{
				Subjects:       []sheet.Row{{"1000", "F"}},
				Responses:      []sheet.Row{{int64(1000), "r1"}},
				Peers:          []sheet.Row{{1000.0, "p1"}},
				LastSubjectID:  2,
				LastResponseID: 5,
			},
			wantRecords:  []sheet.Row{{int64(6), int64(3), int64(1)}},
			wantSubjects: 1,
		},
		{
			name: "orphaned responses are ignored",
			in: Input{
				Subjects:  []sheet.Row{{int64(1), "F"}},
				Responses: []sheet.Row{{int64(1), "r1"}, {int64(99), "orphan"}},
				Peers:     []sheet.Row{{int64(1), "p1"}, {int64(99), "orphan"}},
			},
			wantRecords:  []sheet.Row{{int64(1), int64(1), int64(1)}},
			wantSubjects: 1,
		},
		{
			name:         "nothing staged",
			in:           Input{LastSubjectID: 4, LastResponseID: 9},
			wantRecords:  []sheet.Row{},
			wantSubjects: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Build(tt.in)

			if diff := cmp.Diff(tt.wantRecords, plan.Records); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
			if len(plan.Subjects) != tt.wantSubjects {
				t.Errorf("Expected %d subjects, got %d", tt.wantSubjects, len(plan.Subjects))
			}
			if len(plan.Mismatches) != tt.wantMismatches {
				t.Errorf("Expected %d mismatches, got %d", tt.wantMismatches, len(plan.Mismatches))
			}
			if len(plan.Responses) != len(plan.Records) || len(plan.SubjectPeers) != len(plan.Records) {
				t.Errorf("Row sets out of step: %d responses, %d peers, %d records",
					len(plan.Responses), len(plan.SubjectPeers), len(plan.Records))
			}
		})
	}
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	in := Input{
		Subjects:  []sheet.Row{{int64(1), "F"}},
		Responses: []sheet.Row{{int64(1), "r1"}},
		Peers:     []sheet.Row{{int64(1), "p1"}},
	}
	plan := Build(in)
	plan.Subjects[0][1] = "changed"

	if in.Subjects[0][1] != "F" {
		t.Error("Build output shares storage with its input")
	}
}

func TestLastID(t *testing.T) {
	tests := []struct {
		name string
		rows []sheet.Row
		want int64
	}{
		{"empty table", nil, 0},
		{"numeric id", []sheet.Row{{int64(3)}, {int64(7), "x"}}, 7},
		{"numeric string id", []sheet.Row{{"12", "x"}}, 12},
		{"non-numeric id", []sheet.Row{{int64(3)}, {"n/a", "x"}}, 0},
		{"empty last row", []sheet.Row{{int64(3)}, {}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := sheet.NewMemStore()
			ctx := context.Background()
			require.NoError(t, staging.CreateSheets(ctx, mem))
			if len(tt.rows) > 0 {
				require.NoError(t, mem.AppendRows(ctx, staging.SubjectTable, tt.rows))
			}

			got, err := LastID(ctx, mem, staging.SubjectTable)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("LastID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteSummaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	sum := Summary{
		Committed:  true,
		Subjects:   2,
		Responses:  3,
		Peers:      3,
		Records:    3,
		Mismatches: []Mismatch{},
		StartedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		FinishedAt: time.Date(2025, 1, 2, 3, 4, 6, 0, time.UTC),
	}

	require.NoError(t, WriteSummaryFile(path, sum))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal(b, &got))
	if diff := cmp.Diff(sum, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}
