// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/peer-survey/sheet"
	"github.com/danielhkuo/peer-survey/staging"
)

var ErrRunInProgress = errors.New("consolidation already in progress")

// Gate reports whether the survey form is accepting submissions.
type Gate interface {
	IsActive(ctx context.Context) (bool, error)
}

// Summary describes one consolidation run.
type Summary struct {
	Skipped    bool       `json:"skipped"`
	Committed  bool       `json:"committed"`
	Subjects   int        `json:"subjects"`
	Responses  int        `json:"responses"`
	Peers      int        `json:"peers"`
	Records    int        `json:"records"`
	Mismatches []Mismatch `json:"mismatches"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

func summarize(plan Plan) Summary {
	mismatches := plan.Mismatches
	if mismatches == nil {
		mismatches = []Mismatch{}
	}
	return Summary{
		Subjects:   len(plan.Subjects),
		Responses:  len(plan.Responses),
		Peers:      len(plan.SubjectPeers),
		Records:    len(plan.Records),
		Mismatches: mismatches,
	}
}

// Reconciler runs consolidation. Runs are serialized by an in-process lock;
// the status gate is checked separately at the start of each run.
type Reconciler struct {
	store  sheet.Store
	reader *staging.Reader
	gate   Gate
	now    func() time.Time

	mu sync.Mutex
}

func New(store sheet.Store, gate Gate) *Reconciler {
	return &Reconciler{
		store:  store,
		reader: staging.NewReader(store),
		gate:   gate,
		now:    time.Now,
	}
}

// Run consolidates the staging queues into the output tables. While the
// survey is active it does nothing and returns a skipped summary.
func (r *Reconciler) Run(ctx context.Context) (Summary, error) {
	if !r.mu.TryLock() {
		return Summary{}, ErrRunInProgress
	}
	defer r.mu.Unlock()

	started := r.now()

	active, err := r.gate.IsActive(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read survey status: %w", err)
	}
	if active {
		slog.Info("survey is active, skipping consolidation")
		return Summary{Skipped: true, Mismatches: []Mismatch{}, StartedAt: started, FinishedAt: r.now()}, nil
	}

	plan, err := r.plan(ctx)
	if err != nil {
		slog.Error("consolidation failed", "error", err)
		return Summary{}, err
	}

	if err := Commit(ctx, r.store, plan); err != nil {
		slog.Error("consolidation failed", "error", err)
		return Summary{}, err
	}

	sum := summarize(plan)
	sum.Committed = true
	sum.StartedAt = started
	sum.FinishedAt = r.now()

	slog.Info("consolidation complete",
		"subjects", humanize.Comma(int64(sum.Subjects)),
		"responses", humanize.Comma(int64(sum.Responses)),
		"peers", humanize.Comma(int64(sum.Peers)),
		"records", humanize.Comma(int64(sum.Records)),
		"mismatches", len(sum.Mismatches),
		"duration_ms", sum.FinishedAt.Sub(started).Milliseconds(),
	)

	return sum, nil
}

// Preview builds the plan a run would commit without writing anything.
func (r *Reconciler) Preview(ctx context.Context) (Summary, error) {
	if !r.mu.TryLock() {
		return Summary{}, ErrRunInProgress
	}
	defer r.mu.Unlock()

	started := r.now()
	plan, err := r.plan(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := summarize(plan)
	sum.StartedAt = started
	sum.FinishedAt = r.now()
	return sum, nil
}

func (r *Reconciler) plan(ctx context.Context) (Plan, error) {
	var in Input
	var err error

	if in.Responses, err = r.reader.Load(ctx, staging.ResponseQueue); err != nil {
		return Plan{}, err
	}
	if in.Subjects, err = r.reader.Load(ctx, staging.SubjectQueue); err != nil {
		return Plan{}, err
	}
	if in.Peers, err = r.reader.Load(ctx, staging.PeerQueue); err != nil {
		return Plan{}, err
	}

	// Read once per run; Build increments locally.
	if in.LastSubjectID, err = LastID(ctx, r.store, staging.SubjectTable); err != nil {
		return Plan{}, err
	}
	if in.LastResponseID, err = LastID(ctx, r.store, staging.ResponseTable); err != nil {
		return Plan{}, err
	}

	plan := Build(in)
	for _, m := range plan.Mismatches {
		slog.Warn("peer and response counts differ",
			"key", m.Key,
			"subject_id", m.SubjectID,
			"responses", m.Responses,
			"peers", m.Peers,
		)
	}
	return plan, nil
}
