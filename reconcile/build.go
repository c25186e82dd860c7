// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"github.com/danielhkuo/peer-survey/sheet"
	"github.com/danielhkuo/peer-survey/staging"
)

// Input is one run's view of the staging queues plus the identifiers the
// output tables already end at.
type Input struct {
	Subjects  []sheet.Row
	Responses []sheet.Row
	Peers     []sheet.Row

	LastSubjectID  int64
	LastResponseID int64
}

// Mismatch records a submission whose peer and response counts differ.
// Only min(Responses, Peers) pairs were written for it.
type Mismatch struct {
	Key       any   `json:"key"`
	SubjectID int64 `json:"subject_id"`
	Responses int   `json:"responses"`
	Peers     int   `json:"peers"`
}

// Plan holds the output rows of a run, not yet persisted.
type Plan struct {
	Responses    []sheet.Row
	Subjects     []sheet.Row
	SubjectPeers []sheet.Row
	Records      []sheet.Row
	Mismatches   []Mismatch
}

type ids struct {
	subject  int64
	response int64
}

// Build consolidates staged rows into output rows. Subjects are taken in the
// order given, which Reader.Load makes ascending by correlation key. Responses
// and peers are matched to a subject by key and paired by position.
func Build(in Input) Plan {
	next := ids{subject: in.LastSubjectID, response: in.LastResponseID}

	responsesByKey := groupByKey(in.Responses)
	peersByKey := groupByKey(in.Peers)

	plan := Plan{
		Responses:    []sheet.Row{},
		Subjects:     make([]sheet.Row, 0, len(in.Subjects)),
		SubjectPeers: []sheet.Row{},
		Records:      []sheet.Row{},
	}

	for _, subject := range in.Subjects {
		next.subject++
		subjectID := next.subject
		plan.Subjects = append(plan.Subjects, prefixed(payload(subject), subjectID))

		key := staging.GroupKey(staging.KeyOf(subject))
		responses := responsesByKey[key]
		peers := peersByKey[key]

		if len(responses) != len(peers) {
			plan.Mismatches = append(plan.Mismatches, Mismatch{
				Key:       staging.KeyOf(subject),
				SubjectID: subjectID,
				Responses: len(responses),
				Peers:     len(peers),
			})
		}

		for i := range min(len(responses), len(peers)) {
			next.response++
			responseID := next.response
			peerID := int64(i + 1)

			plan.Responses = append(plan.Responses, prefixed(payload(responses[i]), responseID))
			plan.SubjectPeers = append(plan.SubjectPeers, prefixed(payload(peers[i]), subjectID, peerID))
			plan.Records = append(plan.Records, sheet.Row{responseID, subjectID, peerID})
		}
	}

	return plan
}

func groupByKey(rows []sheet.Row) map[string][]sheet.Row {
	groups := make(map[string][]sheet.Row)
	for _, r := range rows {
		key := staging.GroupKey(staging.KeyOf(r))
		groups[key] = append(groups[key], r)
	}
	return groups
}

// payload strips the correlation key.
func payload(r sheet.Row) sheet.Row {
	if len(r) == 0 {
		return nil
	}
	return r[1:]
}

func prefixed(p sheet.Row, lead ...any) sheet.Row {
	row := make(sheet.Row, 0, len(lead)+len(p))
	row = append(row, lead...)
	return append(row, p...)
}
