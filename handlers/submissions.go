// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/peer-survey/auth"
	"github.com/danielhkuo/peer-survey/cliparse"
	"github.com/danielhkuo/peer-survey/middleware"
	"github.com/danielhkuo/peer-survey/models"
	"github.com/danielhkuo/peer-survey/reconcile"
	"github.com/danielhkuo/peer-survey/staging"
)

type SubmissionHandler struct {
	writer *staging.Writer
	gate   reconcile.Gate
	cfg    cliparse.Config
}

func NewSubmissionHandler(writer *staging.Writer, gate reconcile.Gate, cfg cliparse.Config) *SubmissionHandler {
	return &SubmissionHandler{writer: writer, gate: gate, cfg: cfg}
}

// Submit handles POST /submissions
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	responses, err := decodeRows(req.Responses, "responses")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	subject, err := decodeRow(req.SubjectDemographicData, "subjectDemographicData")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	peers, err := decodeRows(req.PeerDemographicData, "peerDemographicData")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Can only submit while the survey is open
	active, err := h.gate.IsActive(r.Context())
	if err != nil {
		slog.Error("failed to query survey status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !active {
		middleware.ErrorResponse(w, http.StatusConflict, "Survey is not accepting submissions")
		return
	}

	key, err := h.writer.Stage(r.Context(), responses, subject, peers)
	if errors.Is(err, staging.ErrInvalidInput) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		// Earlier appends of this submission may already be staged.
		slog.Error("failed to stage submission", "error", err, "key", key)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}

	if len(responses) != len(peers) {
		slog.Warn("submission has unequal response and peer counts",
			"key", key, "responses", len(responses), "peers", len(peers))
	}

	slog.Info("submission staged",
		"key", key,
		"responses", len(responses),
		"peers", len(peers),
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.OperatorKey),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		CorrelationKey: key,
		Message:        "Submission received",
	})
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// decodeRow decodes a JSON array of scalar values.
func decodeRow(raw json.RawMessage, field string) ([]any, error) {
	if !isArray(raw) {
		return nil, fmt.Errorf("%s must be an array", field)
	}
	var row []any
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("%s must be an array", field)
	}
	if row == nil {
		row = []any{}
	}
	return row, nil
}

// decodeRows decodes a JSON array whose elements are arrays.
func decodeRows(raw json.RawMessage, field string) ([][]any, error) {
	if !isArray(raw) {
		return nil, fmt.Errorf("%s must be an array", field)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%s must be an array", field)
	}

	rows := make([][]any, 0, len(items))
	for i, item := range items {
		row, err := decodeRow(item, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
