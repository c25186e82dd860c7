// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/peer-survey/cliparse"
	"github.com/danielhkuo/peer-survey/middleware"
	"github.com/danielhkuo/peer-survey/models"
	"github.com/danielhkuo/peer-survey/reconcile"
	"github.com/danielhkuo/peer-survey/sheet"
	"github.com/danielhkuo/peer-survey/staging"
)

// StatusStore reads and flips survey availability.
type StatusStore interface {
	IsActive(ctx context.Context) (bool, error)
	SetActive(ctx context.Context, active bool) error
}

// AdminHandler serves the operator endpoints. Routes are mounted behind
// middleware.RequireOperatorKey.
type AdminHandler struct {
	reconciler *reconcile.Reconciler
	status     StatusStore
	store      sheet.Store
	cfg        cliparse.Config
}

func NewAdminHandler(reconciler *reconcile.Reconciler, status StatusStore, store sheet.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{reconciler: reconciler, status: status, store: store, cfg: cfg}
}

// GetStatus handles GET /admin/status
func (h *AdminHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	active, err := h.status.IsActive(r.Context())
	if err != nil {
		slog.Error("failed to query survey status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Active: active})
}

// SetStatus handles PUT /admin/status
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req models.SetStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Active == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "active is required")
		return
	}

	if err := h.status.SetActive(r.Context(), *req.Active); err != nil {
		slog.Error("failed to update survey status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	slog.Info("survey status changed", "active", *req.Active)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Active: *req.Active})
}

// Reconcile handles POST /admin/reconcile
// Returns 200 with skipped=true while the survey is active
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	sum, err := h.reconciler.Run(r.Context())
	if errors.Is(err, reconcile.ErrRunInProgress) {
		middleware.ErrorResponse(w, http.StatusConflict, "Consolidation already in progress")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Consolidation failed; staged data was kept")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sum)
}

// Preview handles GET /admin/reconcile/preview
// Reports what a run would write without writing it
func (h *AdminHandler) Preview(w http.ResponseWriter, r *http.Request) {
	sum, err := h.reconciler.Preview(r.Context())
	if errors.Is(err, reconcile.ErrRunInProgress) {
		middleware.ErrorResponse(w, http.StatusConflict, "Consolidation already in progress")
		return
	}
	if err != nil {
		slog.Error("failed to preview consolidation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read staged data")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sum)
}

// Staging handles GET /admin/staging
func (h *AdminHandler) Staging(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int, len(staging.Queues))
	for _, q := range staging.Queues {
		n, err := h.store.DataRowCount(r.Context(), q)
		if err != nil {
			slog.Error("failed to count staged rows", "queue", q, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		counts[q] = n
	}

	middleware.JSONResponse(w, http.StatusOK, models.StagingResponse{Queues: counts})
}
