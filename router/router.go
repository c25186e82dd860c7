// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/peer-survey/handlers"
	"github.com/danielhkuo/peer-survey/middleware"
)

func NewRouter(submissions *handlers.SubmissionHandler, admin *handlers.AdminHandler, operatorKey string) http.Handler {
	r := chi.NewRouter()

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Survey form (public)
	r.Post("/submissions", middleware.WithLogging(submissions.Submit))

	// Operator actions (require X-Operator-Key)
	r.Route("/admin", func(ops chi.Router) {
		ops.Use(middleware.RequireOperatorKey(operatorKey))

		ops.Get("/status", middleware.WithLogging(admin.GetStatus))
		ops.Put("/status", middleware.WithLogging(admin.SetStatus))
		ops.Post("/reconcile", middleware.WithLogging(admin.Reconcile))
		ops.Get("/reconcile/preview", middleware.WithLogging(admin.Preview))
		ops.Get("/staging", middleware.WithLogging(admin.Staging))
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("peer-survey API v1"))
	})

	return middleware.CORS(r)
}
