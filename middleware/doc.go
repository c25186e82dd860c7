// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	r.Post("/submissions", middleware.WithLogging(handler))

Logs request start and completion (duration_ms) under a request ID, taken
from X-Request-ID or generated.

# Operator Key

	r.Use(middleware.RequireOperatorKey(cfg.OperatorKey))

Rejects requests without a matching X-Operator-Key with 401.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows headers Content-Type, Authorization, X-Operator-Key, X-Request-ID.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Only the hash is logged.
*/
package middleware
