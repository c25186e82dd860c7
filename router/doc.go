// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the peer-survey API.

# Route Registration

NewRouter builds a chi router wrapped in CORS:

	handler := router.NewRouter(submissions, admin, cfg.OperatorKey)

# Endpoints

Health:

	GET /health

Survey form (public):

	POST /submissions - Stage one submission (survey must be active)

Operator (requires X-Operator-Key):

	GET  /admin/status            - Survey active flag
	PUT  /admin/status            - Open or close the survey
	POST /admin/reconcile         - Consolidate staged rows
	GET  /admin/reconcile/preview - Dry run, nothing written
	GET  /admin/staging           - Rows waiting per queue
*/
package router
