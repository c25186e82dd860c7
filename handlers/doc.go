// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the peer-survey API.

# Handler Types

  - SubmissionHandler: Accepts survey submissions into staging
  - AdminHandler: Survey status, reconcile runs and staging counts

	submissions := handlers.NewSubmissionHandler(writer, statusStore, cfg)
	admin := handlers.NewAdminHandler(reconciler, statusStore, store, cfg)

# Submissions

POST /submissions takes three arrays:

	{
	  "responses": [["80", "60"], ["75", "40"]],
	  "subjectDemographicData": ["F", "22"],
	  "peerDemographicData": [["M", "21"], ["F", "30"]]
	}

Every row is staged under one correlation key. Unequal response and peer
counts are accepted and logged; reconcile truncates them.

# Reconcile

POST /admin/reconcile returns a reconcile.Summary. A run against an active
survey reports skipped. A run already in progress is 409. A failed run
keeps the staged rows and is safe to retry.
*/
package handlers
