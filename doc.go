// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the peer-survey service.

peer-survey accepts survey submissions into staging queues and periodically
consolidates them into the responses, subjects, subject_peers and records
tables, assigning sequential IDs as it goes.

# Commands

	peer-survey [serve]      Run the HTTP API (default)
	peer-survey reconcile    Run one consolidation pass and exit

The reconcile command is meant for a scheduler (cron, systemd timer). It
does nothing while the survey is active.

# Configuration

	DATABASE_TYPE=sqlite DATABASE_URL=file:peer-survey.db OPERATOR_KEY=... peer-survey

Or with flags:

	peer-survey -p 3318 -t postgres -d "postgres://..." --operator-key ...

Settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (required for postgres)
  - OPERATOR_KEY (--operator-key): Secret for /admin routes (required for serve)
  - SUMMARY_FILE (--summary-file): Where reconcile writes its JSON summary

A .env file in the working directory is loaded if present.

# Architecture

  - sheet: Tabular store (SQL and in-memory)
  - staging: Submission writer and queue reader
  - reconcile: Join, ID assignment and guarded commit
  - status: Survey active flag
  - handlers, router, middleware, models: HTTP surface
  - auth: Operator key checks
  - db: Connection and schema
  - cliparse: Configuration parsing
*/
package main
