// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p, --port          Server port
	-t, --database-type sqlite or postgres
	-d, --database-url  Database URL
	--operator-key      Operator key for /admin routes
	--summary-file      JSON summary path for reconcile

The first positional argument is the command: serve (default) or reconcile.

# Environment Variables

	PORT          → -p
	DATABASE_TYPE → -t
	DATABASE_URL  → -d
	OPERATOR_KEY  → --operator-key
	SUMMARY_FILE  → --summary-file

CLI flags take precedence over environment variables.

# Validation

  - DATABASE_TYPE must be sqlite or postgres
  - DATABASE_URL is required for postgres
  - OPERATOR_KEY is required for serve
*/
package cliparse
