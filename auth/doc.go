// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the operator endpoints and anonymizes submitter addresses.

# Operator Key

Operator endpoints (status toggle, consolidation) require the X-Operator-Key
header to match the configured OPERATOR_KEY:

	err := auth.ValidateOperatorKey(r.Header.Get("X-Operator-Key"), cfg.OperatorKey)

Submitters are not authenticated.

# IP Hashing

Submission logs carry a salted hash of the client address instead of the
address itself:

	ipHash := auth.HashIP(clientIP, salt)
*/
package auth
