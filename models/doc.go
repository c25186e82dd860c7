// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the HTTP API.

# Submission

The survey form posts three arrays:

	{
	  "responses": [["80", "60"], ["75", "40"]],
	  "subjectDemographicData": ["F", "22"],
	  "peerDemographicData": [["M", "21"], ["F", "30"]]
	}

Each response entry pairs positionally with the peer entry describing the
person being rated.

# Operator Types

  - SetStatusRequest / StatusResponse: survey availability
  - StagingResponse: pending rows per staging queue

Consolidation results are returned as reconcile.Summary.

# Errors

All error responses use ErrorResponse:

	{"error": "Bad Request", "message": "subjectDemographicData must be an array"}
*/
package models
