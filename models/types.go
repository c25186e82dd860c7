package models

import "encoding/json"

// Request types

// SubmitRequest is the payload the survey form posts. Each field must be a
// JSON array; responses and peer data are arrays of arrays. Fields stay raw
// so non-array values can be rejected before anything is decoded.
type SubmitRequest struct {
	Responses              json.RawMessage `json:"responses"`
	SubjectDemographicData json.RawMessage `json:"subjectDemographicData"`
	PeerDemographicData    json.RawMessage `json:"peerDemographicData"`
}

type SetStatusRequest struct {
	Active *bool `json:"active"`
}

// Response types

type SubmitResponse struct {
	CorrelationKey int64  `json:"correlation_key"`
	Message        string `json:"message"`
}

type StatusResponse struct {
	Active bool `json:"active"`
}

// StagingResponse maps staging queue name to pending data rows.
type StagingResponse struct {
	Queues map[string]int `json:"queues"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
