package model

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies the result of a disclosure attempt. Exactly one outcome
// is recorded per AccessService.GetSession invocation.
type Outcome string

const (
	OutcomeGranted        Outcome = "granted"
	OutcomeDeniedScope    Outcome = "denied-scope"
	OutcomeDeniedAuth     Outcome = "denied-auth"
	OutcomeDeniedNotFound Outcome = "denied-not-found"
	OutcomeDeniedExpired  Outcome = "denied-expired"
)

// AccessLogEntry is one append-only audit record of a disclosure attempt.
// Entries are never mutated or deleted once written. AgentName is denormalized
// into the row so the log stays readable even after an agent is removed.
type AccessLogEntry struct {
	ID        int64
	AgentID   uuid.UUID
	AgentName string
	Domain    string
	Outcome   Outcome
	Timestamp time.Time
}
