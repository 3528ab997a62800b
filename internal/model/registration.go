package model

import "time"

// Participant is a single row of the intake form before submission. It is
// mutated in memory only and becomes a Registration once a batch commits.
//
// Fields:
//  Name      – free text, trimmed at submit time.
//  CollegeID – trimmed and upper-cased at submit time; letters and digits only.
//  Class     – one of ClassNames.
type Participant struct {
	Name      string `json:"name"`
	CollegeID string `json:"college_id"`
	Class     string `json:"class"`
}

// Registration mirrors the 'registrations' table. Rows are immutable once
// inserted; there is no update or delete path anywhere in the service.
//
// Fields:
//  ID                – registrations.id (server generated).
//  Name              – registrations.name.
//  CollegeID         – registrations.college_id (unique across the table).
//  House             – registrations.house, one of Houses.
//  Class             – registrations.class, one of ClassNames.
//  RegistrationBatch – registrations.registration_batch; UUID shared by the
//                      30 rows of one submission.
//  CreatedAt         – registrations.created_at (server generated).
type Registration struct {
	ID                uint64    `json:"id"`
	Name              string    `json:"name"`
	CollegeID         string    `json:"college_id"`
	House             string    `json:"house"`
	Class             string    `json:"class"`
	RegistrationBatch string    `json:"registration_batch"`
	CreatedAt         time.Time `json:"created_at"`
}

// HouseStatus mirrors one row of the read-only 'house_registration_status'
// aggregate. The database maintains the count and completion flag; this
// service never recomputes them.
type HouseStatus struct {
	House             string     `json:"house"`
	ParticipantsCount int        `json:"participants_count"`
	IsCompleted       bool       `json:"is_completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}
