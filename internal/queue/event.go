// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationCommittedEvent is published after a team batch lands in the
// primary store. Its arrival tells every status reader that the house
// aggregate has changed and a fresh snapshot should be fetched; consumers
// never patch state from the payload itself.
type RegistrationCommittedEvent struct {
	House             string `json:"house"`
	RegistrationBatch string `json:"registration_batch"`
	Count             int    `json:"count"`
	CommittedAt       string `json:"committed_at"`
}
