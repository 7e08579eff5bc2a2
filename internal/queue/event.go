// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "github.com/shopspring/decimal"

// DefaultRegistrationQueue is used when no queue name is configured.
const DefaultRegistrationQueue = "participant.registered"

// ParticipantRegisteredEvent is published after a registration commits. It
// carries the refreshed counters so consumers never need to query the
// database.
type ParticipantRegisteredEvent struct {
	ActivityID       int64           `json:"activity_id"`
	RewardID         int64           `json:"reward_id"`
	ParticipantCount int64           `json:"participant_count"`
	RegistrationFee  decimal.Decimal `json:"registration_fee"`
	HaveMoney        decimal.Decimal `json:"havemoney"`
	RegisteredAt     string          `json:"registered_at"`
	RequestID        string          `json:"request_id,omitempty"`
}
