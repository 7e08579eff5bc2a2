package model

import "github.com/shopspring/decimal"

// Reward holds the registration counters of one activity. Nullable counters
// are read through COALESCE, so a freshly seeded row reads as zero.
type Reward struct {
	ID               int64           `db:"reward_id" json:"reward_id"`
	ActivityID       int64           `db:"activity_id" json:"activity_id"`
	RegistrationFee  decimal.Decimal `db:"registration_fee" json:"registration_fee"`
	ParticipantCount int64           `db:"participant_count" json:"participant_count"`
	HaveMoney        decimal.Decimal `db:"reward_havemoney" json:"reward_havemoney"`
	Status           *string         `db:"reward_status" json:"reward_status"`
}
