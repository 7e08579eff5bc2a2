package model

import "github.com/shopspring/decimal"

// Activity is one listed fundraising event joined with its reward counters.
// Reward columns come from a LEFT JOIN and are nil when the activity has no
// reward row yet.
//
// Fields:
//  CreateTime    : epoch seconds (fa_activity.createtime).
//  ExpirationTime: local "YYYY-MM-DD HH:MM:SS" text; the listing cutoff.
//  DeleteTime    : soft-delete epoch, nil while live.
//  Phase         : derived lifecycle, never stored.
type Activity struct {
	ID              int64               `db:"id" json:"id"`
	ArticleDetailID *int64              `db:"article_detail_id" json:"article_detail_id"`
	BackgroundImage *string             `db:"background_image" json:"background_image"`
	Title           string              `db:"title" json:"title"`
	Subtitle        *string             `db:"subtitle" json:"subtitle"`
	Status          string              `db:"status" json:"status"`
	Location        *string             `db:"location" json:"location"`
	CreateTime      int64               `db:"createtime" json:"createtime"`
	UpdateTime      *int64              `db:"updatetime" json:"updatetime"`
	ExpirationTime  *string             `db:"expirationtime" json:"expirationtime"`
	DeleteTime      *int64              `db:"deletetime" json:"deletetime"`
	CurrencyType    *string             `db:"currency_type" json:"currency_type"`
	TargetAmount    decimal.NullDecimal `db:"target_amount" json:"target_amount"`

	RewardID         *int64              `db:"reward_id" json:"reward_id"`
	RegistrationFee  decimal.NullDecimal `db:"registration_fee" json:"registration_fee"`
	ParticipantCount *int64              `db:"participant_count" json:"participant_count"`
	RewardHaveMoney  decimal.NullDecimal `db:"reward_havemoney" json:"reward_havemoney"`
	RewardStatus     *string             `db:"reward_status" json:"reward_status"`

	Phase Phase `db:"-" json:"phase"`
}
