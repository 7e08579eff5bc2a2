package model

import "github.com/shopspring/decimal"

// Article is a content row (fa_active_article) with its activity and reward
// flattened in. Activity and reward columns are nil for articles that no
// activity links to.
type Article struct {
	ArticleID       int64   `db:"article_id" json:"article_id"`
	ArticleDetailID int64   `db:"article_detail_id" json:"article_detail_id"`
	Tag             *string `db:"Tag" json:"Tag"`
	Tickets         *string `db:"Tickets" json:"Tickets"`
	Registration    *string `db:"Registration" json:"Registration"`
	Content         *string `db:"Articlecontent" json:"Articlecontent"`
	UpdateTime      *int64  `db:"updatetime" json:"updatetime"`

	ActivityID      *int64              `db:"activity_id" json:"activity_id"`
	BackgroundImage *string             `db:"background_image" json:"background_image"`
	Title           *string             `db:"title" json:"title"`
	Subtitle        *string             `db:"subtitle" json:"subtitle"`
	Status          *string             `db:"status" json:"status"`
	CreateTime      *int64              `db:"createtime" json:"createtime"`
	ExpirationTime  *string             `db:"expirationtime" json:"expirationtime"`
	DeleteTime      *int64              `db:"deletetime" json:"deletetime"`
	CurrencyType    *string             `db:"currency_type" json:"currency_type"`
	Location        *string             `db:"location" json:"location"`
	TargetAmount    decimal.NullDecimal `db:"target_amount" json:"target_amount"`

	RewardID         *int64              `db:"reward_id" json:"reward_id"`
	RegistrationFee  decimal.NullDecimal `db:"registration_fee" json:"registration_fee"`
	ParticipantCount *int64              `db:"participant_count" json:"participant_count"`
	RewardHaveMoney  decimal.NullDecimal `db:"reward_havemoney" json:"reward_havemoney"`
	RewardStatus     *string             `db:"reward_status" json:"reward_status"`
}
