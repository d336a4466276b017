package models

import (
	"gorm.io/gorm"
)

// Reward type constants; each is claimable once per UTC day
const (
	RewardTypeSpin    = "spin"
	RewardTypeTrivia  = "trivia"
	RewardTypeAdWatch = "ad_watch"
)

// DailyReward is one successful claim. Availability is always derived from
// these rows against the current UTC day, never stored. The unique index on
// (user_id, reward_type, claim_day) makes the once-per-day grant atomic even
// under concurrent claims.
type DailyReward struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index:idx_daily_claim,unique"`
	RewardType string `json:"reward_type" gorm:"index:idx_daily_claim,unique;not null"`
	ClaimDay   string `json:"-" gorm:"index:idx_daily_claim,unique;not null"` // YYYY-MM-DD, UTC
	Points     int    `json:"points"`
	Correct    *bool  `json:"correct,omitempty"` // trivia claims only
}
