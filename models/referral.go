package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral links a referred signup to the referrer who owns the code
type Referral struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ReferrerUserID uint           `json:"referrer_user_id" gorm:"index"`
	ReferredUserID uint           `json:"referred_user_id" gorm:"uniqueIndex"`
	ReferralCode   string         `json:"referral_code"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
