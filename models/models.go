package models

import (
	"time"

	"gorm.io/gorm"
)

// Role constants form a total order used for access control.
const (
	RoleUser       = "user"
	RoleModerator  = "moderator"
	RoleAmbassador = "ambassador"
	RoleAdmin      = "admin"
)

var roleLevels = map[string]int{
	RoleUser:       0,
	RoleModerator:  1,
	RoleAmbassador: 2,
	RoleAdmin:      3,
}

// RoleLevel returns the numeric privilege level for a role.
// Unknown or empty roles map to the lowest level.
func RoleLevel(role string) int {
	if level, ok := roleLevels[role]; ok {
		return level
	}
	return 0
}

// User represents a member profile in the system
type User struct {
	gorm.Model
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `json:"-"`
	Name           string    `json:"name"`
	Country        string    `json:"country"`
	Points         int       `json:"points" gorm:"default:0"`
	Role           string    `json:"role" gorm:"default:'user'"`
	ReferralCode   string    `gorm:"uniqueIndex" json:"referral_code"`
	ReferredByCode string    `json:"referred_by_code"`
	AvatarURL      string    `json:"avatar_url"`
	PayoutMethod   string    `json:"payout_method"`
	IsBlocked      bool      `json:"is_blocked"`
	LastLoginAt    time.Time `json:"last_login_at"`
	GoogleID       string    `gorm:"default:null" json:"google_id"`

	Badges []Badge `json:"badges,omitempty" gorm:"foreignKey:UserID"`
}

// Badge is an append-only achievement marker on a profile
type Badge struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index:idx_user_badge,unique"`
	Code   string `json:"code" gorm:"index:idx_user_badge,unique;not null"`
}

// BlacklistedToken stores JWTs invalidated by sign-out until they expire
type BlacklistedToken struct {
	gorm.Model
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

// SiteSetting is a remote configuration value (branding, feature flags, ad slots)
type SiteSetting struct {
	gorm.Model
	Key    string `gorm:"uniqueIndex;not null" json:"key"`
	Value  string `json:"value"`
	Public bool   `json:"public" gorm:"default:true"`
}
