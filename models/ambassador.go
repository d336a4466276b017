package models

import (
	"time"

	"gorm.io/gorm"
)

// PayoutRequest status constants
const (
	PayoutStatusPending  = "pending"
	PayoutStatusApproved = "approved"
	PayoutStatusRejected = "rejected"
	PayoutStatusPaid     = "paid"
)

// MinimumPayoutAmount is the platform floor for a payout request, in dollars
const MinimumPayoutAmount = 50.0

// AmbassadorDetails is the one-to-one ambassador record for a qualifying user
type AmbassadorDetails struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"uniqueIndex"`
	Country        string         `json:"country"`
	CommissionRate float64        `json:"commission_rate" gorm:"default:10"` // percent
	TotalPayouts   float64        `json:"total_payouts" gorm:"default:0"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// AmbassadorEarning is a single commission credit
type AmbassadorEarning struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"index"`
	Amount    float64        `json:"amount"`
	Source    string         `json:"source"`
	Reference string         `json:"reference"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PayoutRequest is an ambassador's withdrawal request.
// Status transitions are admin-only.
type PayoutRequest struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"index"`
	Amount    float64        `json:"amount"`
	Method    string         `json:"method"`
	Status    string         `json:"status" gorm:"default:'pending'"`
	Note      string         `json:"note"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarketingMaterial is read-only reference content for ambassadors
type MarketingMaterial struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Description  string `json:"description"`
	FileURL      string `json:"file_url"`
	FileType     string `json:"file_type"` // image, video, application, other
	MaterialType string `json:"material_type"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
}
