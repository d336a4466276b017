package models

import (
	"time"

	"gorm.io/gorm"
)

// Poll represents a community poll
type Poll struct {
	gorm.Model
	Question    string       `json:"question" gorm:"not null"`
	Slug        string       `json:"slug" gorm:"uniqueIndex"`
	Category    string       `json:"category"`
	Country     string       `json:"country"` // empty = global
	PointsValue int          `json:"points_value" gorm:"default:5"`
	IsActive    bool         `json:"is_active" gorm:"default:true"`
	IsPromoted  bool         `json:"is_promoted" gorm:"default:false"`
	PromotedAt  *time.Time   `json:"promoted_at,omitempty"`
	CreatedByID uint         `json:"created_by_id"`
	Options     []PollOption `json:"options" gorm:"foreignKey:PollID"`
	TotalVotes  int          `json:"total_votes" gorm:"default:0"`
}

// PollOption is a single answer choice, ordered by Position
type PollOption struct {
	gorm.Model
	PollID    uint   `json:"poll_id" gorm:"index"`
	Text      string `json:"text" gorm:"not null"`
	Position  int    `json:"position"`
	VoteCount int    `json:"vote_count" gorm:"default:0"`
}

// PollVote records a user's vote; one per user per poll
type PollVote struct {
	gorm.Model
	PollID   uint `json:"poll_id" gorm:"index:idx_poll_voter,unique"`
	UserID   uint `json:"user_id" gorm:"index:idx_poll_voter,unique"`
	OptionID uint `json:"option_id"`
}
