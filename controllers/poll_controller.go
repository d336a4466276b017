package controllers

import (
	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListPolls returns active polls, optionally filtered by category/country
func ListPolls(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Poll{}).Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("country = ? OR country = ''", country)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch polls", err.Error())
		return
	}

	var polls []models.Poll
	if err := query.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("is_promoted DESC, created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&polls).Error; err != nil {
		utils.LogError("Failed to fetch polls: %v", err)
		utils.InternalServerError(c, "Failed to fetch polls", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Polls fetched", polls, total, page, limit)
}

// GetPoll returns a single active poll by slug
func GetPoll(c *gin.Context) {
	var poll models.Poll
	if err := config.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&poll).Error; err != nil {
		utils.NotFound(c, "Poll not found")
		return
	}

	utils.Success(c, "Poll fetched", poll)
}

// VoteRequest selects one option
type VoteRequest struct {
	OptionID uint `json:"option_id" binding:"required"`
}

// VotePoll records a vote and credits the poll's point value. One vote per
// user per poll.
func VotePoll(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var poll models.Poll
	if err := config.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&poll).Error; err != nil {
		utils.NotFound(c, "Poll not found")
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var option models.PollOption
	if err := config.DB.Where("id = ? AND poll_id = ?", req.OptionID, poll.ID).First(&option).Error; err != nil {
		utils.NotFound(c, "Option not found")
		return
	}

	var existing models.PollVote
	if err := config.DB.Where("poll_id = ? AND user_id = ?", poll.ID, user.ID).First(&existing).Error; err == nil {
		utils.Conflict(c, "Already voted", "You have already voted on this poll.")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		vote := models.PollVote{PollID: poll.ID, UserID: user.ID, OptionID: option.ID}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		if err := tx.Model(&option).Update("vote_count", gorm.Expr("vote_count + 1")).Error; err != nil {
			return err
		}
		if err := tx.Model(&poll).Update("total_votes", gorm.Expr("total_votes + 1")).Error; err != nil {
			return err
		}
		if poll.PointsValue > 0 {
			return tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("points", gorm.Expr("points + ?", poll.PointsValue)).Error
		}
		return nil
	})
	if err != nil {
		utils.LogError("Vote failed for user %d on poll %d: %v", user.ID, poll.ID, err)
		utils.InternalServerError(c, "Failed to record vote", err.Error())
		return
	}

	utils.LogInfo("User %d voted on poll %d", user.ID, poll.ID)
	utils.Success(c, "Vote recorded", gin.H{"points_earned": poll.PointsValue})
}
