package controllers

import (
	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
)

// LeaderboardEntry is one ranked row. Rank is derived on every fetch by
// sorting on points; nothing is persisted.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	Points    int    `json:"points"`
	AvatarURL string `json:"avatar_url"`
}

// GetLeaderboard returns users ranked by points, optionally country scoped
func GetLeaderboard(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.User{}).Where("is_blocked = ?", false)
	if country := c.Query("country"); country != "" {
		query = query.Where("country = ?", country)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch leaderboard", err.Error())
		return
	}

	var users []models.User
	if err := query.Order("points DESC, id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to fetch leaderboard: %v", err)
		utils.InternalServerError(c, "Failed to fetch leaderboard", err.Error())
		return
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	rank := (page-1)*limit + 1
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:      rank,
			UserID:    u.ID,
			Username:  u.Username,
			Name:      u.Name,
			Country:   u.Country,
			Points:    u.Points,
			AvatarURL: u.AvatarURL,
		})
		rank++
	}

	utils.SuccessWithPagination(c, "Leaderboard fetched", entries, total, page, limit)
}

// GetMyRank returns the caller's current rank among unblocked users
func GetMyRank(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var ahead int64
	query := config.DB.Model(&models.User{}).Where("is_blocked = ?", false)
	if err := query.Where("points > ? OR (points = ? AND id < ?)", user.Points, user.Points, user.ID).
		Count(&ahead).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute rank", err.Error())
		return
	}

	utils.Success(c, "Rank fetched", gin.H{
		"rank":   ahead + 1,
		"points": user.Points,
	})
}
