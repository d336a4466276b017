package controllers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Spin wheel segments; a spin lands on one at random
var spinWheelValues = []int{5, 10, 15, 20, 25, 50, 100}

// AdWatchPoints is the fixed bonus for a daily ad watch
const AdWatchPoints = 5

// DailyTriviaPoints is the credit for a correct daily trivia answer
const DailyTriviaPoints = 20

func claimedToday(db *gorm.DB, userID uint, rewardType string, now time.Time) (bool, error) {
	var count int64
	err := db.Model(&models.DailyReward{}).
		Where("user_id = ? AND reward_type = ? AND claim_day = ?", userID, rewardType, utils.DayKeyUTC(now)).
		Count(&count).Error
	return count > 0, err
}

// grantDailyReward records a claim and credits the points in one
// transaction. The claim row carries the UTC day key, so a concurrent
// duplicate hits the unique index instead of double-crediting; that case
// surfaces as a conflict error.
func grantDailyReward(db *gorm.DB, userID uint, rewardType string, points int, correct *bool, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		reward := models.DailyReward{
			UserID:     userID,
			RewardType: rewardType,
			ClaimDay:   utils.DayKeyUTC(now),
			Points:     points,
			Correct:    correct,
		}
		if err := tx.Create(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.ConflictError("Already claimed today", nil)
			}
			return err
		}
		if points > 0 {
			return tx.Model(&models.User{}).Where("id = ?", userID).
				Update("points", gorm.Expr("points + ?", points)).Error
		}
		return nil
	})
}

// GetDailyRewardStatus reports per-category availability against the
// current UTC day and when the next reset happens.
func GetDailyRewardStatus(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	now := time.Now()

	status := gin.H{}
	for _, rewardType := range []string{models.RewardTypeSpin, models.RewardTypeTrivia, models.RewardTypeAdWatch} {
		claimed, err := claimedToday(config.DB, user.ID, rewardType, now)
		if err != nil {
			utils.LogError("Failed to compute reward status for user %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to fetch reward status", err.Error())
			return
		}
		status[rewardType] = gin.H{"available": !claimed}
	}
	status["resets_at"] = utils.NextMidnightUTC(now)

	utils.Success(c, "Reward status fetched", status)
}

// PerformSpin grants a random wheel value once per UTC day
func PerformSpin(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	now := time.Now()

	claimed, err := claimedToday(config.DB, user.ID, models.RewardTypeSpin, now)
	if err != nil {
		utils.InternalServerError(c, "Failed to check spin availability", err.Error())
		return
	}
	if claimed {
		utils.Conflict(c, "Already claimed today", "You have already used your daily spin. Come back after the UTC midnight reset.")
		return
	}

	points := spinWheelValues[rand.Intn(len(spinWheelValues))]

	if err := grantDailyReward(config.DB, user.ID, models.RewardTypeSpin, points, nil, now); err != nil {
		utils.LogError("Spin failed for user %d: %v", user.ID, err)
		utils.RespondWithError(c, err, "Failed to record spin")
		return
	}

	utils.LogInfo("User %d won %d points on the daily spin", user.ID, points)
	utils.Success(c, "Spin complete", gin.H{
		"points_won": points,
		"resets_at":  utils.NextMidnightUTC(now),
	})
}

// todaysDailyQuestion selects the question every eligible user gets on the
// current UTC day. Submissions are checked against this, never against a
// client-supplied question.
func todaysDailyQuestion(db *gorm.DB, user models.User, now time.Time) (*models.TriviaQuestion, error) {
	query := db.Where("game_id IS NULL")
	if user.Country != "" {
		query = query.Where("country = ? OR country = ''", user.Country)
	}

	var count int64
	if err := query.Model(&models.TriviaQuestion{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, utils.NotFoundError("No daily trivia question available", nil)
	}

	dayOrdinal := now.UTC().Unix() / 86400
	var question models.TriviaQuestion
	if err := query.Order("id").Offset(int(dayOrdinal % count)).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// GetDailyTriviaQuestion returns today's question without consuming the
// daily allowance. Country-scoped questions are preferred when available.
func GetDailyTriviaQuestion(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	question, err := todaysDailyQuestion(config.DB, user, time.Now())
	if err != nil {
		utils.RespondWithError(c, err, "Failed to load question")
		return
	}

	var options []string
	if err := json.Unmarshal([]byte(question.Options), &options); err != nil {
		utils.LogError("Corrupt options for question %d: %v", question.ID, err)
		utils.InternalServerError(c, "Failed to load question", err.Error())
		return
	}

	utils.Success(c, "Daily trivia question fetched", gin.H{
		"id":       question.ID,
		"question": question.Question,
		"options":  options,
	})
}

// SubmitTriviaAnswerRequest is the daily trivia answer submission
type SubmitTriviaAnswerRequest struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedAnswer int  `json:"selected_answer"`
}

// SubmitDailyTriviaAnswer scores the answer server-side; one attempt per
// UTC day regardless of correctness. The submitted id must match the
// question selected for today, otherwise a player could replay a question
// whose answer they already know.
func SubmitDailyTriviaAnswer(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	now := time.Now()

	var req SubmitTriviaAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	claimed, err := claimedToday(config.DB, user.ID, models.RewardTypeTrivia, now)
	if err != nil {
		utils.InternalServerError(c, "Failed to check trivia availability", err.Error())
		return
	}
	if claimed {
		utils.Conflict(c, "Already claimed today", "You have already answered today's trivia question.")
		return
	}

	question, err := todaysDailyQuestion(config.DB, user, now)
	if err != nil {
		utils.RespondWithError(c, err, "Failed to load question")
		return
	}
	if req.QuestionID != question.ID {
		utils.ValidationError(c, "Not today's question", "The submitted question is not today's daily trivia question.")
		return
	}

	correct := req.SelectedAnswer == question.CorrectAnswer
	points := 0
	if correct {
		points = DailyTriviaPoints
	}

	if err := grantDailyReward(config.DB, user.ID, models.RewardTypeTrivia, points, &correct, now); err != nil {
		utils.LogError("Daily trivia submission failed for user %d: %v", user.ID, err)
		utils.RespondWithError(c, err, "Failed to record answer")
		return
	}

	utils.Success(c, "Answer recorded", gin.H{
		"correct":        correct,
		"correct_answer": question.CorrectAnswer,
		"points_earned":  points,
	})
}

// RecordAdWatch grants the fixed ad-watch bonus once per UTC day
func RecordAdWatch(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	now := time.Now()

	claimed, err := claimedToday(config.DB, user.ID, models.RewardTypeAdWatch, now)
	if err != nil {
		utils.InternalServerError(c, "Failed to check ad-watch availability", err.Error())
		return
	}
	if claimed {
		utils.Conflict(c, "Already claimed today", "You have already claimed today's ad-watch bonus.")
		return
	}

	if err := grantDailyReward(config.DB, user.ID, models.RewardTypeAdWatch, AdWatchPoints, nil, now); err != nil {
		utils.LogError("Ad watch failed for user %d: %v", user.ID, err)
		utils.RespondWithError(c, err, "Failed to record ad watch")
		return
	}

	utils.Success(c, "Ad watch recorded", gin.H{"points_earned": AdWatchPoints})
}

// GetRewardHistory lists past claims, newest first, with optional type and
// date filters
func GetRewardHistory(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.DailyReward{}).Where("user_id = ?", user.ID)
	if rewardType := c.Query("reward_type"); rewardType != "" {
		query = query.Where("reward_type = ?", rewardType)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			utils.BadRequest(c, "Invalid start_date", "Dates must use the YYYY-MM-DD format")
			return
		}
		query = query.Where("created_at >= ?", t)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			utils.BadRequest(c, "Invalid end_date", "Dates must use the YYYY-MM-DD format")
			return
		}
		query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reward history", err.Error())
		return
	}

	var rewards []models.DailyReward
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rewards).Error; err != nil {
		utils.LogError("Failed to fetch reward history for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch reward history", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Reward history fetched", rewards, total, page, limit)
}
