package controllers

import (
	"encoding/json"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CreateTriviaGameRequest is the admin game creation body
type CreateTriviaGameRequest struct {
	Title                string                      `json:"title" binding:"required"`
	Category             string                      `json:"category"`
	Difficulty           string                      `json:"difficulty"`
	EstimatedTimeMinutes int                         `json:"estimated_time_minutes"`
	PointsReward         int                         `json:"points_reward"`
	Questions            []CreateTriviaQuestionInput `json:"questions" binding:"required,min=1"`
}

// CreateTriviaQuestionInput is one question within a game creation request
type CreateTriviaQuestionInput struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer"`
	Country       string   `json:"country"`
}

// CreateTriviaGame handles admin trivia game creation
func CreateTriviaGame(c *gin.Context) {
	var req CreateTriviaGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	for _, q := range req.Questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			utils.BadRequest(c, "Invalid correct answer index",
				gin.H{"question": q.Question})
			return
		}
	}

	game := models.TriviaGame{
		Title:                req.Title,
		Slug:                 slug.Make(req.Title),
		Category:             req.Category,
		Difficulty:           req.Difficulty,
		EstimatedTimeMinutes: req.EstimatedTimeMinutes,
		PointsReward:         req.PointsReward,
		IsActive:             true,
	}
	if game.Difficulty == "" {
		game.Difficulty = models.DifficultyEasy
	}
	if game.EstimatedTimeMinutes <= 0 {
		game.EstimatedTimeMinutes = 5
	}
	if game.PointsReward <= 0 {
		game.PointsReward = 50
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		for i, q := range req.Questions {
			options, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			gameID := game.ID
			question := models.TriviaQuestion{
				GameID:        &gameID,
				Question:      q.Question,
				Options:       string(options),
				CorrectAnswer: q.CorrectAnswer,
				Country:       q.Country,
				Position:      i,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to create trivia game: %v", err)
		utils.InternalServerError(c, "Failed to create trivia game", err.Error())
		return
	}

	utils.LogInfo("Trivia game %d created with %d questions", game.ID, len(req.Questions))
	utils.Created(c, "Trivia game created", game)
}

// CreateDailyQuestionRequest adds a question to the daily pool
type CreateDailyQuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer"`
	Country       string   `json:"country"`
}

// CreateDailyQuestion adds a standalone question to the daily trivia pool
func CreateDailyQuestion(c *gin.Context) {
	var req CreateDailyQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.CorrectAnswer < 0 || req.CorrectAnswer >= len(req.Options) {
		utils.BadRequest(c, "Invalid correct answer index", nil)
		return
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		utils.InternalServerError(c, "Failed to encode options", err.Error())
		return
	}

	question := models.TriviaQuestion{
		Question:      req.Question,
		Options:       string(options),
		CorrectAnswer: req.CorrectAnswer,
		Country:       req.Country,
	}
	if err := config.DB.Create(&question).Error; err != nil {
		utils.InternalServerError(c, "Failed to create question", err.Error())
		return
	}

	utils.Created(c, "Daily question created", gin.H{"id": question.ID})
}

// DeactivateTriviaGame removes a game from the active set
func DeactivateTriviaGame(c *gin.Context) {
	var game models.TriviaGame
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&game).Error; err != nil {
		utils.NotFound(c, "Trivia game not found")
		return
	}

	if err := config.DB.Model(&game).Update("is_active", false).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate game", err.Error())
		return
	}

	utils.Success(c, "Trivia game deactivated", nil)
}
