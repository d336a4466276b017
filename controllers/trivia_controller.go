package controllers

import (
	"encoding/json"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListTriviaGames returns active games with metadata, no questions
func ListTriviaGames(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.TriviaGame{}).Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch trivia games", err.Error())
		return
	}

	var games []models.TriviaGame
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&games).Error; err != nil {
		utils.LogError("Failed to fetch trivia games: %v", err)
		utils.InternalServerError(c, "Failed to fetch trivia games", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Trivia games fetched", games, total, page, limit)
}

// GetTriviaGame returns one game with its ordered questions. Correct
// answers are stripped; scoring is submit-side only.
func GetTriviaGame(c *gin.Context) {
	var game models.TriviaGame
	if err := config.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&game).Error; err != nil {
		utils.NotFound(c, "Trivia game not found")
		return
	}

	var questions []models.TriviaQuestion
	if err := config.DB.Where("game_id = ?", game.ID).Order("position").Find(&questions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch questions", err.Error())
		return
	}

	out := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		var options []string
		if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
			utils.LogError("Corrupt options for question %d: %v", q.ID, err)
			continue
		}
		out = append(out, gin.H{
			"id":       q.ID,
			"question": q.Question,
			"options":  options,
			"position": q.Position,
		})
	}

	utils.Success(c, "Trivia game fetched", gin.H{
		"id":                     game.ID,
		"title":                  game.Title,
		"slug":                   game.Slug,
		"category":               game.Category,
		"difficulty":             game.Difficulty,
		"estimated_time_minutes": game.EstimatedTimeMinutes,
		"points_reward":          game.PointsReward,
		"questions":              out,
	})
}

// SubmitTriviaGameRequest carries the player's answers in question order.
// An answer of -1 marks a question left unanswered, which is scored as
// incorrect. Timer-expiry force-submits arrive through this same endpoint.
type SubmitTriviaGameRequest struct {
	Answers       []int `json:"answers" binding:"required"`
	TimeTakenSecs int   `json:"time_taken_secs"`
}

// ScoreTriviaGame computes correct count and the 0-100 score for a set of
// answers against the ordered questions.
func ScoreTriviaGame(questions []models.TriviaQuestion, answers []int) (correct, score int) {
	if len(questions) == 0 {
		return 0, 0
	}
	for i, q := range questions {
		if i < len(answers) && answers[i] >= 0 && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	score = 100 * correct / len(questions)
	return correct, score
}

// SubmitTriviaGame records an authoritative game result and credits points
func SubmitTriviaGame(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var game models.TriviaGame
	if err := config.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).First(&game).Error; err != nil {
		utils.NotFound(c, "Trivia game not found")
		return
	}

	var req SubmitTriviaGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var questions []models.TriviaQuestion
	if err := config.DB.Where("game_id = ?", game.ID).Order("position").Find(&questions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch questions", err.Error())
		return
	}
	if len(questions) == 0 {
		utils.NotFound(c, "Trivia game has no questions")
		return
	}
	if len(req.Answers) > len(questions) {
		utils.BadRequest(c, "Too many answers", nil)
		return
	}

	correct, score := ScoreTriviaGame(questions, req.Answers)
	pointsEarned := game.PointsReward * correct / len(questions)

	result := models.TriviaGameResult{
		GameID:         game.ID,
		UserID:         user.ID,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
		PointsEarned:   pointsEarned,
		TimeTakenSecs:  req.TimeTakenSecs,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&result).Error; err != nil {
			return err
		}
		if pointsEarned > 0 {
			return tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("points", gorm.Expr("points + ?", pointsEarned)).Error
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to record trivia result for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to record result", err.Error())
		return
	}

	utils.LogInfo("User %d finished game %d: %d/%d correct, %d points", user.ID, game.ID, correct, len(questions), pointsEarned)
	utils.Success(c, "Result recorded", gin.H{
		"score":           score,
		"correct_answers": correct,
		"total_questions": len(questions),
		"points_earned":   pointsEarned,
	})
}
