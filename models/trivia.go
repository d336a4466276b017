package models

import (
	"gorm.io/gorm"
)

// Difficulty constants for trivia games
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// TriviaGame is a playable set of questions worth a fixed points pool
type TriviaGame struct {
	gorm.Model
	Title                string           `json:"title" gorm:"not null"`
	Slug                 string           `json:"slug" gorm:"uniqueIndex"`
	Category             string           `json:"category"`
	Difficulty           string           `json:"difficulty" gorm:"default:'easy'"`
	EstimatedTimeMinutes int              `json:"estimated_time_minutes" gorm:"default:5"`
	PointsReward         int              `json:"points_reward" gorm:"default:50"`
	IsActive             bool             `json:"is_active" gorm:"default:true"`
	Questions            []TriviaQuestion `json:"questions,omitempty" gorm:"foreignKey:GameID"`
}

// TriviaQuestion holds one question with ordered options.
// Options are stored as a JSON array; CorrectAnswer is the index into it
// and must never be serialized to players.
type TriviaQuestion struct {
	gorm.Model
	GameID        *uint  `json:"game_id" gorm:"index"` // nil = daily question pool
	Question      string `json:"question" gorm:"not null"`
	Options       string `json:"-" gorm:"type:text;not null"` // JSON array of strings
	CorrectAnswer int    `json:"-"`
	Country       string `json:"country"` // empty = global
	Position      int    `json:"position"`
}

// TriviaGameResult is the authoritative record of a completed game session
type TriviaGameResult struct {
	gorm.Model
	GameID         uint `json:"game_id" gorm:"index"`
	UserID         uint `json:"user_id" gorm:"index"`
	Score          int  `json:"score"` // 0-100
	CorrectAnswers int  `json:"correct_answers"`
	TotalQuestions int  `json:"total_questions"`
	PointsEarned   int  `json:"points_earned"`
	TimeTakenSecs  int  `json:"time_taken_secs"`
}
