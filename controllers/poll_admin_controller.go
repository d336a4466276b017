package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CreatePollRequest is the admin poll creation body
type CreatePollRequest struct {
	Question    string   `json:"question" binding:"required"`
	Options     []string `json:"options" binding:"required,min=2"`
	Category    string   `json:"category"`
	Country     string   `json:"country"`
	PointsValue int      `json:"points_value"`
}

func createPollRecord(db *gorm.DB, req CreatePollRequest, createdBy uint) (*models.Poll, error) {
	poll := models.Poll{
		Question:    req.Question,
		Slug:        slug.Make(req.Question),
		Category:    req.Category,
		Country:     req.Country,
		PointsValue: req.PointsValue,
		IsActive:    true,
		CreatedByID: createdBy,
	}
	if poll.PointsValue <= 0 {
		poll.PointsValue = 5
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&poll).Error; err != nil {
			return err
		}
		for i, text := range req.Options {
			option := models.PollOption{PollID: poll.ID, Text: text, Position: i}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// CreatePoll handles admin poll creation
func CreatePoll(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	poll, err := createPollRecord(config.DB, req, user.ID)
	if err != nil {
		utils.LogError("Failed to create poll: %v", err)
		utils.InternalServerError(c, "Failed to create poll", err.Error())
		return
	}

	utils.LogInfo("Admin %d created poll %d", user.ID, poll.ID)
	utils.Created(c, "Poll created", poll)
}

// DeactivatePoll removes a poll from the active set
func DeactivatePoll(c *gin.Context) {
	var poll models.Poll
	if err := config.DB.Where("slug = ?", c.Param("slug")).First(&poll).Error; err != nil {
		utils.NotFound(c, "Poll not found")
		return
	}

	if err := config.DB.Model(&poll).Update("is_active", false).Error; err != nil {
		utils.InternalServerError(c, "Failed to deactivate poll", err.Error())
		return
	}

	utils.Success(c, "Poll deactivated", nil)
}

// GeneratePollsRequest asks the LLM for a batch of polls
type GeneratePollsRequest struct {
	NumPolls   int      `json:"num_polls" binding:"required,min=1,max=20"`
	Categories []string `json:"categories" binding:"required,min=1"`
	Topic      string   `json:"topic" binding:"required"`
	Country    string   `json:"country"`
}

type generatedPoll struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func requestGeneratedPolls(req GeneratePollsRequest) ([]generatedPoll, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured")
	}
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	prompt := fmt.Sprintf(
		"Generate %d opinion poll questions about %q for categories %s. ",
		req.NumPolls, req.Topic, strings.Join(req.Categories, ", "))
	if req.Country != "" {
		prompt += fmt.Sprintf("Target audience country: %s. ", req.Country)
	}
	prompt += `Respond with a JSON array only, each element {"question": string, "options": [2-4 strings], "category": string}.`

	body, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: "You create engaging community poll questions."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("LLM request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode LLM response: %v", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	content := completion.Choices[0].Message.Content
	// Models often wrap JSON in a fenced block
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var polls []generatedPoll
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &polls); err != nil {
		return nil, fmt.Errorf("failed to parse generated polls: %v", err)
	}
	return polls, nil
}

// GeneratePolls bulk-creates AI generated polls. Admin role is enforced by
// the route middleware; it is never trusted from the request body.
func GeneratePolls(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req GeneratePollsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	utils.LogInfo("Admin %d requested %d AI generated polls on %q", user.ID, req.NumPolls, req.Topic)

	generated, err := requestGeneratedPolls(req)
	if err != nil {
		utils.LogError("Poll generation failed: %v", err)
		utils.InternalServerError(c, "Poll generation failed", err.Error())
		return
	}

	var created []models.Poll
	var errors []string
	for _, g := range generated {
		if g.Question == "" || len(g.Options) < 2 {
			errors = append(errors, fmt.Sprintf("skipped malformed poll: %q", g.Question))
			continue
		}
		poll, err := createPollRecord(config.DB, CreatePollRequest{
			Question: g.Question,
			Options:  g.Options,
			Category: g.Category,
			Country:  req.Country,
		}, user.ID)
		if err != nil {
			errors = append(errors, fmt.Sprintf("failed to save %q: %v", g.Question, err))
			continue
		}
		created = append(created, *poll)
	}

	utils.Success(c, "Poll generation complete", gin.H{
		"success":       len(errors) == 0,
		"created_polls": created,
		"errors":        errors,
		"total_created": len(created),
		"total_errors":  len(errors),
	})
}
