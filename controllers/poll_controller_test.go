package controllers

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/pollpeak/pulseearn/models"
)

func createTestPoll(t *testing.T, db *gorm.DB, slug string, pointsValue int) models.Poll {
	t.Helper()

	poll := models.Poll{
		Question:    "Favorite color?",
		Slug:        slug,
		PointsValue: pointsValue,
		IsActive:    true,
		Options: []models.PollOption{
			{Text: "Red", Position: 0},
			{Text: "Blue", Position: 1},
		},
	}
	if err := db.Create(&poll).Error; err != nil {
		t.Fatalf("Failed to create poll: %v", err)
	}
	return poll
}

func TestVotePoll(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)
	poll := createTestPoll(t, db, "favorite-color", 5)

	body := VoteRequest{OptionID: poll.Options[0].ID}
	w := performRequest(t, http.MethodPost, "/polls/favorite-color/vote", body, &user,
		"/polls/:slug/vote", VotePoll)
	assertStatus(t, w, http.StatusOK)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	if data["points_earned"].(float64) != 5 {
		t.Errorf("points_earned = %v, want 5", data["points_earned"])
	}

	var option models.PollOption
	if err := db.First(&option, poll.Options[0].ID).Error; err != nil {
		t.Fatalf("Failed to reload option: %v", err)
	}
	if option.VoteCount != 1 {
		t.Errorf("VoteCount = %d, want 1", option.VoteCount)
	}

	var reloaded models.Poll
	if err := db.First(&reloaded, poll.ID).Error; err != nil {
		t.Fatalf("Failed to reload poll: %v", err)
	}
	if reloaded.TotalVotes != 1 {
		t.Errorf("TotalVotes = %d, want 1", reloaded.TotalVotes)
	}

	if got := reloadUser(t, db, user.ID).Points; got != 5 {
		t.Errorf("User points = %d, want 5", got)
	}
}

func TestVotePollTwice(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)
	poll := createTestPoll(t, db, "favorite-color", 5)

	body := VoteRequest{OptionID: poll.Options[0].ID}
	w := performRequest(t, http.MethodPost, "/polls/favorite-color/vote", body, &user,
		"/polls/:slug/vote", VotePoll)
	assertStatus(t, w, http.StatusOK)

	// A second vote, even for a different option, conflicts
	body = VoteRequest{OptionID: poll.Options[1].ID}
	w = performRequest(t, http.MethodPost, "/polls/favorite-color/vote", body, &user,
		"/polls/:slug/vote", VotePoll)
	assertStatus(t, w, http.StatusConflict)

	if got := reloadUser(t, db, user.ID).Points; got != 5 {
		t.Errorf("User points after rejected vote = %d, want 5", got)
	}
}

func TestVotePollWrongOption(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)
	createTestPoll(t, db, "favorite-color", 5)
	other := createTestPoll(t, db, "other-poll", 5)

	// Option from a different poll is rejected
	body := VoteRequest{OptionID: other.Options[0].ID}
	w := performRequest(t, http.MethodPost, "/polls/favorite-color/vote", body, &user,
		"/polls/:slug/vote", VotePoll)
	assertStatus(t, w, http.StatusNotFound)
}
