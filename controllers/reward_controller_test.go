package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"
)

func TestPerformSpinOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)

	w := performRequest(t, http.MethodPost, "/rewards/spin", nil, &user, "/rewards/spin", PerformSpin)
	assertStatus(t, w, http.StatusOK)

	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	won := int(data["points_won"].(float64))

	valid := false
	for _, v := range spinWheelValues {
		if won == v {
			valid = true
		}
	}
	if !valid {
		t.Errorf("points_won = %d, not a wheel segment", won)
	}

	if got := reloadUser(t, db, user.ID).Points; got != won {
		t.Errorf("User points = %d, want %d", got, won)
	}

	// Second spin on the same day conflicts and credits nothing
	w = performRequest(t, http.MethodPost, "/rewards/spin", nil, &user, "/rewards/spin", PerformSpin)
	assertStatus(t, w, http.StatusConflict)

	if got := reloadUser(t, db, user.ID).Points; got != won {
		t.Errorf("User points after rejected spin = %d, want %d", got, won)
	}
}

func TestRecordAdWatchOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 10)

	w := performRequest(t, http.MethodPost, "/rewards/ad-watch", nil, &user, "/rewards/ad-watch", RecordAdWatch)
	assertStatus(t, w, http.StatusOK)

	if got := reloadUser(t, db, user.ID).Points; got != 10+AdWatchPoints {
		t.Errorf("User points = %d, want %d", got, 10+AdWatchPoints)
	}

	w = performRequest(t, http.MethodPost, "/rewards/ad-watch", nil, &user, "/rewards/ad-watch", RecordAdWatch)
	assertStatus(t, w, http.StatusConflict)
}

func TestGetDailyRewardStatus(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)

	w := performRequest(t, http.MethodGet, "/rewards/status", nil, &user, "/rewards/status", GetDailyRewardStatus)
	assertStatus(t, w, http.StatusOK)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	for _, rewardType := range []string{models.RewardTypeSpin, models.RewardTypeTrivia, models.RewardTypeAdWatch} {
		entry := data[rewardType].(map[string]interface{})
		if entry["available"] != true {
			t.Errorf("%s available = %v, want true", rewardType, entry["available"])
		}
	}
	if data["resets_at"] == nil {
		t.Error("resets_at missing from status")
	}

	// Claiming the spin flips only the spin category
	performRequest(t, http.MethodPost, "/rewards/spin", nil, &user, "/rewards/spin", PerformSpin)

	w = performRequest(t, http.MethodGet, "/rewards/status", nil, &user, "/rewards/status", GetDailyRewardStatus)
	data = decodeResponse(t, w)["data"].(map[string]interface{})
	if data[models.RewardTypeSpin].(map[string]interface{})["available"] != false {
		t.Error("spin still available after claiming")
	}
	if data[models.RewardTypeAdWatch].(map[string]interface{})["available"] != true {
		t.Error("ad watch availability affected by spin claim")
	}
}

func TestSubmitDailyTriviaAnswer(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)

	question := models.TriviaQuestion{
		Question:      "Capital of France?",
		Options:       `["Paris","Rome","Berlin","Madrid"]`,
		CorrectAnswer: 0,
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("Failed to create question: %v", err)
	}

	body := SubmitTriviaAnswerRequest{QuestionID: question.ID, SelectedAnswer: 0}
	w := performRequest(t, http.MethodPost, "/rewards/trivia", body, &user, "/rewards/trivia", SubmitDailyTriviaAnswer)
	assertStatus(t, w, http.StatusOK)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	if data["correct"] != true {
		t.Errorf("correct = %v, want true", data["correct"])
	}
	if data["points_earned"].(float64) != 20 {
		t.Errorf("points_earned = %v, want 20", data["points_earned"])
	}

	if got := reloadUser(t, db, user.ID).Points; got != 20 {
		t.Errorf("User points = %d, want 20", got)
	}

	// A second attempt the same day is rejected even with a wrong answer
	body.SelectedAnswer = 2
	w = performRequest(t, http.MethodPost, "/rewards/trivia", body, &user, "/rewards/trivia", SubmitDailyTriviaAnswer)
	assertStatus(t, w, http.StatusConflict)
}

func TestSubmitDailyTriviaAnswerWrong(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)

	question := models.TriviaQuestion{
		Question:      "2+2?",
		Options:       `["3","4"]`,
		CorrectAnswer: 1,
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("Failed to create question: %v", err)
	}

	body := SubmitTriviaAnswerRequest{QuestionID: question.ID, SelectedAnswer: 0}
	w := performRequest(t, http.MethodPost, "/rewards/trivia", body, &user, "/rewards/trivia", SubmitDailyTriviaAnswer)
	assertStatus(t, w, http.StatusOK)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	if data["correct"] != false {
		t.Errorf("correct = %v, want false", data["correct"])
	}
	// The correct answer is revealed after the attempt
	if data["correct_answer"].(float64) != 1 {
		t.Errorf("correct_answer = %v, want 1", data["correct_answer"])
	}
	if data["points_earned"].(float64) != 0 {
		t.Errorf("points_earned = %v, want 0", data["points_earned"])
	}

	if got := reloadUser(t, db, user.ID).Points; got != 0 {
		t.Errorf("User points = %d, want 0", got)
	}

	// The wrong answer still consumed today's attempt
	w = performRequest(t, http.MethodPost, "/rewards/trivia", body, &user, "/rewards/trivia", SubmitDailyTriviaAnswer)
	assertStatus(t, w, http.StatusConflict)
}

func TestSubmitDailyTriviaAnswerNotTodaysQuestion(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)

	questions := []models.TriviaQuestion{
		{Question: "Largest planet?", Options: `["Jupiter","Mars"]`, CorrectAnswer: 0},
		{Question: "Smallest planet?", Options: `["Venus","Mercury"]`, CorrectAnswer: 1},
	}
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			t.Fatalf("Failed to create question: %v", err)
		}
	}

	w := performRequest(t, http.MethodGet, "/rewards/trivia", nil, &user, "/rewards/trivia", GetDailyTriviaQuestion)
	assertStatus(t, w, http.StatusOK)
	todayID := uint(decodeResponse(t, w)["data"].(map[string]interface{})["id"].(float64))

	other := questions[0]
	if other.ID == todayID {
		other = questions[1]
	}

	// Answering a pool question other than today's must not score, even
	// with the right answer
	body := SubmitTriviaAnswerRequest{QuestionID: other.ID, SelectedAnswer: other.CorrectAnswer}
	w = performRequest(t, http.MethodPost, "/rewards/trivia", body, &user, "/rewards/trivia", SubmitDailyTriviaAnswer)
	assertStatus(t, w, http.StatusUnprocessableEntity)

	if got := reloadUser(t, db, user.ID).Points; got != 0 {
		t.Errorf("User points after rejected submission = %d, want 0", got)
	}

	// The rejection did not consume the daily attempt
	var today models.TriviaQuestion
	if err := db.First(&today, todayID).Error; err != nil {
		t.Fatalf("Failed to load today's question: %v", err)
	}
	body = SubmitTriviaAnswerRequest{QuestionID: today.ID, SelectedAnswer: today.CorrectAnswer}
	w = performRequest(t, http.MethodPost, "/rewards/trivia", body, &user, "/rewards/trivia", SubmitDailyTriviaAnswer)
	assertStatus(t, w, http.StatusOK)

	if got := reloadUser(t, db, user.ID).Points; got != DailyTriviaPoints {
		t.Errorf("User points = %d, want %d", got, DailyTriviaPoints)
	}
}

func TestGrantDailyRewardDuplicateClaim(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)
	now := time.Now()

	if err := grantDailyReward(db, user.ID, models.RewardTypeSpin, 25, nil, now); err != nil {
		t.Fatalf("First grant failed: %v", err)
	}

	// A concurrent duplicate bypasses the availability pre-check; the
	// unique claim-day index must still reject it without crediting
	err := grantDailyReward(db, user.ID, models.RewardTypeSpin, 50, nil, now)
	if err == nil {
		t.Fatal("Second grant on the same day succeeded")
	}
	appErr := utils.GetAppError(err)
	if appErr == nil || appErr.Code != http.StatusConflict {
		t.Fatalf("Second grant error = %v, want a conflict", err)
	}
	if got := reloadUser(t, db, user.ID).Points; got != 25 {
		t.Errorf("User points = %d, want 25", got)
	}

	// Other categories on the same day are unaffected
	if err := grantDailyReward(db, user.ID, models.RewardTypeAdWatch, AdWatchPoints, nil, now); err != nil {
		t.Fatalf("Ad-watch grant failed: %v", err)
	}
	if got := reloadUser(t, db, user.ID).Points; got != 25+AdWatchPoints {
		t.Errorf("User points = %d, want %d", got, 25+AdWatchPoints)
	}
}

func TestGetRewardHistoryRejectsBadDates(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleUser, 0)

	w := performRequest(t, http.MethodGet, "/rewards/history?start_date=notadate", nil, &user, "/rewards/history", GetRewardHistory)
	assertStatus(t, w, http.StatusBadRequest)

	w = performRequest(t, http.MethodGet, "/rewards/history?end_date=2026-13-45", nil, &user, "/rewards/history", GetRewardHistory)
	assertStatus(t, w, http.StatusBadRequest)

	w = performRequest(t, http.MethodGet, "/rewards/history?start_date=2026-01-01", nil, &user, "/rewards/history", GetRewardHistory)
	assertStatus(t, w, http.StatusOK)
}
