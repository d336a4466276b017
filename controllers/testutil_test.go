package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB swaps the global connection for an in-memory SQLite database
// and restores the previous one when the test finishes.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	previous := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = previous })

	return db
}

var testUserSeq int

// createTestUser inserts a user with the given points balance
func createTestUser(t *testing.T, db *gorm.DB, role string, points int) models.User {
	t.Helper()

	testUserSeq++
	hashed, err := utils.HashPassword("Str0ngPass")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Username:     fmt.Sprintf("user%d", testUserSeq),
		Email:        fmt.Sprintf("user%d@example.com", testUserSeq),
		Password:     hashed,
		Name:         "Test User",
		Country:      "US",
		Points:       points,
		Role:         role,
		ReferralCode: utils.GenerateReferralCode(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// performRequest runs a handler through a throwaway router. When user is
// non-nil it is injected into the context the way AuthMiddleware would.
func performRequest(t *testing.T, method, path string, body interface{}, user *models.User, route string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	handlers := []gin.HandlerFunc{}
	if user != nil {
		handlers = append(handlers, func(c *gin.Context) {
			c.Set("user", *user)
			c.Set("token", "test-token")
		})
	}
	handlers = append(handlers, handler)
	router.Handle(method, route, handlers...)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeResponse unmarshals a JSON response body into a map
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("Failed to reload user %d: %v", id, err)
	}
	return user
}
