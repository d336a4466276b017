package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pollpeak/pulseearn/models"
)

func TestBuildSitemap(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Poll{}, &models.PollOption{}, &models.TriviaGame{}); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	polls := []models.Poll{
		{Question: "Active poll", Slug: "active-poll", IsActive: true},
		{Question: "Hidden poll", Slug: "hidden-poll", IsActive: false},
	}
	for i := range polls {
		if err := db.Create(&polls[i]).Error; err != nil {
			t.Fatalf("Failed to create poll: %v", err)
		}
	}
	game := models.TriviaGame{Title: "Quiz", Slug: "quiz", IsActive: true}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "sitemap.xml")
	if err := BuildSitemap(db, "https://pollpeak.com/", outPath); err != nil {
		t.Fatalf("BuildSitemap failed: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read sitemap: %v", err)
	}
	content := string(raw)

	for _, want := range []string{
		"<loc>https://pollpeak.com/</loc>",
		"<loc>https://pollpeak.com/polls</loc>",
		"<loc>https://pollpeak.com/polls/active-poll</loc>",
		"<loc>https://pollpeak.com/trivia/quiz</loc>",
		"http://www.sitemaps.org/schemas/sitemap/0.9",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Sitemap missing %q", want)
		}
	}

	if strings.Contains(content, "hidden-poll") {
		t.Error("Sitemap includes an inactive poll")
	}
}
