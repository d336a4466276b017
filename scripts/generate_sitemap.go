package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pollpeak/pulseearn/utils"
)

// Regenerates sitemap.xml from the current polls and trivia games.
// Run from the repo root: go run scripts/generate_sitemap.go
func main() {
	_ = godotenv.Load()

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")
	if host == "" || user == "" || dbname == "" {
		fmt.Fprintln(os.Stderr, "DB_HOST, DB_USER and DB_NAME must be set")
		os.Exit(1)
	}
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "https://pollpeak.com"
	}

	outPath := "sitemap.xml"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := utils.BuildSitemap(db, siteURL, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build sitemap: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sitemap written to %s\n", outPath)
}
