package config

import (
	"fmt"

	"github.com/pollpeak/pulseearn/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := MigrateDB(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// MigrateDB runs the schema migration for all application models
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.BlacklistedToken{},
		&models.SiteSetting{},
		&models.Poll{},
		&models.PollOption{},
		&models.PollVote{},
		&models.TriviaGame{},
		&models.TriviaQuestion{},
		&models.TriviaGameResult{},
		&models.DailyReward{},
		&models.Referral{},
		&models.AmbassadorDetails{},
		&models.AmbassadorEarning{},
		&models.PayoutRequest{},
		&models.MarketingMaterial{},
		&models.Payment{},
	)
}
