package main

import (
	"encoding/gob"
	"log"
	"time"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/controllers"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/routes"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/go-co-op/gocron/v2"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Register types for session serialization
	gob.Register(controllers.PendingSignup{})

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create bootstrap admin
	if err := controllers.EnsureAdminUser(); err != nil {
		utils.LogError("Failed to create admin user: %v", err)
		log.Fatal("Failed to create admin user:", err)
	}

	// Seed default site settings
	if err := controllers.EnsureDefaultSettings(); err != nil {
		utils.LogError("Failed to seed default settings: %v", err)
		log.Fatal("Failed to seed default settings:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Start background jobs
	scheduler, err := startScheduler(cfg)
	if err != nil {
		utils.LogError("Failed to start scheduler: %v", err)
		log.Fatal("Failed to start scheduler:", err)
	}
	defer func() { _ = scheduler.Shutdown() }()

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	// Start server
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}

// startScheduler runs the recurring maintenance jobs: sitemap regeneration
// and expired token cleanup
func startScheduler(cfg *config.Config) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			if err := utils.BuildSitemap(config.DB, cfg.SiteURL, "sitemap.xml"); err != nil {
				utils.LogError("Sitemap generation failed: %v", err)
				return
			}
			utils.LogInfo("Sitemap regenerated")
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 30, 0))),
		gocron.NewTask(func() {
			result := config.DB.Where("expires_at < ?", time.Now()).
				Delete(&models.BlacklistedToken{})
			if result.Error != nil {
				utils.LogError("Token cleanup failed: %v", result.Error)
				return
			}
			utils.LogInfo("Removed %d expired blacklisted tokens", result.RowsAffected)
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	return scheduler, nil
}
