package controllers

import (
	"os"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"
)

// EnsureAdminUser creates the bootstrap admin account from environment
// configuration if it does not exist yet
func EnsureAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		Email:        email,
		Password:     hashed,
		Name:         "Administrator",
		Role:         models.RoleAdmin,
		ReferralCode: utils.GenerateReferralCode(),
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Bootstrap admin created: %s", email)
	return nil
}

var defaultSettings = map[string]string{
	"site_name":          "PulseEarn",
	"site_tagline":       "Vote. Play. Earn.",
	"theme_default":      "system",
	"feature_polls":      "true",
	"feature_trivia":     "true",
	"feature_rewards":    "true",
	"feature_ambassador": "true",
	"ad_slot_header":     "",
	"ad_slot_sidebar":    "",
	"ad_slot_rewards":    "",
}

// EnsureDefaultSettings seeds missing remote configuration keys
func EnsureDefaultSettings() error {
	for key, value := range defaultSettings {
		var existing models.SiteSetting
		if err := config.DB.Where("key = ?", key).First(&existing).Error; err == nil {
			continue
		}
		setting := models.SiteSetting{Key: key, Value: value, Public: true}
		if err := config.DB.Create(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}
