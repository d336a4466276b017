package controllers

import (
	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest covers the self-service editable fields
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Country      *string `json:"country"`
	PayoutMethod *string `json:"payout_method"`
}

// UpdateProfile applies a partial profile edit. Points, badges and role are
// never writable here.
func UpdateProfile(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if valid, msg := utils.ValidateName(*req.Name); !valid {
			utils.BadRequest(c, "Invalid name", msg)
			return
		}
		updates["name"] = *req.Name
	}
	if req.Country != nil {
		if valid, msg := utils.ValidateCountry(*req.Country); !valid {
			utils.BadRequest(c, "Invalid country", msg)
			return
		}
		updates["country"] = *req.Country
	}
	if req.PayoutMethod != nil {
		updates["payout_method"] = *req.PayoutMethod
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update profile for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", err.Error())
		return
	}

	utils.LogInfo("Profile updated for user %d", user.ID)
	utils.Success(c, "Profile updated", gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"country":       user.Country,
		"payout_method": user.PayoutMethod,
	})
}

// UploadAvatar stores a new avatar image for the user
func UploadAvatar(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	file, err := c.FormFile("avatar")
	if err != nil {
		utils.BadRequest(c, "No file uploaded", err.Error())
		return
	}

	if err := utils.ValidateImageFile(file); err != nil {
		utils.BadRequest(c, "Invalid image", err.Error())
		return
	}

	path, err := utils.SaveUploadedFile(file, "uploads/avatars")
	if err != nil {
		utils.LogError("Failed to save avatar for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save avatar", err.Error())
		return
	}

	if err := config.DB.Model(&user).Update("avatar_url", path).Error; err != nil {
		utils.InternalServerError(c, "Failed to update avatar", err.Error())
		return
	}

	utils.Success(c, "Avatar updated", gin.H{"avatar_url": path})
}

// GetSettings returns public remote configuration (branding, feature
// flags, ad slot identifiers)
func GetSettings(c *gin.Context) {
	var settings []models.SiteSetting
	if err := config.DB.Where("public = ?", true).Find(&settings).Error; err != nil {
		utils.LogError("Failed to fetch settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch settings", err.Error())
		return
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}

	utils.Success(c, "Settings fetched", values)
}
