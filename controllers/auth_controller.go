package controllers

import (
	"time"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name"`
	Country         string `json:"country"`
	ReferralCode    string `json:"referral_code"`
}

// RegisterUser handles user registration with optional referral attribution
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "Please check your input data and ensure all required fields are provided correctly.")
		return
	}

	req.Email = utils.SanitizeString(req.Email)
	req.Username = utils.SanitizeString(req.Username)
	utils.LogInfo("Registration attempt for email: %s, username: %s", req.Email, req.Username)

	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.BadRequest(c, "Invalid username", msg)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, "Invalid email", msg)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.BadRequest(c, "Invalid password", msg)
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.BadRequest(c, "Passwords do not match", "Password and confirm password must be the same.")
		return
	}
	if req.Name != "" {
		if valid, msg := utils.ValidateName(req.Name); !valid {
			utils.BadRequest(c, "Invalid name", msg)
			return
		}
	}
	if valid, msg := utils.ValidateCountry(req.Country); !valid {
		utils.BadRequest(c, "Invalid country", msg)
		return
	}

	var existingUser models.User
	if err := config.DB.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		utils.LogError("Registration attempt failed - Username already exists: %s", req.Username)
		utils.Conflict(c, "Username already exists", "The username you've chosen is already taken. Please choose a different username.")
		return
	}
	if err := config.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.LogError("Registration attempt failed - Email already exists: %s", req.Email)
		utils.Conflict(c, "Email already exists", "An account with this email address already exists. Please use a different email or try logging in.")
		return
	}

	// Resolve the referrer before creating anything so a bad code fails soft
	var referrer *models.User
	if req.ReferralCode != "" {
		var ref models.User
		if err := config.DB.Where("referral_code = ?", req.ReferralCode).First(&ref).Error; err != nil {
			utils.LogError("Registration with unknown referral code: %s", req.ReferralCode)
			utils.BadRequest(c, "Invalid referral code", "The referral code you entered does not exist.")
			return
		}
		referrer = &ref
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Registration attempt failed - Password hashing error for email: %s - %v", req.Email, err)
		utils.InternalServerError(c, "Failed to process password", "An error occurred while securing your password. Please try again later.")
		return
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       hashedPassword,
		Name:           req.Name,
		Country:        req.Country,
		Role:           models.RoleUser,
		ReferralCode:   utils.GenerateReferralCode(),
		ReferredByCode: req.ReferralCode,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if referrer != nil {
			referral := models.Referral{
				ReferrerUserID: referrer.ID,
				ReferredUserID: user.ID,
				ReferralCode:   req.ReferralCode,
			}
			if err := tx.Create(&referral).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("Registration failed for email: %s - %v", req.Email, err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}

	if referrer != nil {
		refreshAmbassadorTier(referrer.ID)
	}

	utils.LogInfo("User registered successfully: %s", req.Email)
	utils.Created(c, "Registration successful", gin.H{
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"referral_code": user.ReferralCode,
		},
	})
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser handles user login
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid email or password", err.Error())
		return
	}

	req.Email = utils.SanitizeString(req.Email)
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, "Invalid email", msg)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login attempt failed - User not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login attempt failed - Invalid password for user: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.IsBlocked {
		utils.LogError("Login attempt failed - Blocked account: %s", req.Email)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", req.Email)
	}

	tokenString, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate JWT token for user: %s", req.Email)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User logged in successfully: %s", req.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
			"points":   user.Points,
		},
	})
}

// LogoutUser blacklists the current token until it expires
func LogoutUser(c *gin.Context) {
	tokenVal, exists := c.Get("token")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}

	blacklisted := models.BlacklistedToken{
		Token:     tokenVal.(string),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := config.DB.Create(&blacklisted).Error; err != nil {
		utils.LogError("Failed to blacklist token: %v", err)
		utils.InternalServerError(c, "Failed to logout", err.Error())
		return
	}

	utils.Success(c, "Logged out successfully", nil)
}

// GetCurrentUser returns the authenticated user's profile
func GetCurrentUser(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "Please login for access")
		return
	}
	user := userVal.(models.User)

	var badges []models.Badge
	if err := config.DB.Where("user_id = ?", user.ID).Find(&badges).Error; err != nil {
		utils.LogError("Failed to load badges for user %d: %v", user.ID, err)
	}

	codes := make([]string, 0, len(badges))
	for _, b := range badges {
		codes = append(codes, b.Code)
	}

	utils.Success(c, "Profile fetched", gin.H{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"name":             user.Name,
		"country":          user.Country,
		"points":           user.Points,
		"role":             user.Role,
		"referral_code":    user.ReferralCode,
		"referred_by_code": user.ReferredByCode,
		"avatar_url":       user.AvatarURL,
		"payout_method":    user.PayoutMethod,
		"badges":           codes,
		"created_at":       user.CreatedAt,
	})
}
