package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GoogleUserInfo is the profile payload returned by Google
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// PendingSignup is stashed in the session across the OAuth round trip so
// referral attribution survives the redirect.
type PendingSignup struct {
	State        string `json:"state"`
	ReferralCode string `json:"referral_code"`
	Country      string `json:"country"`
}

// GoogleLogin starts the OAuth flow. An optional referral_code query
// parameter is carried through the session.
func GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	session := sessions.Default(c)
	session.Set("pending_signup", PendingSignup{
		State:        state,
		ReferralCode: c.Query("referral_code"),
		Country:      c.Query("country"),
	})
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save OAuth session: %v", err)
		utils.InternalServerError(c, "Failed to start sign-in", err.Error())
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}

// GoogleCallback completes the OAuth flow, provisioning a profile on first
// sign-in.
func GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	session := sessions.Default(c)
	pending, _ := session.Get("pending_signup").(PendingSignup)
	session.Delete("pending_signup")
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear OAuth session: %v", err)
	}
	if pending.State == "" || pending.State != c.Query("state") {
		utils.Unauthorized(c, "Invalid OAuth state")
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response", err.Error())
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", googleUser.Email).First(&user).Error; err != nil {
		user = models.User{
			Username:       googleUser.Email,
			Email:          googleUser.Email,
			Name:           googleUser.Name,
			Country:        pending.Country,
			Role:           models.RoleUser,
			ReferralCode:   utils.GenerateReferralCode(),
			ReferredByCode: pending.ReferralCode,
			AvatarURL:      googleUser.Picture,
			GoogleID:       googleUser.ID,
		}

		// Google users never use this password; it only satisfies the schema
		hashed, err := utils.HashPassword(uuid.New().String())
		if err != nil {
			utils.InternalServerError(c, "Failed to provision account", err.Error())
			return
		}
		user.Password = hashed

		if err := config.DB.Create(&user).Error; err != nil {
			utils.InternalServerError(c, "Failed to create user", err.Error())
			return
		}

		if pending.ReferralCode != "" {
			var referrer models.User
			if err := config.DB.Where("referral_code = ?", pending.ReferralCode).First(&referrer).Error; err == nil {
				referral := models.Referral{
					ReferrerUserID: referrer.ID,
					ReferredUserID: user.ID,
					ReferralCode:   pending.ReferralCode,
				}
				if err := config.DB.Create(&referral).Error; err != nil {
					utils.LogError("Failed to record referral for user %d: %v", user.ID, err)
				} else {
					refreshAmbassadorTier(referrer.ID)
				}
			}
		}
	}

	tokenString, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	redirectURL, err := frontendRedirectURL(os.Getenv("FRONTEND_URL"), tokenString, user)
	if err != nil {
		utils.InternalServerError(c, "Failed to build redirect", err.Error())
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

// frontendRedirectURL builds the post-login redirect. The user payload is
// JSON-encoded so names containing quotes or other special characters stay
// parseable on the frontend.
func frontendRedirectURL(base, token string, user models.User) (string, error) {
	payload, err := json.Marshal(gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s?token=%s&user=%s", base,
		url.QueryEscape(token), url.QueryEscape(string(payload))), nil
}
