package routes

import (
	"github.com/pollpeak/pulseearn/controllers"
	"github.com/pollpeak/pulseearn/middleware"
	"github.com/pollpeak/pulseearn/models"

	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	router.GET("/settings", controllers.GetSettings)
	router.GET("/leaderboard", controllers.GetLeaderboard)

	// Poll routes
	router.GET("/polls", controllers.ListPolls)
	router.GET("/polls/:slug", controllers.GetPoll)

	// Trivia routes
	router.GET("/trivia", controllers.ListTriviaGames)
	router.GET("/trivia/:slug", controllers.GetTriviaGame)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", controllers.LogoutUser)
		protected.GET("/me", controllers.GetCurrentUser)
		protected.PUT("/profile", controllers.UpdateProfile)
		protected.POST("/profile/avatar", controllers.UploadAvatar)
		protected.GET("/rank", controllers.GetMyRank)

		// Voting and game submissions
		protected.POST("/polls/:slug/vote", controllers.VotePoll)
		protected.POST("/trivia/:slug/submit", controllers.SubmitTriviaGame)

		// Daily rewards
		protected.GET("/rewards/status", controllers.GetDailyRewardStatus)
		protected.POST("/rewards/spin", controllers.PerformSpin)
		protected.GET("/rewards/trivia", controllers.GetDailyTriviaQuestion)
		protected.POST("/rewards/trivia", controllers.SubmitDailyTriviaAnswer)
		protected.POST("/rewards/ad-watch", controllers.RecordAdWatch)
		protected.GET("/rewards/history", controllers.GetRewardHistory)

		// Poll promotion payments
		protected.POST("/payments/promotion", controllers.InitiatePromotionPayment)
		protected.POST("/payments/promotion/verify", controllers.VerifyPromotionPayment)
	}

	// Ambassador routes (require the ambassador role or above)
	ambassador := router.Group("/ambassador")
	ambassador.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAmbassador))
	{
		ambassador.GET("/dashboard", controllers.GetAmbassadorDashboard)
		ambassador.GET("/referrals", controllers.ListMyReferrals)
		ambassador.GET("/materials", controllers.ListMarketingMaterials)

		// Payouts
		ambassador.POST("/payouts", controllers.RequestPayout)
		ambassador.GET("/payouts", controllers.ListMyPayouts)
		ambassador.GET("/payouts/statement", controllers.DownloadPayoutStatement)
	}
}
