package routes

import (
	"github.com/pollpeak/pulseearn/controllers"
	"github.com/pollpeak/pulseearn/middleware"
	"github.com/pollpeak/pulseearn/models"

	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		// Poll management
		admin.POST("/polls", controllers.CreatePoll)
		admin.POST("/polls/generate", controllers.GeneratePolls)
		admin.PATCH("/polls/:slug/deactivate", controllers.DeactivatePoll)

		// Trivia management
		admin.POST("/trivia", controllers.CreateTriviaGame)
		admin.POST("/trivia/daily-questions", controllers.CreateDailyQuestion)
		admin.PATCH("/trivia/:slug/deactivate", controllers.DeactivateTriviaGame)

		// Payout management
		admin.GET("/payouts", controllers.ListAllPayouts)
		admin.PATCH("/payouts/:id/approve", controllers.ApprovePayout)
		admin.PATCH("/payouts/:id/reject", controllers.RejectPayout)
		admin.PATCH("/payouts/:id/paid", controllers.MarkPayoutPaid)

		// Marketing materials
		admin.POST("/materials", controllers.UploadMarketingMaterial)
		admin.PATCH("/materials/:id/deactivate", controllers.DeactivateMarketingMaterial)

		// Reports
		admin.GET("/reports/earnings", controllers.DownloadEarningsReportExcel)
		admin.GET("/reports/referrals", controllers.ListReferralOverview)
	}
}
