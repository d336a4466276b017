package controllers

import (
	"fmt"
	"time"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// DownloadEarningsReportExcel exports ambassador commission earnings for a
// period as an Excel workbook
func DownloadEarningsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadEarningsReportExcel called")

	period := c.DefaultQuery("period", "day")

	now := time.Now().UTC()
	var startDate time.Time
	switch period {
	case "day":
		startDate = utils.StartOfDayUTC(now)
	case "week":
		startDate = utils.StartOfDayUTC(now).AddDate(0, 0, -6)
	case "month":
		startDate = utils.StartOfDayUTC(now).AddDate(0, 0, -30)
	default:
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var earnings []models.AmbassadorEarning
	if err := config.DB.Where("created_at >= ?", startDate).
		Order("created_at DESC").Find(&earnings).Error; err != nil {
		utils.LogError("Failed to fetch earnings: %v", err)
		utils.InternalServerError(c, "Failed to fetch earnings", err.Error())
		return
	}

	var totalAmount float64
	ambassadorSet := make(map[uint]bool)
	for _, e := range earnings {
		totalAmount += e.Amount
		ambassadorSet[e.UserID] = true
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Earnings")
	if err != nil {
		utils.InternalServerError(c, "Failed to build report", err.Error())
		return
	}

	summary := sheet.AddRow()
	summary.AddCell().Value = "Period"
	summary.AddCell().Value = period
	summary.AddCell().Value = "Total commission"
	summary.AddCell().Value = fmt.Sprintf("%.2f", totalAmount)
	summary.AddCell().Value = "Ambassadors"
	summary.AddCell().Value = fmt.Sprintf("%d", len(ambassadorSet))
	sheet.AddRow()

	header := sheet.AddRow()
	for _, title := range []string{"Date", "Ambassador ID", "Amount", "Source", "Reference"} {
		header.AddCell().Value = title
	}

	for _, e := range earnings {
		row := sheet.AddRow()
		row.AddCell().Value = e.CreatedAt.Format("2006-01-02 15:04")
		row.AddCell().Value = fmt.Sprintf("%d", e.UserID)
		row.AddCell().Value = fmt.Sprintf("%.2f", e.Amount)
		row.AddCell().Value = e.Source
		row.AddCell().Value = e.Reference
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=earnings-%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write earnings report: %v", err)
	}
}

// ListReferralOverview gives admins a per-ambassador referral summary
func ListReferralOverview(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	var ambassadors []models.AmbassadorDetails
	var total int64
	query := config.DB.Model(&models.AmbassadorDetails{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch ambassadors", err.Error())
		return
	}
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&ambassadors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch ambassadors", err.Error())
		return
	}

	overview := make([]gin.H, 0, len(ambassadors))
	for _, a := range ambassadors {
		referrals, err := countReferrals(config.DB, a.UserID)
		if err != nil {
			utils.LogError("Failed to count referrals for user %d: %v", a.UserID, err)
			continue
		}
		tier := utils.TierForReferrals(referrals)
		overview = append(overview, gin.H{
			"user_id":         a.UserID,
			"country":         a.Country,
			"total_referrals": referrals,
			"tier":            tier.Name,
			"commission_rate": a.CommissionRate,
			"total_payouts":   a.TotalPayouts,
		})
	}

	utils.SuccessWithPagination(c, "Referral overview fetched", overview, total, page, limit)
}
