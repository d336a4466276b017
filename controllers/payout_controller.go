package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// PayoutRequestBody is the ambassador's withdrawal request
type PayoutRequestBody struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
}

// checkPayoutRequest enforces the withdrawal rules and resolves the payout
// method. The minimum-amount rule runs before the balance check, so a
// request failing both reports the minimum first. Violations come back as
// typed application errors carrying their HTTP status.
func checkPayoutRequest(db *gorm.DB, user models.User, req PayoutRequestBody) (string, error) {
	if req.Amount < models.MinimumPayoutAmount {
		return "", utils.UnprocessableError("Amount below minimum",
			fmt.Errorf("the minimum payout amount is $%.0f", models.MinimumPayoutAmount))
	}

	details, err := getOrCreateAmbassadorDetails(db, user)
	if err != nil {
		return "", utils.WrapError(err, "failed to load ambassador details")
	}
	if !details.IsActive {
		return "", utils.ForbiddenError("Ambassador account is inactive", nil)
	}

	stats, err := computeAmbassadorStats(db, user, *details)
	if err != nil {
		return "", utils.WrapError(err, "failed to compute balance")
	}
	if req.Amount > stats.PayableBalance {
		return "", utils.UnprocessableError("Amount exceeds payable balance",
			fmt.Errorf("your payable balance is $%.2f", stats.PayableBalance))
	}

	method := req.Method
	if method == "" {
		method = user.PayoutMethod
	}
	if method == "" {
		return "", utils.UnprocessableError("No payout method",
			errors.New("set a payout method on your profile or provide one with the request"))
	}
	return method, nil
}

// RequestPayout validates and creates a payout request. The server-side
// balance read is the final authority even when a client pre-check passed.
func RequestPayout(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var req PayoutRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	method, err := checkPayoutRequest(config.DB, user, req)
	if err != nil {
		utils.RespondWithError(c, err, "Failed to process payout request")
		return
	}

	payout := models.PayoutRequest{
		UserID: user.ID,
		Amount: req.Amount,
		Method: method,
		Status: models.PayoutStatusPending,
	}
	if err := config.DB.Create(&payout).Error; err != nil {
		utils.LogError("Failed to create payout request for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create payout request", err.Error())
		return
	}

	utils.LogInfo("User %d requested payout of $%.2f via %s", user.ID, req.Amount, method)
	utils.Created(c, "Payout requested", payout)
}

// ListMyPayouts lists the caller's payout requests, newest first
func ListMyPayouts(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.PayoutRequest{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch payouts", err.Error())
		return
	}

	var payouts []models.PayoutRequest
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&payouts).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch payouts", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Payouts fetched", payouts, total, page, limit)
}

// DownloadPayoutStatement generates a PDF statement of earnings and payouts
func DownloadPayoutStatement(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	details, err := getOrCreateAmbassadorDetails(config.DB, user)
	if err != nil {
		utils.InternalServerError(c, "Failed to load ambassador details", err.Error())
		return
	}

	stats, err := computeAmbassadorStats(config.DB, user, *details)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute stats", err.Error())
		return
	}

	var payouts []models.PayoutRequest
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(50).Find(&payouts).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch payouts", err.Error())
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "PulseEarn")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Ambassador Payout Statement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(100, 8, fmt.Sprintf("Ambassador: %s (%s)", user.Username, user.Email))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(100, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04 UTC")))
	pdf.Ln(8)
	pdf.Cell(100, 8, fmt.Sprintf("Tier: %s    Commission rate: %.0f%%", stats.TierName, stats.CommissionRate))
	pdf.Ln(8)
	pdf.Cell(100, 8, fmt.Sprintf("Total earnings: $%.2f    Paid out: $%.2f    Payable: $%.2f",
		stats.TotalEarnings, stats.TotalPayouts, stats.PayableBalance))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(35, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 0, "", false, 0, "")
	pdf.CellFormat(45, 8, "Method", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 8, "Status", "1", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, p := range payouts {
		pdf.CellFormat(35, 8, p.CreatedAt.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("$%.2f", p.Amount), "1", 0, "", false, 0, "")
		pdf.CellFormat(45, 8, p.Method, "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 8, p.Status, "1", 1, "", false, 0, "")
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=payout-statement.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write payout statement for user %d: %v", user.ID, err)
		c.Status(http.StatusInternalServerError)
	}
}
