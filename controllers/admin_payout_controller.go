package controllers

import (
	"strconv"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListAllPayouts lists payout requests across all ambassadors
func ListAllPayouts(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.PayoutRequest{})
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

// PayoutDecisionRequest carries the admin decision note
type PayoutDecisionRequest struct {
	Note string `json:"note"`
}

var payoutTransitions = map[string]map[string]bool{
	models.PayoutStatusPending:  {models.PayoutStatusApproved: true, models.PayoutStatusRejected: true},
	models.PayoutStatusApproved: {models.PayoutStatusPaid: true, models.PayoutStatusRejected: true},
}

func decidePayout(c *gin.Context, newStatus string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payout ID", err.Error())
		return
	}

	var req PayoutDecisionRequest
	_ = c.ShouldBindJSON(&req)

	var payout models.PayoutRequest
	if err := config.DB.First(&payout, id).Error; err != nil {
		utils.NotFound(c, "Payout request not found")
		return
	}

	if !payoutTransitions[payout.Status][newStatus] {
		utils.Conflict(c, "Invalid status transition",
			gin.H{"from": payout.Status, "to": newStatus})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": newStatus, "note": req.Note}
		if err := tx.Model(&payout).Updates(updates).Error; err != nil {
			return err
		}
		if newStatus == models.PayoutStatusPaid {
			return tx.Model(&models.AmbassadorDetails{}).
				Where("user_id = ?", payout.UserID).
				Update("total_payouts", gorm.Expr("total_payouts + ?", payout.Amount)).Error
		}
		return nil
	})
	if err != nil {
		utils.LogError("Failed to update payout %d: %v", payout.ID, err)
		utils.InternalServerError(c, "Failed to update payout", err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, payout.UserID).Error; err == nil {
		if err := utils.SendPayoutDecisionEmail(user.Email, payout.Amount, newStatus, req.Note); err != nil {
			utils.LogError("Failed to send payout email to user %d: %v", user.ID, err)
		}
	}

	utils.LogInfo("Payout %d marked %s", payout.ID, newStatus)
	utils.Success(c, "Payout updated", gin.H{"id": payout.ID, "status": newStatus})
}

// ApprovePayout moves a pending request to approved
func ApprovePayout(c *gin.Context) {
	decidePayout(c, models.PayoutStatusApproved)
}

// RejectPayout rejects a pending or approved request
func RejectPayout(c *gin.Context) {
	decidePayout(c, models.PayoutStatusRejected)
}

// MarkPayoutPaid finalizes an approved request and rolls the amount into
// the ambassador's total payouts
func MarkPayoutPaid(c *gin.Context) {
	decidePayout(c, models.PayoutStatusPaid)
}
