package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"
)

// InitiatePromotionPaymentRequest starts a poll promotion purchase
type InitiatePromotionPaymentRequest struct {
	PollID uint    `json:"poll_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// InitiatePromotionPayment creates a payment order with the gateway for
// promoting a poll
func InitiatePromotionPayment(c *gin.Context) {
	utils.LogInfo("InitiatePromotionPayment called")
	user := c.MustGet("user").(models.User)

	var req InitiatePromotionPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. poll_id and amount are required", err.Error())
		return
	}

	if req.Amount <= 0 {
		utils.ValidationError(c, "Invalid amount", "Amount must be positive")
		return
	}

	var poll models.Poll
	if err := config.DB.Where("id = ? AND is_active = ?", req.PollID, true).First(&poll).Error; err != nil {
		utils.NotFound(c, "Poll not found")
		return
	}
	if poll.IsPromoted {
		utils.BadRequest(c, "Poll is already promoted", nil)
		return
	}

	transactionID := uuid.New().String()
	amountPaise := int(req.Amount * 100)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         "promo_" + transactionID,
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create payment order for poll %d: %v", poll.ID, err)
		utils.InternalServerError(c, "Failed to create payment order", err.Error())
		return
	}

	pollID := poll.ID
	payment := models.Payment{
		UserID:          user.ID,
		PollID:          &pollID,
		TransactionID:   transactionID,
		RazorpayOrderID: fmt.Sprintf("%v", rzOrder["id"]),
		Amount:          req.Amount,
		Status:          models.PaymentStatusPending,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		utils.LogError("Failed to record payment for poll %d: %v", poll.ID, err)
		utils.InternalServerError(c, "Failed to record payment", err.Error())
		return
	}

	utils.Success(c, "Payment initiated successfully", gin.H{
		"payment_intent_id": payment.RazorpayOrderID,
		"client_secret":     payment.TransactionID,
		"amount":            fmt.Sprintf("%.2f", req.Amount),
		"key":               os.Getenv("RAZORPAY_KEY"),
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

// VerifyPromotionPaymentRequest carries the gateway callback values
type VerifyPromotionPaymentRequest struct {
	TransactionID     string `json:"transaction_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPromotionPayment validates the gateway signature, marks the poll
// promoted and credits referral commission to the buyer's referrer.
func VerifyPromotionPayment(c *gin.Context) {
	utils.LogInfo("VerifyPromotionPayment called")
	user := c.MustGet("user").(models.User)

	var req VerifyPromotionPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var payment models.Payment
	if err := config.DB.Where("transaction_id = ? AND user_id = ?", req.TransactionID, user.ID).First(&payment).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}
	if payment.Status == models.PaymentStatusCompleted {
		utils.BadRequest(c, "Payment already verified", nil)
		return
	}

	keySecret := os.Getenv("RAZORPAY_SECRET")
	data := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(data))
	generatedSignature := hex.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(generatedSignature), []byte(req.RazorpaySignature)) {
		utils.LogError("Signature mismatch for payment %s", req.TransactionID)
		if err := config.DB.Model(&payment).Update("status", models.PaymentStatusFailed).Error; err != nil {
			utils.LogError("Failed to mark payment failed: %v", err)
		}
		utils.BadRequest(c, "Payment verification failed", "Signature mismatch")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Update("status", models.PaymentStatusCompleted).Error; err != nil {
			return err
		}
		if payment.PollID != nil {
			now := time.Now()
			if err := tx.Model(&models.Poll{}).Where("id = ?", *payment.PollID).
				Updates(map[string]interface{}{"is_promoted": true, "promoted_at": &now}).Error; err != nil {
				return err
			}
		}
		return creditReferralCommission(tx, user, payment)
	})
	if err != nil {
		utils.LogError("Failed to finalize payment %s: %v", req.TransactionID, err)
		utils.InternalServerError(c, "Failed to finalize payment", err.Error())
		return
	}

	utils.LogInfo("Payment %s verified for user %d", req.TransactionID, user.ID)
	utils.Success(c, "Payment verified", gin.H{"transaction_id": payment.TransactionID})
}

// creditReferralCommission credits the buyer's referrer at their stored
// commission rate. Missing referrer or ambassador record is not an error.
func creditReferralCommission(tx *gorm.DB, buyer models.User, payment models.Payment) error {
	var referral models.Referral
	if err := tx.Where("referred_user_id = ?", buyer.ID).First(&referral).Error; err != nil {
		return nil
	}

	var details models.AmbassadorDetails
	if err := tx.Where("user_id = ? AND is_active = ?", referral.ReferrerUserID, true).First(&details).Error; err != nil {
		return nil
	}

	commission := payment.Amount * details.CommissionRate / 100
	if commission <= 0 {
		return nil
	}

	earning := models.AmbassadorEarning{
		UserID:    referral.ReferrerUserID,
		Amount:    commission,
		Source:    "poll_promotion",
		Reference: payment.TransactionID,
	}
	return tx.Create(&earning).Error
}
