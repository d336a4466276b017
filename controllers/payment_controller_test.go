package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/pollpeak/pulseearn/models"
)

func signPayment(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyPromotionPayment(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("RAZORPAY_SECRET", "test-secret")

	referrer := createTestUser(t, db, models.RoleAmbassador, 0)
	details := models.AmbassadorDetails{UserID: referrer.ID, CommissionRate: 10, IsActive: true}
	if err := db.Create(&details).Error; err != nil {
		t.Fatalf("Failed to create ambassador details: %v", err)
	}

	buyer := createTestUser(t, db, models.RoleUser, 0)
	referral := models.Referral{ReferrerUserID: referrer.ID, ReferredUserID: buyer.ID, ReferralCode: referrer.ReferralCode}
	if err := db.Create(&referral).Error; err != nil {
		t.Fatalf("Failed to create referral: %v", err)
	}

	poll := createTestPoll(t, db, "promote-me", 5)
	pollID := poll.ID
	payment := models.Payment{
		UserID:          buyer.ID,
		PollID:          &pollID,
		TransactionID:   "txn-1",
		RazorpayOrderID: "order_123",
		Amount:          100,
		Status:          models.PaymentStatusPending,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("Failed to create payment: %v", err)
	}

	body := VerifyPromotionPaymentRequest{
		TransactionID:     "txn-1",
		RazorpayOrderID:   "order_123",
		RazorpayPaymentID: "pay_456",
		RazorpaySignature: signPayment("test-secret", "order_123", "pay_456"),
	}
	w := performRequest(t, http.MethodPost, "/payments/promotion/verify", body, &buyer,
		"/payments/promotion/verify", VerifyPromotionPayment)
	assertStatus(t, w, http.StatusOK)

	var reloaded models.Payment
	if err := db.First(&reloaded, payment.ID).Error; err != nil {
		t.Fatalf("Failed to reload payment: %v", err)
	}
	if reloaded.Status != models.PaymentStatusCompleted {
		t.Errorf("Payment status = %s, want %s", reloaded.Status, models.PaymentStatusCompleted)
	}

	var promotedPoll models.Poll
	if err := db.First(&promotedPoll, poll.ID).Error; err != nil {
		t.Fatalf("Failed to reload poll: %v", err)
	}
	if !promotedPoll.IsPromoted || promotedPoll.PromotedAt == nil {
		t.Error("Poll not marked promoted after verified payment")
	}

	// 10% of $100 goes to the referrer
	var earning models.AmbassadorEarning
	if err := db.Where("user_id = ?", referrer.ID).First(&earning).Error; err != nil {
		t.Fatalf("Commission not credited: %v", err)
	}
	if earning.Amount != 10 {
		t.Errorf("Commission = %v, want 10", earning.Amount)
	}
	if earning.Source != "poll_promotion" || earning.Reference != "txn-1" {
		t.Errorf("Earning = %+v, want poll_promotion/txn-1", earning)
	}
}

func TestVerifyPromotionPaymentBadSignature(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("RAZORPAY_SECRET", "test-secret")

	buyer := createTestUser(t, db, models.RoleUser, 0)
	poll := createTestPoll(t, db, "promote-me", 5)
	pollID := poll.ID
	payment := models.Payment{
		UserID:          buyer.ID,
		PollID:          &pollID,
		TransactionID:   "txn-2",
		RazorpayOrderID: "order_789",
		Amount:          100,
		Status:          models.PaymentStatusPending,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("Failed to create payment: %v", err)
	}

	body := VerifyPromotionPaymentRequest{
		TransactionID:     "txn-2",
		RazorpayOrderID:   "order_789",
		RazorpayPaymentID: "pay_000",
		RazorpaySignature: "not-a-valid-signature",
	}
	w := performRequest(t, http.MethodPost, "/payments/promotion/verify", body, &buyer,
		"/payments/promotion/verify", VerifyPromotionPayment)
	assertStatus(t, w, http.StatusBadRequest)

	var reloaded models.Payment
	if err := db.First(&reloaded, payment.ID).Error; err != nil {
		t.Fatalf("Failed to reload payment: %v", err)
	}
	if reloaded.Status != models.PaymentStatusFailed {
		t.Errorf("Payment status = %s, want %s", reloaded.Status, models.PaymentStatusFailed)
	}

	var promotedPoll models.Poll
	if err := db.First(&promotedPoll, poll.ID).Error; err != nil {
		t.Fatalf("Failed to reload poll: %v", err)
	}
	if promotedPoll.IsPromoted {
		t.Error("Poll promoted despite failed verification")
	}
}

func TestVerifyPromotionPaymentNoReferrer(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("RAZORPAY_SECRET", "test-secret")

	buyer := createTestUser(t, db, models.RoleUser, 0)
	poll := createTestPoll(t, db, "promote-me", 5)
	pollID := poll.ID
	payment := models.Payment{
		UserID:          buyer.ID,
		PollID:          &pollID,
		TransactionID:   "txn-3",
		RazorpayOrderID: "order_abc",
		Amount:          50,
		Status:          models.PaymentStatusPending,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("Failed to create payment: %v", err)
	}

	body := VerifyPromotionPaymentRequest{
		TransactionID:     "txn-3",
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_abc",
		RazorpaySignature: signPayment("test-secret", "order_abc", "pay_abc"),
	}
	w := performRequest(t, http.MethodPost, "/payments/promotion/verify", body, &buyer,
		"/payments/promotion/verify", VerifyPromotionPayment)
	assertStatus(t, w, http.StatusOK)

	// No referral means no commission rows, and the payment still completes
	var count int64
	db.Model(&models.AmbassadorEarning{}).Count(&count)
	if count != 0 {
		t.Errorf("Earnings = %d, want 0", count)
	}
}
