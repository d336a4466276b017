package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/pollpeak/pulseearn/models"
)

func createPendingPayout(t *testing.T, db *gorm.DB, userID uint, amount float64) models.PayoutRequest {
	t.Helper()

	payout := models.PayoutRequest{
		UserID: userID,
		Amount: amount,
		Method: "paypal",
		Status: models.PayoutStatusPending,
	}
	if err := db.Create(&payout).Error; err != nil {
		t.Fatalf("Failed to create payout: %v", err)
	}
	return payout
}

func TestPayoutLifecycle(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin, 0)
	ambassador := createTestUser(t, db, models.RoleAmbassador, 0)

	details := models.AmbassadorDetails{UserID: ambassador.ID, CommissionRate: 10, IsActive: true}
	if err := db.Create(&details).Error; err != nil {
		t.Fatalf("Failed to create ambassador details: %v", err)
	}

	payout := createPendingPayout(t, db, ambassador.ID, 75)
	path := fmt.Sprintf("/payouts/%d/approve", payout.ID)

	w := performRequest(t, http.MethodPatch, path, PayoutDecisionRequest{Note: "looks good"}, &admin,
		"/payouts/:id/approve", ApprovePayout)
	assertStatus(t, w, http.StatusOK)

	var reloaded models.PayoutRequest
	if err := db.First(&reloaded, payout.ID).Error; err != nil {
		t.Fatalf("Failed to reload payout: %v", err)
	}
	if reloaded.Status != models.PayoutStatusApproved {
		t.Errorf("Status = %s, want %s", reloaded.Status, models.PayoutStatusApproved)
	}
	if reloaded.Note != "looks good" {
		t.Errorf("Note = %q, want %q", reloaded.Note, "looks good")
	}

	// Approving again is an invalid transition
	w = performRequest(t, http.MethodPatch, path, nil, &admin, "/payouts/:id/approve", ApprovePayout)
	assertStatus(t, w, http.StatusConflict)

	// Marking paid rolls the amount into the ambassador's totals
	paidPath := fmt.Sprintf("/payouts/%d/paid", payout.ID)
	w = performRequest(t, http.MethodPatch, paidPath, nil, &admin, "/payouts/:id/paid", MarkPayoutPaid)
	assertStatus(t, w, http.StatusOK)

	var reloadedDetails models.AmbassadorDetails
	if err := db.Where("user_id = ?", ambassador.ID).First(&reloadedDetails).Error; err != nil {
		t.Fatalf("Failed to reload details: %v", err)
	}
	if reloadedDetails.TotalPayouts != 75 {
		t.Errorf("TotalPayouts = %v, want 75", reloadedDetails.TotalPayouts)
	}

	// A paid request is terminal
	rejectPath := fmt.Sprintf("/payouts/%d/reject", payout.ID)
	w = performRequest(t, http.MethodPatch, rejectPath, nil, &admin, "/payouts/:id/reject", RejectPayout)
	assertStatus(t, w, http.StatusConflict)
}

func TestRejectPendingPayout(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin, 0)
	ambassador := createTestUser(t, db, models.RoleAmbassador, 0)

	payout := createPendingPayout(t, db, ambassador.ID, 60)
	path := fmt.Sprintf("/payouts/%d/reject", payout.ID)

	w := performRequest(t, http.MethodPatch, path, PayoutDecisionRequest{Note: "details mismatch"}, &admin,
		"/payouts/:id/reject", RejectPayout)
	assertStatus(t, w, http.StatusOK)

	var reloaded models.PayoutRequest
	if err := db.First(&reloaded, payout.ID).Error; err != nil {
		t.Fatalf("Failed to reload payout: %v", err)
	}
	if reloaded.Status != models.PayoutStatusRejected {
		t.Errorf("Status = %s, want %s", reloaded.Status, models.PayoutStatusRejected)
	}
}

func TestMarkPendingPayoutPaidRejected(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin, 0)
	ambassador := createTestUser(t, db, models.RoleAmbassador, 0)

	// Pending requests must be approved before they can be paid
	payout := createPendingPayout(t, db, ambassador.ID, 60)
	path := fmt.Sprintf("/payouts/%d/paid", payout.ID)

	w := performRequest(t, http.MethodPatch, path, nil, &admin, "/payouts/:id/paid", MarkPayoutPaid)
	assertStatus(t, w, http.StatusConflict)
}
