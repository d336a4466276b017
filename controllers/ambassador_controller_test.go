package controllers

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/pollpeak/pulseearn/models"
)

func addReferrals(t *testing.T, db *gorm.DB, referrer models.User, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		referred := createTestUser(t, db, models.RoleUser, 0)
		referral := models.Referral{
			ReferrerUserID: referrer.ID,
			ReferredUserID: referred.ID,
			ReferralCode:   referrer.ReferralCode,
		}
		if err := db.Create(&referral).Error; err != nil {
			t.Fatalf("Failed to create referral: %v", err)
		}
	}
}

func TestTierBumpOnTwentyFifthReferral(t *testing.T) {
	db := setupTestDB(t)
	referrer := createTestUser(t, db, models.RoleAmbassador, 0)

	details := models.AmbassadorDetails{UserID: referrer.ID, CommissionRate: 10, IsActive: true}
	if err := db.Create(&details).Error; err != nil {
		t.Fatalf("Failed to create ambassador details: %v", err)
	}

	// 24 referrals: still Bronze at 10%
	addReferrals(t, db, referrer, 24)
	refreshAmbassadorTier(referrer.ID)

	var reloaded models.AmbassadorDetails
	if err := db.Where("user_id = ?", referrer.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload details: %v", err)
	}
	if reloaded.CommissionRate != 10 {
		t.Errorf("CommissionRate at 24 referrals = %v, want 10", reloaded.CommissionRate)
	}

	// The 25th referral arriving through signup flips the tier to Silver
	w := performRequest(t, http.MethodPost, "/register",
		registerBody("the25th", "the25th@example.com", referrer.ReferralCode), nil, "/register", RegisterUser)
	assertStatus(t, w, http.StatusCreated)

	if err := db.Where("user_id = ?", referrer.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("Failed to reload details: %v", err)
	}
	if reloaded.CommissionRate != 15 {
		t.Errorf("CommissionRate at 25 referrals = %v, want 15", reloaded.CommissionRate)
	}
}

func TestGetAmbassadorDashboard(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleAmbassador, 0)

	addReferrals(t, db, user, 3)
	addEarning(t, db, user.ID, 80)
	addEarning(t, db, user.ID, 20)

	paid := models.PayoutRequest{UserID: user.ID, Amount: 30, Method: "paypal", Status: models.PayoutStatusPaid}
	if err := db.Create(&paid).Error; err != nil {
		t.Fatalf("Failed to create payout: %v", err)
	}
	pending := models.PayoutRequest{UserID: user.ID, Amount: 25, Method: "paypal", Status: models.PayoutStatusPending}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("Failed to create payout: %v", err)
	}

	w := performRequest(t, http.MethodGet, "/dashboard", nil, &user, "/dashboard", GetAmbassadorDashboard)
	assertStatus(t, w, http.StatusOK)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	stats := data["stats"].(map[string]interface{})

	if stats["total_referrals"].(float64) != 3 {
		t.Errorf("total_referrals = %v, want 3", stats["total_referrals"])
	}
	if stats["total_earnings"].(float64) != 100 {
		t.Errorf("total_earnings = %v, want 100", stats["total_earnings"])
	}
	// 100 earned - 30 paid - 25 pending
	if stats["payable_balance"].(float64) != 45 {
		t.Errorf("payable_balance = %v, want 45", stats["payable_balance"])
	}
	if stats["tier_name"] != "Bronze" {
		t.Errorf("tier_name = %v, want Bronze", stats["tier_name"])
	}
	if stats["next_tier_name"] != "Silver" {
		t.Errorf("next_tier_name = %v, want Silver", stats["next_tier_name"])
	}
	if stats["referrals_to_next_tier"].(float64) != 22 {
		t.Errorf("referrals_to_next_tier = %v, want 22", stats["referrals_to_next_tier"])
	}

	// First dashboard access provisions the ambassador record
	var details models.AmbassadorDetails
	if err := db.Where("user_id = ?", user.ID).First(&details).Error; err != nil {
		t.Fatalf("Ambassador details not provisioned: %v", err)
	}
	if !details.IsActive {
		t.Error("Provisioned details not active")
	}
}

func TestGetOrCreateAmbassadorDetailsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleAmbassador, 0)

	first, err := getOrCreateAmbassadorDetails(db, user)
	if err != nil {
		t.Fatalf("First call failed: %v", err)
	}
	second, err := getOrCreateAmbassadorDetails(db, user)
	if err != nil {
		t.Fatalf("Second call failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("Details recreated: id %d then %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.AmbassadorDetails{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("Details rows = %d, want 1", count)
	}
}
