package controllers

import (
	"time"

	"github.com/pollpeak/pulseearn/config"
	"github.com/pollpeak/pulseearn/models"
	"github.com/pollpeak/pulseearn/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AmbassadorStats is the derived dashboard read model
type AmbassadorStats struct {
	TotalReferrals      int     `json:"total_referrals"`
	TotalEarnings       float64 `json:"total_earnings"`
	MonthlyEarnings     float64 `json:"monthly_earnings"`
	PayableBalance      float64 `json:"payable_balance"`
	CommissionRate      float64 `json:"commission_rate"`
	TierName            string  `json:"tier_name"`
	NextTierName        string  `json:"next_tier_name,omitempty"`
	ReferralsToNextTier *int    `json:"referrals_to_next_tier,omitempty"`
	CountryRank         int     `json:"country_rank"`
	TotalPayouts        float64 `json:"total_payouts"`
	PendingPayouts      float64 `json:"pending_payouts"`
}

func countReferrals(db *gorm.DB, userID uint) (int, error) {
	var count int64
	err := db.Model(&models.Referral{}).Where("referrer_user_id = ?", userID).Count(&count).Error
	return int(count), err
}

func sumEarnings(db *gorm.DB, userID uint, since *time.Time) (float64, error) {
	var total float64
	query := db.Model(&models.AmbassadorEarning{}).Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func sumPayouts(db *gorm.DB, userID uint, statuses []string) (float64, error) {
	var total float64
	err := db.Model(&models.PayoutRequest{}).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

// computeAmbassadorStats derives the dashboard numbers from a fresh read
// of the underlying rows.
func computeAmbassadorStats(db *gorm.DB, user models.User, details models.AmbassadorDetails) (*AmbassadorStats, error) {
	referrals, err := countReferrals(db, user.ID)
	if err != nil {
		return nil, err
	}

	totalEarnings, err := sumEarnings(db, user.ID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthlyEarnings, err := sumEarnings(db, user.ID, &monthStart)
	if err != nil {
		return nil, err
	}

	paid, err := sumPayouts(db, user.ID, []string{models.PayoutStatusPaid})
	if err != nil {
		return nil, err
	}
	pending, err := sumPayouts(db, user.ID, []string{models.PayoutStatusPending, models.PayoutStatusApproved})
	if err != nil {
		return nil, err
	}

	tier := utils.TierForReferrals(referrals)
	stats := &AmbassadorStats{
		TotalReferrals:  referrals,
		TotalEarnings:   totalEarnings,
		MonthlyEarnings: monthlyEarnings,
		PayableBalance:  utils.PayableBalance(totalEarnings, paid, pending),
		CommissionRate:  details.CommissionRate,
		TierName:        tier.Name,
		TotalPayouts:    paid,
		PendingPayouts:  pending,
	}
	if next, remaining, ok := utils.NextTierInfo(referrals); ok {
		stats.NextTierName = next
		stats.ReferralsToNextTier = &remaining
	}

	// Country rank among active ambassadors by referral count
	if details.Country != "" {
		rank, err := countryReferralRank(db, user.ID, details.Country, referrals)
		if err == nil {
			stats.CountryRank = rank
		}
	}

	return stats, nil
}

func countryReferralRank(db *gorm.DB, userID uint, country string, referrals int) (int, error) {
	var peers []models.AmbassadorDetails
	if err := db.Where("country = ? AND is_active = ?", country, true).Find(&peers).Error; err != nil {
		return 0, err
	}

	rank := 1
	for _, peer := range peers {
		if peer.UserID == userID {
			continue
		}
		peerReferrals, err := countReferrals(db, peer.UserID)
		if err != nil {
			return 0, err
		}
		if peerReferrals > referrals {
			rank++
		}
	}
	return rank, nil
}

// getOrCreateAmbassadorDetails provisions the ambassador record on first
// access with the tier-derived commission rate.
func getOrCreateAmbassadorDetails(db *gorm.DB, user models.User) (*models.AmbassadorDetails, error) {
	var details models.AmbassadorDetails
	err := db.Where("user_id = ?", user.ID).First(&details).Error
	if err == nil {
		return &details, nil
	}

	referrals, err := countReferrals(db, user.ID)
	if err != nil {
		return nil, err
	}

	details = models.AmbassadorDetails{
		UserID:         user.ID,
		Country:        user.Country,
		CommissionRate: utils.TierForReferrals(referrals).CommissionRate,
		IsActive:       true,
	}
	if err := db.Create(&details).Error; err != nil {
		return nil, err
	}
	return &details, nil
}

// refreshAmbassadorTier re-derives the stored commission rate after a
// referral count change. No-op for users without an ambassador record.
func refreshAmbassadorTier(userID uint) {
	var details models.AmbassadorDetails
	if err := config.DB.Where("user_id = ?", userID).First(&details).Error; err != nil {
		return
	}

	referrals, err := countReferrals(config.DB, userID)
	if err != nil {
		utils.LogError("Failed to count referrals for user %d: %v", userID, err)
		return
	}

	rate := utils.TierForReferrals(referrals).CommissionRate
	if rate != details.CommissionRate {
		if err := config.DB.Model(&details).Update("commission_rate", rate).Error; err != nil {
			utils.LogError("Failed to refresh commission rate for user %d: %v", userID, err)
		} else {
			utils.LogInfo("User %d commission rate updated to %.0f%% (%d referrals)", userID, rate, referrals)
		}
	}
}

// GetAmbassadorDashboard returns the derived stats for the caller
func GetAmbassadorDashboard(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	details, err := getOrCreateAmbassadorDetails(config.DB, user)
	if err != nil {
		utils.LogError("Failed to load ambassador details for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load ambassador details", err.Error())
		return
	}

	stats, err := computeAmbassadorStats(config.DB, user, *details)
	if err != nil {
		utils.LogError("Failed to compute ambassador stats for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to compute stats", err.Error())
		return
	}

	utils.Success(c, "Ambassador dashboard fetched", gin.H{
		"details": details,
		"stats":   stats,
	})
}

// ListMyReferrals lists the users the ambassador referred
func ListMyReferrals(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Referral{}).Where("referrer_user_id = ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch referrals", err.Error())
		return
	}

	var referrals []models.Referral
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&referrals).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch referrals", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Referrals fetched", referrals, total, page, limit)
}

// ListMarketingMaterials returns active marketing materials
func ListMarketingMaterials(c *gin.Context) {
	var materials []models.MarketingMaterial
	if err := config.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&materials).Error; err != nil {
		utils.LogError("Failed to fetch marketing materials: %v", err)
		utils.InternalServerError(c, "Failed to fetch marketing materials", err.Error())
		return
	}

	utils.Success(c, "Marketing materials fetched", materials)
}
