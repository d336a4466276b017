package utils

// Ambassador tiers are fixed referral-count brackets. The commission rate
// for each tier is the authoritative server-side value.
type Tier struct {
	Name           string
	MinReferrals   int
	CommissionRate float64 // percent
}

var ambassadorTiers = []Tier{
	{Name: "Bronze", MinReferrals: 0, CommissionRate: 10},
	{Name: "Silver", MinReferrals: 25, CommissionRate: 15},
	{Name: "Gold", MinReferrals: 100, CommissionRate: 20},
	{Name: "Platinum", MinReferrals: 250, CommissionRate: 25},
}

// TierForReferrals returns the tier bracket containing totalReferrals.
func TierForReferrals(totalReferrals int) Tier {
	current := ambassadorTiers[0]
	for _, t := range ambassadorTiers {
		if totalReferrals >= t.MinReferrals {
			current = t
		}
	}
	return current
}

// NextTierInfo returns the next tier name and how many referrals remain to
// reach it. ok is false for the top tier, which has no next tier.
func NextTierInfo(totalReferrals int) (name string, remaining int, ok bool) {
	for _, t := range ambassadorTiers {
		if totalReferrals < t.MinReferrals {
			return t.Name, t.MinReferrals - totalReferrals, true
		}
	}
	return "", 0, false
}

// PayableBalance computes earned-but-not-yet-paid-out commission.
// pending covers payout requests that are submitted or approved but not
// paid. The result is clamped at zero.
func PayableBalance(totalEarnings, totalPayouts, pendingPayouts float64) float64 {
	balance := totalEarnings - totalPayouts - pendingPayouts
	if balance < 0 {
		return 0
	}
	return balance
}
