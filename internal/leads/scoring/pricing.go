package scoring

import "math"

// Marketplace base prices in credits per tier.
var tierBasePrices = map[string]float64{
	TierPlatinum: 150,
	TierGold:     100,
	TierSilver:   75,
	TierBronze:   50,
	TierStandard: 25,
	TierBasic:    10,
}

const (
	documentsPriceMultiplier = 2.5
	urgentPriceMultiplier    = 1.5
	weekPriceMultiplier      = 1.2
	exclusivePriceMultiplier = 3.0
)

// MarketplacePrice computes the credit price of a lead listing from its
// scoring tier and the listing attributes. Deterministic: repricing the same
// lead always yields the same figure.
func MarketplacePrice(tier string, in LeadInput) int64 {
	price, ok := tierBasePrices[tier]
	if !ok {
		price = tierBasePrices[TierBasic]
	}

	// Verified financials make the lead far more actionable.
	if in.documentsUploaded() {
		price *= documentsPriceMultiplier
	}

	switch {
	case isUrgent(in.Urgency) || in.Urgency == "today":
		price *= urgentPriceMultiplier
	case in.Urgency == "week":
		price *= weekPriceMultiplier
	}

	if in.Exclusive {
		price *= exclusivePriceMultiplier
	}

	return int64(math.Round(price))
}
