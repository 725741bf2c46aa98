package scoring

import "math"

// industryRiskMultipliers maps an industry to its risk multiplier.
// Lower is better: the multiplier divides (MCA) or dampens the industry
// bonus (term loan, equipment financing). Unknown industries fall back to
// defaultIndustryRisk rather than erroring.
var industryRiskMultipliers = map[string]float64{
	"Technology":            1.0,
	"Healthcare":            1.1,
	"Professional Services": 1.2,
	"Manufacturing":         1.3,
	"Real Estate":           1.3,
	"E-commerce":            1.4,
	"Retail":                1.5,
	"Transportation":        1.5,
	"Construction":          1.6,
	"Hospitality":           1.7,
	"Restaurant":            1.8,
	"Food Service":          1.8,
}

const defaultIndustryRisk = 1.5

// riskMultiplier looks up the industry risk multiplier.
func riskMultiplier(industry string) float64 {
	if m, ok := industryRiskMultipliers[industry]; ok {
		return m
	}
	return defaultIndustryRisk
}

// industryBonus is the dampened industry contribution used by the term loan
// and equipment financing rubrics: 10 points divided by the risk multiplier.
func industryBonus(industry string) int {
	return int(math.Round(10 / riskMultiplier(industry)))
}

// gradeNotQualified is returned for products whose eligibility gate failed.
const gradeNotQualified = "NQ"

// productGrade maps a product score to its letter grade. The ladder is
// evaluated top-down with inclusive lower bounds.
func productGrade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

// overallGrade maps the best product score to the coarse overall-lead grade.
// This table is intentionally different from productGrade and must not be
// merged with it: product grades label individual rubrics, the overall grade
// labels the lead for routing and marketplace display.
func overallGrade(bestScore int) string {
	switch {
	case bestScore >= 90:
		return "A+"
	case bestScore >= 80:
		return "A"
	case bestScore >= 70:
		return "B+"
	case bestScore >= 60:
		return "B"
	case bestScore >= 50:
		return "C+"
	case bestScore >= 40:
		return "C"
	default:
		return "D"
	}
}

// Scoring tiers, best to worst.
const (
	TierPlatinum = "PLATINUM"
	TierGold     = "GOLD"
	TierSilver   = "SILVER"
	TierBronze   = "BRONZE"
	TierStandard = "STANDARD"
	TierBasic    = "BASIC"
)

// overallTier maps the best product score to the marketplace tier.
// Note there is no 50 cut point: BRONZE spans 60-69 and STANDARD 40-59.
func overallTier(bestScore int) string {
	switch {
	case bestScore >= 90:
		return TierPlatinum
	case bestScore >= 80:
		return TierGold
	case bestScore >= 70:
		return TierSilver
	case bestScore >= 60:
		return TierBronze
	case bestScore >= 40:
		return TierStandard
	default:
		return TierBasic
	}
}

// baseEstimatedValue is the commission-unit value step function over the best
// product score. This is a routing priority proxy, not a loan amount.
func baseEstimatedValue(bestScore int) int {
	switch {
	case bestScore >= 90:
		return 150
	case bestScore >= 80:
		return 100
	case bestScore >= 70:
		return 75
	case bestScore >= 60:
		return 50
	case bestScore >= 40:
		return 25
	default:
		return 10
	}
}

// urgencySurcharge multiplier applied to estimated value for leads that need
// funding now.
const urgencySurcharge = 1.3

// isUrgent reports whether the urgency label triggers the value surcharge.
func isUrgent(urgency string) bool {
	return urgency == "Immediate" || urgency == "Emergency"
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
