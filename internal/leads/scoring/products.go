package scoring

import "math"

// Product identifies one of the six financial product rubrics.
type Product string

const (
	ProductMCA                Product = "mca"
	ProductTermLoan           Product = "termLoan"
	ProductSBALoan            Product = "sbaLoan"
	ProductLineOfCredit       Product = "lineOfCredit"
	ProductCreditCardStacking Product = "creditCardStacking"
	ProductEquipmentFinancing Product = "equipmentFinancing"
)

// productOrder is the fixed iteration order for aggregation and routing.
// Qualified-product lists and tie-breaks depend on this order.
var productOrder = [...]Product{
	ProductMCA,
	ProductTermLoan,
	ProductSBALoan,
	ProductLineOfCredit,
	ProductCreditCardStacking,
	ProductEquipmentFinancing,
}

// ProductScore is the scoring result for a single product.
// Invariant: Qualified=false implies Score=0 and Grade="NQ".
type ProductScore struct {
	Score     int    `json:"score"`
	Qualified bool   `json:"qualified"`
	Grade     string `json:"grade"`
}

func notQualified() ProductScore {
	return ProductScore{Score: 0, Qualified: false, Grade: gradeNotQualified}
}

func qualified(score int) ProductScore {
	score = clampScore(score)
	return ProductScore{Score: score, Qualified: true, Grade: productGrade(score)}
}

// scoreProduct dispatches to the rubric for the given product.
func scoreProduct(product Product, in LeadInput) ProductScore {
	switch product {
	case ProductMCA:
		return scoreMCA(in)
	case ProductTermLoan:
		return scoreTermLoan(in)
	case ProductSBALoan:
		return scoreSBALoan(in)
	case ProductLineOfCredit:
		return scoreLineOfCredit(in)
	case ProductCreditCardStacking:
		return scoreCreditCardStacking(in)
	case ProductEquipmentFinancing:
		return scoreEquipmentFinancing(in)
	default:
		return notQualified()
	}
}

// scoreMCA scores a merchant cash advance. MCA is revenue-driven: the rubric
// weights monthly revenue heaviest and tolerates weak credit. The whole
// accumulated total is divided by the industry risk multiplier, so risky
// industries drag every factor down, not just the industry bonus.
func scoreMCA(in LeadInput) ProductScore {
	revenue := in.monthlyRevenue()
	if in.CreditScore < 550 || revenue < 10000 || in.MonthsInBusiness < 6 {
		return notQualified()
	}

	score := 0

	// Monthly revenue: the primary repayment signal for a daily-remit advance.
	switch {
	case revenue >= 100000:
		score += 40
	case revenue >= 75000:
		score += 35
	case revenue >= 50000:
		score += 30
	case revenue >= 30000:
		score += 25
	case revenue >= 20000:
		score += 20
	case revenue >= 15000:
		score += 15
	default:
		score += 10
	}

	// Deposit consistency proxy: steady high deposits support daily debits.
	switch {
	case revenue >= 80000:
		score += 20
	case revenue >= 50000:
		score += 15
	case revenue >= 30000:
		score += 10
	default:
		score += 5
	}

	// Credit score: secondary for MCA but still differentiates pricing.
	switch {
	case in.CreditScore >= 700:
		score += 15
	case in.CreditScore >= 650:
		score += 12
	case in.CreditScore >= 600:
		score += 8
	default:
		score += 5
	}

	// Existing-position allowance: flat credit assuming no stacked advances.
	score += 15

	// Time in business.
	switch {
	case in.MonthsInBusiness >= 36:
		score += 10
	case in.MonthsInBusiness >= 24:
		score += 8
	case in.MonthsInBusiness >= 12:
		score += 6
	default:
		score += 4
	}

	adjusted := int(math.Round(float64(score) / riskMultiplier(in.Industry)))
	return qualified(adjusted)
}

// scoreTermLoan scores a conventional term loan. Credit quality dominates,
// with the industry contribution added as a dampened bonus instead of
// dividing the total.
func scoreTermLoan(in LeadInput) ProductScore {
	revenue := in.monthlyRevenue()
	if in.CreditScore < 680 || revenue < 15000 || in.MonthsInBusiness < 24 {
		return notQualified()
	}

	score := 0

	// Credit score: the dominant underwriting factor for term debt.
	switch {
	case in.CreditScore >= 750:
		score += 35
	case in.CreditScore >= 720:
		score += 30
	case in.CreditScore >= 700:
		score += 25
	default:
		score += 20
	}

	// Monthly revenue.
	switch {
	case revenue >= 100000:
		score += 25
	case revenue >= 50000:
		score += 20
	case revenue >= 30000:
		score += 15
	default:
		score += 10
	}

	// Time in business: lenders want a full business cycle or two.
	switch {
	case in.MonthsInBusiness >= 60:
		score += 15
	case in.MonthsInBusiness >= 48:
		score += 12
	case in.MonthsInBusiness >= 36:
		score += 10
	default:
		score += 7
	}

	// Bank balance proxy from revenue: liquidity cushion for fixed payments.
	switch {
	case revenue >= 50000:
		score += 10
	case revenue >= 30000:
		score += 7
	default:
		score += 5
	}

	// Industry stability bonus, dampened by risk.
	score += industryBonus(in.Industry)

	// Debt service allowance: flat credit assuming manageable existing debt.
	score += 5

	return qualified(score)
}

// scoreSBALoan scores an SBA-backed loan. The gate mirrors the term loan but
// with a lower revenue floor; the rubric assumes the applicant can produce a
// business plan and collateral, granted as flat credits.
func scoreSBALoan(in LeadInput) ProductScore {
	revenue := in.monthlyRevenue()
	if in.CreditScore < 680 || revenue < 10000 || in.MonthsInBusiness < 24 {
		return notQualified()
	}

	score := 0

	// Credit score.
	switch {
	case in.CreditScore >= 750:
		score += 30
	case in.CreditScore >= 720:
		score += 25
	case in.CreditScore >= 700:
		score += 20
	default:
		score += 15
	}

	// Business plan allowance.
	score += 10

	// Collateral allowance.
	score += 10

	// Time in business.
	switch {
	case in.MonthsInBusiness >= 60:
		score += 15
	case in.MonthsInBusiness >= 48:
		score += 12
	case in.MonthsInBusiness >= 36:
		score += 10
	default:
		score += 7
	}

	// Monthly revenue.
	switch {
	case revenue >= 50000:
		score += 15
	case revenue >= 30000:
		score += 12
	case revenue >= 20000:
		score += 9
	default:
		score += 6
	}

	return qualified(score)
}

// scoreLineOfCredit scores a revolving line of credit. Balanced weighting
// between credit and cash flow, with the lowest credit gate of the bank
// products.
func scoreLineOfCredit(in LeadInput) ProductScore {
	revenue := in.monthlyRevenue()
	if in.CreditScore < 630 || revenue < 10000 || in.MonthsInBusiness < 12 {
		return notQualified()
	}

	score := 0

	// Credit score.
	switch {
	case in.CreditScore >= 750:
		score += 35
	case in.CreditScore >= 700:
		score += 30
	case in.CreditScore >= 680:
		score += 25
	case in.CreditScore >= 650:
		score += 20
	default:
		score += 15
	}

	// Monthly revenue.
	switch {
	case revenue >= 100000:
		score += 25
	case revenue >= 50000:
		score += 20
	case revenue >= 30000:
		score += 15
	default:
		score += 10
	}

	// Cash flow proxy: a line gets drawn and repaid, so throughput matters.
	switch {
	case revenue >= 50000:
		score += 20
	case revenue >= 30000:
		score += 15
	default:
		score += 10
	}

	// Time in business.
	switch {
	case in.MonthsInBusiness >= 36:
		score += 10
	case in.MonthsInBusiness >= 24:
		score += 8
	default:
		score += 6
	}

	// Bank balance proxy.
	switch {
	case revenue >= 30000:
		score += 10
	default:
		score += 5
	}

	return qualified(score)
}

// scoreCreditCardStacking scores unsecured personal-credit stacking. This is
// the only rubric gated on personal income rather than business revenue, and
// the only one with no time-in-business requirement.
func scoreCreditCardStacking(in LeadInput) ProductScore {
	income := in.personalIncome()
	if in.CreditScore < 680 || income < 40000 {
		return notQualified()
	}

	score := 0

	// Credit score: carries half the rubric for an unsecured product.
	switch {
	case in.CreditScore >= 750:
		score += 50
	case in.CreditScore >= 720:
		score += 45
	case in.CreditScore >= 700:
		score += 40
	default:
		score += 35
	}

	// Personal income.
	switch {
	case income >= 150000:
		score += 25
	case income >= 100000:
		score += 20
	case income >= 75000:
		score += 15
	case income >= 50000:
		score += 10
	default:
		score += 5
	}

	// Debt-to-income allowance.
	score += 10

	// Utilization allowance.
	score += 8

	return qualified(score)
}

// scoreEquipmentFinancing scores equipment financing. The equipment itself
// secures the loan, reflected in a large flat collateral credit and the most
// lenient credit gate after MCA.
func scoreEquipmentFinancing(in LeadInput) ProductScore {
	revenue := in.monthlyRevenue()
	if in.CreditScore < 600 || revenue < 10000 || in.MonthsInBusiness < 12 {
		return notQualified()
	}

	score := 0

	// Credit score.
	switch {
	case in.CreditScore >= 700:
		score += 30
	case in.CreditScore >= 650:
		score += 25
	case in.CreditScore >= 625:
		score += 20
	default:
		score += 15
	}

	// Monthly revenue.
	switch {
	case revenue >= 50000:
		score += 25
	case revenue >= 30000:
		score += 20
	case revenue >= 20000:
		score += 15
	default:
		score += 10
	}

	// Collateral: the financed equipment secures the deal.
	score += 20

	// Time in business.
	switch {
	case in.MonthsInBusiness >= 36:
		score += 10
	case in.MonthsInBusiness >= 24:
		score += 8
	default:
		score += 6
	}

	// Industry bonus, dampened by risk.
	score += industryBonus(in.Industry)

	return qualified(score)
}
