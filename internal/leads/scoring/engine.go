package scoring

import "math"

// Routing is the downstream routing decision derived from the product scores.
type Routing struct {
	RecommendedProduct    *Product  `json:"recommendedProduct"`
	QualifiedProducts     []Product `json:"qualifiedProducts"`
	EstimatedValue        int       `json:"estimatedValue"`
	CreditRepairCandidate bool      `json:"creditRepairCandidate"`
}

// Result is the full scoring outcome for one lead.
type Result struct {
	ProductScores map[Product]ProductScore `json:"productScores"`
	Routing       Routing                  `json:"routing"`
	LeadScore     int                      `json:"leadScore"`
	LeadGrade     string                   `json:"leadGrade"`
	ScoringTier   string                   `json:"scoringTier"`
}

// Score runs every product rubric against the input and aggregates the
// results into a routing decision. Scoring is pure: the same input always
// yields the same result.
func Score(in LeadInput) Result {
	scores := make(map[Product]ProductScore, len(productOrder))
	for _, product := range productOrder {
		scores[product] = scoreProduct(product, in)
	}
	return aggregate(scores, in)
}

// aggregate folds the per-product results into the routing decision and the
// overall grade. A product that qualifies at score zero is neither listed
// nor recommended and does not enter the lead score mean.
func aggregate(scores map[Product]ProductScore, in LeadInput) Result {
	var (
		qualifiedProducts = []Product{}
		recommended       *Product
		bestScore         int
		qualifiedSum      int
	)

	for _, product := range productOrder {
		ps := scores[product]
		if !ps.Qualified || ps.Score <= 0 {
			continue
		}
		qualifiedProducts = append(qualifiedProducts, product)
		qualifiedSum += ps.Score

		// Strictly-greater keeps the earliest product on ties.
		if ps.Score > bestScore {
			p := product
			recommended = &p
			bestScore = ps.Score
		}
	}

	estimated := baseEstimatedValue(bestScore)
	if isUrgent(in.Urgency) {
		estimated = int(math.Round(float64(estimated) * urgencySurcharge))
	}

	leadScore := 0
	if n := len(qualifiedProducts); n > 0 {
		leadScore = int(math.Round(float64(qualifiedSum) / float64(n)))
	}

	return Result{
		ProductScores: scores,
		Routing: Routing{
			RecommendedProduct:    recommended,
			QualifiedProducts:     qualifiedProducts,
			EstimatedValue:        estimated,
			CreditRepairCandidate: in.CreditScore < 650,
		},
		LeadScore:   leadScore,
		LeadGrade:   overallGrade(bestScore),
		ScoringTier: overallTier(bestScore),
	}
}
