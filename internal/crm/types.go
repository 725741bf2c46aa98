// Package crm forwards scored leads to the downstream CRM and to buyer
// webhooks. Deliveries run from the background worker so a slow CRM never
// blocks lead intake.
package crm

import "github.com/google/uuid"

// LeadData is the scored lead snapshot the integration forwards. The worker
// builds it from the stored lead so this package stays decoupled from the
// leads persistence model.
type LeadData struct {
	LeadID       uuid.UUID
	BusinessName string
	ContactName  string
	Email        string
	Phone        string
	City         string
	State        string
	ZipCode      string

	Industry         string
	Urgency          string
	MonthlyRevenue   float64
	CreditScore      int
	MonthsInBusiness int
	LoanAmount       float64

	LeadScore             int
	LeadGrade             string
	ScoringTier           string
	EstimatedValue        int
	CreditRepairCandidate bool
	RecommendedProduct    string
	QualifiedProducts     []string
	ProductScores         map[string]int
}

// qualifiesFor reports whether the lead qualified for the given product.
func (d LeadData) qualifiesFor(product string) bool {
	for _, qualifiedProduct := range d.QualifiedProducts {
		if qualifiedProduct == product {
			return true
		}
	}
	return false
}

// bestScore returns the highest product score.
func (d LeadData) bestScore() int {
	best := 0
	for _, score := range d.ProductScores {
		if score > best {
			best = score
		}
	}
	return best
}
