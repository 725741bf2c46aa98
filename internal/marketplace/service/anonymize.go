package service

import (
	"math"

	"lendingleads_backend/internal/marketplace/repository"
	"lendingleads_backend/internal/marketplace/transport"
)

// Listing anonymization buckets. Figures are coarse enough that a broker
// cannot identify the business before paying, but fine enough to judge the
// deal.
const (
	fundingBucket = 1000
	revenueBucket = 5000
	tenureBucket  = 6
	creditBucket  = 50
)

// anonymizeListing strips identity and contact fields and rounds the
// financials into buckets.
func anonymizeListing(lead repository.AvailableLead) transport.ListingResponse {
	return transport.ListingResponse{
		LeadID:             lead.ID.String(),
		Industry:           lead.Industry,
		State:              lead.State,
		ScoringTier:        lead.ScoringTier,
		LeadGrade:          lead.LeadGrade,
		LeadScore:          lead.LeadScore,
		RecommendedProduct: lead.RecommendedProduct,
		FundingAmount:      roundToBucket(lead.LoanAmount, fundingBucket),
		MonthlyRevenue:     roundToBucket(lead.MonthlyRevenue, revenueBucket),
		MonthsInBusiness:   floorToBucket(lead.MonthsInBusiness, tenureBucket),
		CreditScoreRange:   floorToBucket(lead.CreditScore, creditBucket),
		Urgency:            lead.Urgency,
		DocumentsUploaded:  lead.BankStatementsUploaded || lead.TaxReturnsUploaded,
		IsExclusive:        lead.Exclusive,
		Price:              lead.Price,
		PurchaseCount:      lead.PurchaseCount,
		CreatedAt:          lead.CreatedAt,
	}
}

// roundToBucket rounds to the nearest bucket.
func roundToBucket(value float64, bucket int) float64 {
	return math.Round(value/float64(bucket)) * float64(bucket)
}

// floorToBucket rounds down to the bucket floor.
func floorToBucket(value, bucket int) int {
	return value / bucket * bucket
}
