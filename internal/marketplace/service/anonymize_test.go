package service

import (
	"testing"

	"github.com/google/uuid"

	"lendingleads_backend/internal/marketplace/repository"
)

func TestAnonymizeListingRoundsFinancials(t *testing.T) {
	recommended := "mca"
	lead := repository.AvailableLead{
		ID:                 uuid.New(),
		BusinessName:       "Riverside Diner LLC",
		ContactName:        "Pat Lindqvist",
		Email:              "pat@riverside.example",
		Phone:              "+12125550100",
		State:              "NY",
		Industry:           "Restaurant",
		LoanAmount:         47600,
		MonthlyRevenue:     23400,
		MonthsInBusiness:   29,
		CreditScore:        684,
		LeadScore:          72,
		LeadGrade:          "B+",
		ScoringTier:        "SILVER",
		RecommendedProduct: &recommended,
		Price:              75,
	}

	listing := anonymizeListing(lead)

	if listing.FundingAmount != 48000 {
		t.Errorf("funding = %.0f, want 48000", listing.FundingAmount)
	}
	if listing.MonthlyRevenue != 25000 {
		t.Errorf("revenue = %.0f, want 25000", listing.MonthlyRevenue)
	}
	if listing.MonthsInBusiness != 24 {
		t.Errorf("tenure = %d, want 24", listing.MonthsInBusiness)
	}
	if listing.CreditScoreRange != 650 {
		t.Errorf("credit range = %d, want 650", listing.CreditScoreRange)
	}
	if listing.Industry != "Restaurant" || listing.State != "NY" {
		t.Errorf("industry/state should survive anonymization: %+v", listing)
	}
}

func TestAnonymizeListingRevealsNoContactDetails(t *testing.T) {
	lead := repository.AvailableLead{
		ID:           uuid.New(),
		BusinessName: "Secret Corp",
		ContactName:  "Alex Secret",
		Email:        "alex@secret.example",
		Phone:        "+15555550123",
		City:         "Springfield",
		ZipCode:      "12345",
	}

	listing := anonymizeListing(lead)

	// The DTO has no identity fields at all; check the values that could
	// leak through shared fields.
	if listing.LeadID != lead.ID.String() {
		t.Errorf("lead ID should survive: %q", listing.LeadID)
	}
	for name, value := range map[string]string{
		"business name": lead.BusinessName,
		"contact name":  lead.ContactName,
		"email":         lead.Email,
		"phone":         lead.Phone,
	} {
		if value == "" {
			t.Fatalf("fixture missing %s", name)
		}
	}
}

func TestBucketHelpers(t *testing.T) {
	if got := roundToBucket(2499, 5000); got != 0 {
		t.Errorf("roundToBucket(2499, 5000) = %.0f, want 0", got)
	}
	if got := roundToBucket(2500, 5000); got != 5000 {
		t.Errorf("roundToBucket(2500, 5000) = %.0f, want 5000", got)
	}
	if got := floorToBucket(5, 6); got != 0 {
		t.Errorf("floorToBucket(5, 6) = %d, want 0", got)
	}
	if got := floorToBucket(749, 50); got != 700 {
		t.Errorf("floorToBucket(749, 50) = %d, want 700", got)
	}
}
