package scheduler

import (
	"testing"

	"github.com/google/uuid"

	leadsrepo "lendingleads_backend/internal/leads/repository"
	"lendingleads_backend/internal/leads/scoring"
)

func TestLeadCRMSyncTaskRoundTrip(t *testing.T) {
	leadID := uuid.New()

	task, err := NewLeadCRMSyncTask(LeadCRMSyncPayload{LeadID: leadID.String()})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if task.Type() != TaskLeadCRMSync {
		t.Errorf("task type = %q, want %q", task.Type(), TaskLeadCRMSync)
	}

	payload, err := ParseLeadCRMSyncPayload(task)
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.LeadID != leadID.String() {
		t.Errorf("leadID = %q, want %q", payload.LeadID, leadID)
	}
}

func TestLeadToCRMDataMapsScoring(t *testing.T) {
	recommended := "equipmentFinancing"
	lead := leadsrepo.Lead{
		ID:           uuid.New(),
		BusinessName: "Acme Web Co",
		ContactName:  "Jordan Reyes",
		Email:        "jordan@acmeweb.example",
		Phone:        "+12125550134",
		Industry:     "Technology",
		Urgency:      "Immediate",

		MonthlyRevenue:   60000,
		CreditScore:      720,
		MonthsInBusiness: 40,

		ProductScores: map[scoring.Product]scoring.ProductScore{
			scoring.ProductMCA:                {Score: 85, Qualified: true, Grade: "A"},
			scoring.ProductEquipmentFinancing: {Score: 95, Qualified: true, Grade: "A+"},
			scoring.ProductCreditCardStacking: {Score: 0, Qualified: false, Grade: "NQ"},
		},
		QualifiedProducts:  []scoring.Product{scoring.ProductMCA, scoring.ProductEquipmentFinancing},
		RecommendedProduct: &recommended,
		LeadScore:          85,
		LeadGrade:          "A+",
		ScoringTier:        "PLATINUM",
		EstimatedValue:     195,
	}

	data := leadToCRMData(lead)

	if data.LeadID != lead.ID || data.BusinessName != "Acme Web Co" {
		t.Errorf("identity fields not carried over: %+v", data)
	}
	if data.RecommendedProduct != "equipmentFinancing" {
		t.Errorf("recommended = %q", data.RecommendedProduct)
	}
	if len(data.QualifiedProducts) != 2 || data.QualifiedProducts[0] != "mca" {
		t.Errorf("qualified = %v", data.QualifiedProducts)
	}
	if data.ProductScores["equipmentFinancing"] != 95 || data.ProductScores["creditCardStacking"] != 0 {
		t.Errorf("scores = %v", data.ProductScores)
	}
}

func TestLeadToCRMDataWithoutRecommendation(t *testing.T) {
	data := leadToCRMData(leadsrepo.Lead{ID: uuid.New()})
	if data.RecommendedProduct != "" {
		t.Errorf("recommended = %q, want empty", data.RecommendedProduct)
	}
	if data.QualifiedProducts == nil || len(data.QualifiedProducts) != 0 {
		t.Errorf("qualified = %#v, want empty non-nil slice", data.QualifiedProducts)
	}
}
