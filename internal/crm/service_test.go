package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"lendingleads_backend/platform/logger"
)

func syncLeadFixture() LeadData {
	return LeadData{
		LeadID:             uuid.New(),
		BusinessName:       "Acme Web Co",
		ContactName:        "Jordan Reyes",
		Email:              "jordan@acmeweb.example",
		Phone:              "+12125550134",
		Industry:           "Technology",
		Urgency:            "Immediate",
		LeadScore:          85,
		LeadGrade:          "A+",
		ScoringTier:        "PLATINUM",
		EstimatedValue:     195,
		RecommendedProduct: "equipmentFinancing",
		QualifiedProducts:  []string{"mca", "termLoan", "sbaLoan", "lineOfCredit", "equipmentFinancing"},
		ProductScores: map[string]int{
			"mca": 85, "termLoan": 85, "sbaLoan": 70, "lineOfCredit": 90, "equipmentFinancing": 95,
		},
	}
}

func TestForwardToBuyersDeliversToMatchesOnly(t *testing.T) {
	var mcaHits, termHits int32

	mcaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&mcaHits, 1)

		var payload buyerPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		if payload.BusinessName != "Acme Web Co" || payload.ProductScores["mca"] != 85 {
			t.Errorf("payload = %+v", payload)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer mcaServer.Close()

	termServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&termHits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer termServer.Close()

	buyers := []Buyer{
		{Name: "mca-buyer", URL: mcaServer.URL, Products: []string{"mca"}, MinScore: 40},
		{Name: "term-buyer", URL: termServer.URL, Products: []string{"termLoan", "sbaLoan"}, MinScore: 70},
	}
	svc := NewService(nil, buyers, logger.New("test"))

	lead := syncLeadFixture()
	if err := svc.SyncLead(context.Background(), lead); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if mcaHits != 1 || termHits != 1 {
		t.Errorf("hits mca=%d term=%d, want 1 each", mcaHits, termHits)
	}

	// Drop below the term buyer's floor: only the MCA buyer should fire.
	lead.ProductScores["termLoan"] = 60
	lead.ProductScores["sbaLoan"] = 60
	if err := svc.SyncLead(context.Background(), lead); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if mcaHits != 2 || termHits != 1 {
		t.Errorf("hits mca=%d term=%d, want 2 and 1", mcaHits, termHits)
	}
}

func TestForwardToBuyersReturnsErrorOnFailure(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	buyers := []Buyer{{Name: "mca-buyer", URL: failing.URL, Products: []string{"mca"}, MinScore: 40}}
	svc := NewService(nil, buyers, logger.New("test"))

	if err := svc.SyncLead(context.Background(), syncLeadFixture()); err == nil {
		t.Fatal("expected error from failing buyer so the delivery retries")
	}
}

func TestSyncContactCreatesOpportunityForValuableLeads(t *testing.T) {
	var contactCalls, opportunityCalls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contacts/upsert":
			atomic.AddInt32(&contactCalls, 1)

			var contact Contact
			if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
				t.Errorf("bad contact payload: %v", err)
			}
			if !hasTag(contact.Tags, "PLATINUM") || !hasTag(contact.Tags, "HOT-LEAD") || !hasTag(contact.Tags, "mca-Qualified") {
				t.Errorf("tags = %v", contact.Tags)
			}
			if contact.CustomFields["score_equipmentFinancing"] != "95" {
				t.Errorf("custom fields = %v", contact.CustomFields)
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"contact": map[string]string{"id": "crm-contact-1"},
			})
		case "/opportunities/":
			atomic.AddInt32(&opportunityCalls, 1)

			var opportunity Opportunity
			if err := json.NewDecoder(r.Body).Decode(&opportunity); err != nil {
				t.Errorf("bad opportunity payload: %v", err)
			}
			if opportunity.ContactID != "crm-contact-1" || opportunity.MonetaryValue != 195 {
				t.Errorf("opportunity = %+v", opportunity)
			}
			if opportunity.Priority != "high" {
				t.Errorf("best score 95 should be high priority, got %q", opportunity.Priority)
			}
			w.WriteHeader(http.StatusCreated)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(crmConfig{baseURL: server.URL, apiKey: "key"}, logger.New("test"))
	svc := NewService(client, nil, logger.New("test"))

	if err := svc.SyncLead(context.Background(), syncLeadFixture()); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if contactCalls != 1 || opportunityCalls != 1 {
		t.Errorf("calls contact=%d opportunity=%d, want 1 each", contactCalls, opportunityCalls)
	}

	// Low-value leads get a contact but no opportunity.
	cheap := syncLeadFixture()
	cheap.EstimatedValue = 50
	if err := svc.SyncLead(context.Background(), cheap); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if contactCalls != 2 || opportunityCalls != 1 {
		t.Errorf("calls contact=%d opportunity=%d, want 2 and 1", contactCalls, opportunityCalls)
	}
}

type crmConfig struct {
	baseURL string
	apiKey  string
}

func (c crmConfig) GetCRMBaseURL() string    { return c.baseURL }
func (c crmConfig) GetCRMAPIKey() string     { return c.apiKey }
func (c crmConfig) GetCRMLocationID() string { return "loc-1" }
func (c crmConfig) IsCRMEnabled() bool       { return c.baseURL != "" && c.apiKey != "" }

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
