package crm

import (
	"testing"

	"github.com/google/uuid"
)

type webhookConfig struct {
	mca, term, multi string
}

func (c webhookConfig) GetMCABuyerWebhookURL() string   { return c.mca }
func (c webhookConfig) GetTermBuyerWebhookURL() string  { return c.term }
func (c webhookConfig) GetMultiBuyerWebhookURL() string { return c.multi }

func TestBuildBuyersDropsUnconfigured(t *testing.T) {
	buyers := BuildBuyers(webhookConfig{mca: "https://mca.example/hook"})
	if len(buyers) != 1 || buyers[0].Name != "mca-buyer" {
		t.Fatalf("buyers = %+v, want only mca-buyer", buyers)
	}

	if got := BuildBuyers(webhookConfig{}); len(got) != 0 {
		t.Fatalf("no URLs configured, got %+v", got)
	}

	all := BuildBuyers(webhookConfig{mca: "a", term: "b", multi: "c"})
	if len(all) != 3 {
		t.Fatalf("buyers = %+v, want all three", all)
	}
}

func scoredLead() LeadData {
	return LeadData{
		LeadID:            uuid.New(),
		QualifiedProducts: []string{"mca", "termLoan", "lineOfCredit"},
		ProductScores: map[string]int{
			"mca":          45,
			"termLoan":     65,
			"lineOfCredit": 80,
		},
	}
}

func TestBuyerWants(t *testing.T) {
	lead := scoredLead()

	mcaBuyer := Buyer{Products: []string{"mca"}, MinScore: 40}
	if !mcaBuyer.wants(lead) {
		t.Error("mca at 45 should satisfy minScore 40")
	}

	termBuyer := Buyer{Products: []string{"termLoan", "sbaLoan"}, MinScore: 70}
	if termBuyer.wants(lead) {
		t.Error("termLoan at 65 should miss minScore 70, sbaLoan not qualified")
	}

	multiBuyer := Buyer{Products: []string{"mca", "termLoan", "sbaLoan", "lineOfCredit"}, MinScore: 50}
	if !multiBuyer.wants(lead) {
		t.Error("lineOfCredit at 80 should satisfy minScore 50")
	}
}

func TestBuyerWantsRequiresQualification(t *testing.T) {
	// High score on a product the lead did not qualify for is not enough.
	lead := LeadData{
		QualifiedProducts: []string{"mca"},
		ProductScores:     map[string]int{"mca": 30, "termLoan": 95},
	}
	buyer := Buyer{Products: []string{"termLoan"}, MinScore: 70}
	if buyer.wants(lead) {
		t.Error("unqualified product should never be forwarded")
	}
}
