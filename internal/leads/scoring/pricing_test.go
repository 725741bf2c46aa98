package scoring

import "testing"

func TestMarketplacePriceBaseTiers(t *testing.T) {
	tests := []struct {
		tier string
		want int64
	}{
		{TierPlatinum, 150},
		{TierGold, 100},
		{TierSilver, 75},
		{TierBronze, 50},
		{TierStandard, 25},
		{TierBasic, 10},
		{"UNKNOWN", 10},
	}
	for _, tt := range tests {
		if got := MarketplacePrice(tt.tier, LeadInput{}); got != tt.want {
			t.Errorf("MarketplacePrice(%s) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestMarketplacePriceDocumentsMultiplier(t *testing.T) {
	bank := LeadInput{BankStatementsUploaded: true}
	tax := LeadInput{TaxReturnsUploaded: true}
	both := LeadInput{BankStatementsUploaded: true, TaxReturnsUploaded: true}

	for _, in := range []LeadInput{bank, tax, both} {
		if got := MarketplacePrice(TierGold, in); got != 250 {
			t.Errorf("documents price = %d, want 250", got)
		}
	}
}

func TestMarketplacePriceUrgencyMultipliers(t *testing.T) {
	tests := []struct {
		urgency string
		want    int64
	}{
		{"Immediate", 150},
		{"Emergency", 150},
		{"today", 150},
		{"week", 120},
		{"month", 100},
		{"", 100},
	}
	for _, tt := range tests {
		got := MarketplacePrice(TierGold, LeadInput{Urgency: tt.urgency})
		if got != tt.want {
			t.Errorf("urgency %q: price = %d, want %d", tt.urgency, got, tt.want)
		}
	}
}

func TestMarketplacePriceExclusiveStacksWithEverything(t *testing.T) {
	in := LeadInput{
		BankStatementsUploaded: true,
		Urgency:                "Immediate",
		Exclusive:              true,
	}
	// 150 * 2.5 * 1.5 * 3 = 1687.5, rounded to 1688.
	if got := MarketplacePrice(TierPlatinum, in); got != 1688 {
		t.Fatalf("stacked price = %d, want 1688", got)
	}
}

func TestMarketplacePriceIsDeterministic(t *testing.T) {
	in := LeadInput{TaxReturnsUploaded: true, Urgency: "week", Exclusive: true}
	first := MarketplacePrice(TierSilver, in)
	for i := 0; i < 5; i++ {
		if got := MarketplacePrice(TierSilver, in); got != first {
			t.Fatalf("price changed between calls: %d vs %d", first, got)
		}
	}
}
