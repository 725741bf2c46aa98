package scoring

import "testing"

func strongApplicant() LeadInput {
	return LeadInput{
		CreditScore:      720,
		MonthlyRevenue:   60000,
		MonthsInBusiness: 40,
		PersonalIncome:   120000,
		Industry:         "Technology",
	}
}

func TestGateFailureReturnsNotQualified(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		in      LeadInput
	}{
		{"mca low credit", ProductMCA, LeadInput{CreditScore: 549, MonthlyRevenue: 50000, MonthsInBusiness: 24}},
		{"mca low revenue", ProductMCA, LeadInput{CreditScore: 700, MonthlyRevenue: 9999, MonthsInBusiness: 24}},
		{"mca young business", ProductMCA, LeadInput{CreditScore: 700, MonthlyRevenue: 50000, MonthsInBusiness: 5}},
		{"term loan low credit", ProductTermLoan, LeadInput{CreditScore: 679, MonthlyRevenue: 50000, MonthsInBusiness: 36}},
		{"term loan low revenue", ProductTermLoan, LeadInput{CreditScore: 720, MonthlyRevenue: 14999, MonthsInBusiness: 36}},
		{"sba young business", ProductSBALoan, LeadInput{CreditScore: 720, MonthlyRevenue: 50000, MonthsInBusiness: 23}},
		{"loc low credit", ProductLineOfCredit, LeadInput{CreditScore: 629, MonthlyRevenue: 50000, MonthsInBusiness: 24}},
		{"stacking low income", ProductCreditCardStacking, LeadInput{CreditScore: 750, PersonalIncome: 39999}},
		{"stacking low credit", ProductCreditCardStacking, LeadInput{CreditScore: 679, PersonalIncome: 100000}},
		{"equipment low credit", ProductEquipmentFinancing, LeadInput{CreditScore: 599, MonthlyRevenue: 50000, MonthsInBusiness: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreProduct(tt.product, tt.in)
			if got.Qualified || got.Score != 0 || got.Grade != gradeNotQualified {
				t.Fatalf("expected {0,false,NQ}, got %+v", got)
			}
		})
	}
}

func TestEmptyInputFailsEveryGate(t *testing.T) {
	for _, product := range productOrder {
		got := scoreProduct(product, LeadInput{})
		if got.Qualified {
			t.Errorf("%s qualified an empty applicant: %+v", product, got)
		}
	}
}

func TestAnnualRevenueFallback(t *testing.T) {
	// 600k annual is 50k monthly, enough to clear every revenue gate.
	in := LeadInput{CreditScore: 720, AnnualRevenue: 600000, MonthsInBusiness: 40}
	got := scoreMCA(in)
	if !got.Qualified {
		t.Fatalf("expected annual revenue fallback to qualify, got %+v", got)
	}

	withMonthly := in
	withMonthly.MonthlyRevenue = 50000
	if other := scoreMCA(withMonthly); other != got {
		t.Fatalf("annual/12 fallback diverged from explicit monthly: %+v vs %+v", got, other)
	}
}

func TestPersonalIncomeFallbackToAnnualRevenue(t *testing.T) {
	in := LeadInput{CreditScore: 720, AnnualRevenue: 100000}
	got := scoreCreditCardStacking(in)
	if !got.Qualified {
		t.Fatalf("expected annual revenue to stand in for personal income, got %+v", got)
	}
	// credit 720 -> 45, income 100k -> 20, allowances 10+8.
	if got.Score != 83 {
		t.Fatalf("score = %d, want 83", got.Score)
	}
}

func TestMCAIndustryRiskDividesTotal(t *testing.T) {
	tech := strongApplicant()
	restaurant := strongApplicant()
	restaurant.Industry = "Restaurant"

	techScore := scoreMCA(tech)
	restaurantScore := scoreMCA(restaurant)
	if techScore.Score != 85 {
		t.Fatalf("technology MCA score = %d, want 85", techScore.Score)
	}
	// 85 / 1.8 rounds to 47.
	if restaurantScore.Score != 47 {
		t.Fatalf("restaurant MCA score = %d, want 47", restaurantScore.Score)
	}
}

func TestUnknownIndustryUsesDefaultRisk(t *testing.T) {
	unknown := strongApplicant()
	unknown.Industry = "Basket Weaving"
	retail := strongApplicant()
	retail.Industry = "Retail"

	if a, b := scoreMCA(unknown), scoreMCA(retail); a != b {
		t.Fatalf("unknown industry should score like the 1.5 default: %+v vs %+v", a, b)
	}
}

func TestScoreWithinBounds(t *testing.T) {
	credits := []int{0, 500, 600, 650, 700, 760, 850}
	revenues := []float64{0, 5000, 12000, 35000, 60000, 120000}
	months := []int{0, 6, 13, 25, 40, 70}
	industries := []string{"Technology", "Restaurant", ""}

	for _, c := range credits {
		for _, r := range revenues {
			for _, m := range months {
				for _, ind := range industries {
					in := LeadInput{CreditScore: c, MonthlyRevenue: r, MonthsInBusiness: m, PersonalIncome: r * 2, Industry: ind}
					for _, product := range productOrder {
						got := scoreProduct(product, in)
						if got.Score < 0 || got.Score > 100 {
							t.Fatalf("%s score %d out of range for %+v", product, got.Score, in)
						}
					}
				}
			}
		}
	}
}

func TestBetterCreditNeverLowersScore(t *testing.T) {
	base := strongApplicant()
	for _, product := range productOrder {
		prev := -1
		for credit := 550; credit <= 850; credit += 10 {
			in := base
			in.CreditScore = credit
			got := scoreProduct(product, in)
			if !got.Qualified {
				continue
			}
			if prev >= 0 && got.Score < prev {
				t.Fatalf("%s score dropped from %d to %d at credit %d", product, prev, got.Score, credit)
			}
			prev = got.Score
		}
	}
}

func TestHigherRevenueNeverLowersScore(t *testing.T) {
	base := strongApplicant()
	for _, product := range productOrder {
		prev := -1
		for revenue := 15000.0; revenue <= 150000; revenue += 5000 {
			in := base
			in.MonthlyRevenue = revenue
			got := scoreProduct(product, in)
			if !got.Qualified {
				continue
			}
			if prev >= 0 && got.Score < prev {
				t.Fatalf("%s score dropped from %d to %d at revenue %.0f", product, prev, got.Score, revenue)
			}
			prev = got.Score
		}
	}
}

func TestLongerTenureNeverLowersScore(t *testing.T) {
	base := strongApplicant()
	for _, product := range productOrder {
		prev := -1
		for months := 6; months <= 120; months += 3 {
			in := base
			in.MonthsInBusiness = months
			got := scoreProduct(product, in)
			if !got.Qualified {
				continue
			}
			if prev >= 0 && got.Score < prev {
				t.Fatalf("%s score dropped from %d to %d at %d months", product, prev, got.Score, months)
			}
			prev = got.Score
		}
	}
}

func TestProductGradeLadder(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "A+"}, {90, "A+"}, {89, "A"}, {85, "A"}, {80, "A-"},
		{75, "B+"}, {70, "B"}, {65, "B-"}, {60, "C+"}, {55, "C"},
		{50, "C-"}, {45, "D"}, {44, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := productGrade(tt.score); got != tt.want {
			t.Errorf("productGrade(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
