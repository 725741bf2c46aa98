package scoring

// LeadInput is the raw applicant record the engine scores. Every field is
// optional at the HTTP boundary; missing numerics arrive as zero and missing
// booleans as false. Scoring degrades the score for absent data instead of
// failing.
type LeadInput struct {
	// Identity and contact, passed through unscored.
	BusinessName string `json:"businessName"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`

	// Financials.
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	AnnualRevenue    float64 `json:"annualRevenue"`
	CreditScore      int     `json:"creditScore"`
	MonthsInBusiness int     `json:"monthsInBusiness"`
	PersonalIncome   float64 `json:"personalIncome"`
	LoanAmount       float64 `json:"loanAmount"`

	// Categoricals.
	Industry string `json:"industry"`
	Urgency  string `json:"urgency"`

	// Document and listing flags.
	BankStatementsUploaded bool `json:"bankStatementsUploaded"`
	TaxReturnsUploaded     bool `json:"taxReturnsUploaded"`
	Exclusive              bool `json:"isExclusive"`
}

// monthlyRevenue returns the effective monthly revenue, deriving it from
// annual revenue when the monthly figure is absent.
func (in LeadInput) monthlyRevenue() float64 {
	if in.MonthlyRevenue > 0 {
		return in.MonthlyRevenue
	}
	return in.AnnualRevenue / 12
}

// personalIncome returns the effective personal income, falling back to
// annual business revenue when no personal figure was given.
func (in LeadInput) personalIncome() float64 {
	if in.PersonalIncome > 0 {
		return in.PersonalIncome
	}
	return in.AnnualRevenue
}

// documentsUploaded reports whether any supporting documents are on file.
func (in LeadInput) documentsUploaded() bool {
	return in.BankStatementsUploaded || in.TaxReturnsUploaded
}
