// Package transport defines the request and response DTOs for the leads module.
package transport

// SubmitLeadRequest is the public intake payload from the funnel frontend.
// Financial fields are optional: the scoring engine treats absent numerics as
// zero and degrades the score instead of rejecting the submission.
type SubmitLeadRequest struct {
	BusinessName string `json:"businessName" validate:"required,max=200"`
	ContactName  string `json:"contactName" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	City         string `json:"city" validate:"omitempty,max=100"`
	State        string `json:"state" validate:"omitempty,max=50"`
	ZipCode      string `json:"zipCode" validate:"omitempty,max=10"`

	MonthlyRevenue   float64 `json:"monthlyRevenue" validate:"omitempty,gte=0"`
	AnnualRevenue    float64 `json:"annualRevenue" validate:"omitempty,gte=0"`
	CreditScore      int     `json:"creditScore" validate:"omitempty,gte=300,lte=850"`
	MonthsInBusiness int     `json:"monthsInBusiness" validate:"omitempty,gte=0"`
	PersonalIncome   float64 `json:"personalIncome" validate:"omitempty,gte=0"`
	LoanAmount       float64 `json:"loanAmount" validate:"omitempty,gte=0"`

	Industry string `json:"industry" validate:"omitempty,max=100"`
	Urgency  string `json:"urgency" validate:"omitempty,max=50"`

	IsExclusive bool `json:"isExclusive"`
}

// ProductScoreDTO mirrors one product rubric result.
type ProductScoreDTO struct {
	Score     int    `json:"score"`
	Qualified bool   `json:"qualified"`
	Grade     string `json:"grade"`
}

// ScoringDTO is the scoring block returned with every lead.
type ScoringDTO struct {
	ProductScores         map[string]ProductScoreDTO `json:"productScores"`
	QualifiedProducts     []string                   `json:"qualifiedProducts"`
	RecommendedProduct    *string                    `json:"recommendedProduct"`
	LeadScore             int                        `json:"leadScore"`
	LeadGrade             string                     `json:"leadGrade"`
	ScoringTier           string                     `json:"scoringTier"`
	EstimatedValue        int                        `json:"estimatedValue"`
	CreditRepairCandidate bool                       `json:"creditRepairCandidate"`
}

// LeadResponse is the full lead record for admin views.
type LeadResponse struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`

	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	AnnualRevenue    float64 `json:"annualRevenue"`
	CreditScore      int     `json:"creditScore"`
	MonthsInBusiness int     `json:"monthsInBusiness"`
	PersonalIncome   float64 `json:"personalIncome"`
	LoanAmount       float64 `json:"loanAmount"`

	Industry string `json:"industry"`
	Urgency  string `json:"urgency"`

	BankStatementsUploaded bool `json:"bankStatementsUploaded"`
	TaxReturnsUploaded     bool `json:"taxReturnsUploaded"`
	IsExclusive            bool `json:"isExclusive"`

	Scoring ScoringDTO `json:"scoring"`

	Price         int64  `json:"price"`
	Status        string `json:"status"`
	PurchaseCount int    `json:"purchaseCount"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SubmitLeadResponse is the public reply to a funnel submission. It exposes
// the scoring outcome but not the internal price or status fields.
type SubmitLeadResponse struct {
	ID      string     `json:"id"`
	Scoring ScoringDTO `json:"scoring"`
}

// ListLeadsRequest carries admin list filters via query string.
type ListLeadsRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=new contacted qualified routed sold rejected"`
	Tier     string `form:"tier" validate:"omitempty,oneof=PLATINUM GOLD SILVER BRONZE STANDARD BASIC"`
	MinScore int    `form:"minScore" validate:"omitempty,gte=0,lte=100"`
	Limit    int    `form:"limit" validate:"omitempty,gte=1,lte=200"`
	Offset   int    `form:"offset" validate:"omitempty,gte=0"`
}

// ListLeadsResponse wraps a page of leads with the unfiltered total.
type ListLeadsResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int            `json:"total"`
}

// UpdateLeadStatusRequest moves a lead through the pipeline.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=contacted qualified routed sold rejected"`
}

// UploadDocumentResponse confirms a stored document and the repriced listing.
type UploadDocumentResponse struct {
	DocumentType string `json:"documentType"`
	ObjectKey    string `json:"objectKey"`
	Price        int64  `json:"price"`
}
