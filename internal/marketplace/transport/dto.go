// Package transport defines the request and response DTOs for the marketplace module.
package transport

// ListListingsRequest carries marketplace browse filters via query string.
type ListListingsRequest struct {
	Tier     string `form:"tier" validate:"omitempty,oneof=PLATINUM GOLD SILVER BRONZE STANDARD BASIC"`
	Product  string `form:"product" validate:"omitempty,oneof=mca termLoan sbaLoan lineOfCredit creditCardStacking equipmentFinancing"`
	MinScore int    `form:"minScore" validate:"omitempty,gte=0,lte=100"`
	MaxPrice int64  `form:"maxPrice" validate:"omitempty,gte=0"`
	Limit    int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset   int    `form:"offset" validate:"omitempty,gte=0"`
}

// ListingResponse is an anonymized lead listing. Identity and contact fields
// are withheld until purchase; financial figures are rounded into buckets so
// the business cannot be fingerprinted.
type ListingResponse struct {
	LeadID             string  `json:"leadId"`
	Industry           string  `json:"industry"`
	State              string  `json:"state"`
	ScoringTier        string  `json:"scoringTier"`
	LeadGrade          string  `json:"leadGrade"`
	LeadScore          int     `json:"leadScore"`
	RecommendedProduct *string `json:"recommendedProduct"`
	FundingAmount      float64 `json:"fundingAmount"`
	MonthlyRevenue     float64 `json:"monthlyRevenue"`
	MonthsInBusiness   int     `json:"monthsInBusiness"`
	CreditScoreRange   int     `json:"creditScoreRange"`
	Urgency            string  `json:"urgency"`
	DocumentsUploaded  bool    `json:"documentsUploaded"`
	IsExclusive        bool    `json:"isExclusive"`
	Price              int64   `json:"price"`
	PurchaseCount      int     `json:"purchaseCount"`
	CreatedAt          string  `json:"createdAt"`
}

// ListListingsResponse wraps a page of listings with the unfiltered total.
type ListListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
	Total    int               `json:"total"`
}

// PurchasedLeadResponse is the full lead record revealed after purchase.
type PurchasedLeadResponse struct {
	LeadID       string `json:"leadId"`
	BusinessName string `json:"businessName"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`

	Industry         string  `json:"industry"`
	Urgency          string  `json:"urgency"`
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	AnnualRevenue    float64 `json:"annualRevenue"`
	CreditScore      int     `json:"creditScore"`
	MonthsInBusiness int     `json:"monthsInBusiness"`
	LoanAmount       float64 `json:"loanAmount"`

	LeadScore          int     `json:"leadScore"`
	LeadGrade          string  `json:"leadGrade"`
	ScoringTier        string  `json:"scoringTier"`
	RecommendedProduct *string `json:"recommendedProduct"`

	PricePaid   int64  `json:"pricePaid"`
	IsExclusive bool   `json:"isExclusive"`
	PurchasedAt string `json:"purchasedAt"`
}

// PurchaseResponse confirms a completed purchase.
type PurchaseResponse struct {
	Lead          PurchasedLeadResponse `json:"lead"`
	TransactionID string                `json:"transactionId"`
	CreditBalance int64                 `json:"creditBalance"`
}

// MyLeadsResponse lists the broker's purchased leads.
type MyLeadsResponse struct {
	Leads []PurchasedLeadResponse `json:"leads"`
	Total int                     `json:"total"`
}

// StatsResponse summarizes marketplace inventory and sales for admins.
type StatsResponse struct {
	AvailableLeads int            `json:"availableLeads"`
	LeadsByTier    map[string]int `json:"leadsByTier"`
	TotalPurchases int            `json:"totalPurchases"`
	CreditsSpent   int64          `json:"creditsSpent"`
}
