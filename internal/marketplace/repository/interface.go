package repository

import (
	"context"

	"github.com/google/uuid"
)

// AvailableLead is the marketplace's view of a purchasable lead. Contact
// fields stay in this struct so the purchase path can reveal them; the
// service strips them for anonymous listings.
type AvailableLead struct {
	ID uuid.UUID

	BusinessName string
	ContactName  string
	Email        string
	Phone        string
	City         string
	State        string
	ZipCode      string

	Industry         string
	Urgency          string
	MonthlyRevenue   float64
	AnnualRevenue    float64
	CreditScore      int
	MonthsInBusiness int
	LoanAmount       float64

	BankStatementsUploaded bool
	TaxReturnsUploaded     bool
	Exclusive              bool

	LeadScore          int
	LeadGrade          string
	ScoringTier        string
	RecommendedProduct *string

	Price         int64
	PurchaseCount int
	CreatedAt     string
}

// Purchase is a completed lead purchase.
type Purchase struct {
	ID          uuid.UUID
	LeadID      uuid.UUID
	BrokerID    uuid.UUID
	Price       int64
	Exclusive   bool
	PurchasedAt string
}

// PurchaseResult is everything the purchase flow returns in one transaction.
type PurchaseResult struct {
	Lead          AvailableLead
	Purchase      Purchase
	TransactionID uuid.UUID
	NewBalance    int64
	BrokerEmail   string
}

// PurchasedLead pairs a previously bought lead with its purchase record.
type PurchasedLead struct {
	Lead     AvailableLead
	Purchase Purchase
}

// ListParams holds marketplace browse filters.
type ListParams struct {
	Tier     string
	Product  string
	MinScore int
	MaxPrice int64
	Limit    int
	Offset   int

	// MaxPurchases caps how many times a non-exclusive lead can sell.
	MaxPurchases int
}

// Stats aggregates marketplace inventory and sales.
type Stats struct {
	AvailableLeads int
	LeadsByTier    map[string]int
	TotalPurchases int
	CreditsSpent   int64
}

// Repository is the persistence contract for the marketplace.
type Repository interface {
	ListAvailable(ctx context.Context, params ListParams) ([]AvailableLead, int, error)
	PurchaseLead(ctx context.Context, brokerID, leadID uuid.UUID, maxPurchases int) (PurchaseResult, error)
	ListPurchased(ctx context.Context, brokerID uuid.UUID) ([]PurchasedLead, error)
	GetStats(ctx context.Context, maxPurchases int) (Stats, error)
}
