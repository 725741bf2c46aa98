package repository

import (
	"context"

	"github.com/google/uuid"

	"lendingleads_backend/internal/leads/scoring"
)

// Lead statuses, in pipeline order. Sold and rejected are terminal.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusRouted    = "routed"
	StatusSold      = "sold"
	StatusRejected  = "rejected"
)

// Document types accepted for a lead.
const (
	DocumentBankStatements = "bank_statements"
	DocumentTaxReturns     = "tax_returns"
)

// Lead is the persisted lead record including its scoring outcome.
type Lead struct {
	ID uuid.UUID

	BusinessName string
	ContactName  string
	Email        string
	Phone        string
	City         string
	State        string
	ZipCode      string

	MonthlyRevenue   float64
	AnnualRevenue    float64
	CreditScore      int
	MonthsInBusiness int
	PersonalIncome   float64
	LoanAmount       float64

	Industry string
	Urgency  string

	BankStatementsUploaded bool
	TaxReturnsUploaded     bool
	Exclusive              bool

	ProductScores         map[scoring.Product]scoring.ProductScore
	QualifiedProducts     []scoring.Product
	RecommendedProduct    *string
	LeadScore             int
	LeadGrade             string
	ScoringTier           string
	EstimatedValue        int
	CreditRepairCandidate bool

	Price         int64
	Status        string
	PurchaseCount int

	CreatedAt string
	UpdatedAt string
}

// CreateParams holds everything needed to insert a scored lead.
type CreateParams struct {
	BusinessName string
	ContactName  string
	Email        string
	Phone        string
	City         string
	State        string
	ZipCode      string

	MonthlyRevenue   float64
	AnnualRevenue    float64
	CreditScore      int
	MonthsInBusiness int
	PersonalIncome   float64
	LoanAmount       float64

	Industry string
	Urgency  string

	Exclusive bool

	Result scoring.Result
	Price  int64
}

// ListParams holds admin list filters.
type ListParams struct {
	Status   string
	Tier     string
	MinScore int
	Limit    int
	Offset   int
}

// Repository is the persistence contract for leads.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error)
	SetDocumentUploaded(ctx context.Context, id uuid.UUID, documentType string, price int64) (Lead, error)
}
