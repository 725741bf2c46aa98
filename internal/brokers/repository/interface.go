package repository

import (
	"context"

	"github.com/google/uuid"
)

// Company types a broker can register as.
const (
	CompanyDirectLender    = "direct-lender"
	CompanyBroker          = "broker"
	CompanyLeadCompany     = "lead-company"
	CompanyMarketingAgency = "marketing-agency"
)

// Broker is the persisted broker account.
type Broker struct {
	ID            uuid.UUID
	Email         string
	PasswordHash  string
	CompanyName   string
	ContactName   string
	Phone         string
	CompanyType   string
	CreditBalance int64
	Roles         []string
	IsActive      bool
	CreatedAt     string
	UpdatedAt     string
}

// CreateParams holds everything needed to insert a broker account.
type CreateParams struct {
	Email          string
	PasswordHash   string
	CompanyName    string
	ContactName    string
	Phone          string
	CompanyType    string
	InitialCredits int64
}

// PurchaseStats aggregates a broker's marketplace activity.
type PurchaseStats struct {
	TotalPurchases int
	TotalSpent     int64
	ExclusiveLeads int
}

// Transaction is one entry in the broker's credit ledger. Amount is positive
// for top-ups and negative for purchases.
type Transaction struct {
	ID          uuid.UUID
	LeadID      *uuid.UUID
	Type        string
	Amount      int64
	Description string
	Status      string
	CreatedAt   string
}

// Repository is the persistence contract for brokers.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Broker, error)
	GetByID(ctx context.Context, id uuid.UUID) (Broker, error)
	GetByEmail(ctx context.Context, email string) (Broker, error)
	AddCredits(ctx context.Context, id uuid.UUID, credits int64, description string) (Broker, error)
	GetPurchaseStats(ctx context.Context, id uuid.UUID) (PurchaseStats, error)
	ListRecentTransactions(ctx context.Context, id uuid.UUID, limit int) ([]Transaction, error)
}
