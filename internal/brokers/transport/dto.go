// Package transport defines the request and response DTOs for the brokers module.
package transport

// RegisterRequest creates a new broker account.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	CompanyName string `json:"companyName" validate:"required,max=200"`
	ContactName string `json:"contactName" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	CompanyType string `json:"companyType" validate:"required,oneof=direct-lender broker lead-company marketing-agency"`
}

// LoginRequest authenticates a broker.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// BrokerResponse is the broker profile without credentials.
type BrokerResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	CompanyName   string `json:"companyName"`
	ContactName   string `json:"contactName"`
	Phone         string `json:"phone"`
	CompanyType   string `json:"companyType"`
	CreditBalance int64  `json:"creditBalance"`
	IsActive      bool   `json:"isActive"`
	CreatedAt     string `json:"createdAt"`
}

// AuthResponse carries the access token and profile after register or login.
type AuthResponse struct {
	Token  string         `json:"token"`
	Broker BrokerResponse `json:"broker"`
}

// AddCreditsRequest tops up the broker's credit balance. Amount is in USD;
// larger purchases earn bonus credits.
type AddCreditsRequest struct {
	Amount int64 `json:"amount" validate:"required,gte=10"`
}

// AddCreditsResponse confirms the top-up.
type AddCreditsResponse struct {
	CreditsAdded  int64 `json:"creditsAdded"`
	BonusCredits  int64 `json:"bonusCredits"`
	CreditBalance int64 `json:"creditBalance"`
}

// TransactionResponse is one credit ledger entry.
type TransactionResponse struct {
	ID          string  `json:"id"`
	LeadID      *string `json:"leadId,omitempty"`
	Type        string  `json:"type"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

// DashboardResponse summarizes a broker's account and purchase activity.
type DashboardResponse struct {
	Broker             BrokerResponse        `json:"broker"`
	TotalPurchases     int                   `json:"totalPurchases"`
	TotalSpent         int64                 `json:"totalSpent"`
	ExclusiveLeads     int                   `json:"exclusiveLeads"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}
