package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendingleads_backend/platform/apperr"
)

const (
	leadNotFoundMessage    = "lead not found"
	leadUnavailableMessage = "lead is no longer available"
)

// availableStatuses are the pipeline states a lead can be bought in.
// Routed, sold, and rejected leads are off the marketplace.
const availableStatuses = `('new', 'contacted', 'qualified')`

const availableLeadColumns = `
	l.id, l.business_name, l.contact_name, l.email, l.phone, l.city, l.state, l.zip_code,
	l.industry, l.urgency, l.monthly_revenue, l.annual_revenue, l.credit_score, l.months_in_business, l.loan_amount,
	l.bank_statements_uploaded, l.tax_returns_uploaded, l.is_exclusive,
	l.lead_score, l.lead_grade, l.scoring_tier, l.recommended_product,
	l.price, l.purchase_count, l.created_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new marketplace repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListAvailable retrieves purchasable leads with browse filters, newest first.
func (r *Repo) ListAvailable(ctx context.Context, params ListParams) ([]AvailableLead, int, error) {
	var tierParam interface{}
	if params.Tier != "" {
		tierParam = params.Tier
	}
	var productParam interface{}
	if params.Product != "" {
		productParam = params.Product
	}
	var maxPriceParam interface{}
	if params.MaxPrice > 0 {
		maxPriceParam = params.MaxPrice
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 25
	}

	where := `
		WHERE l.status IN ` + availableStatuses + `
			AND l.purchase_count < $1
			AND NOT (l.is_exclusive AND l.purchase_count > 0)
			AND ($2::text IS NULL OR l.scoring_tier = $2)
			AND ($3::text IS NULL OR l.recommended_product = $3 OR l.qualified_products ? $3)
			AND l.lead_score >= $4
			AND ($5::bigint IS NULL OR l.price <= $5)`

	args := []interface{}{params.MaxPurchases, tierParam, productParam, params.MinScore, maxPriceParam}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads l`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count available leads: %w", err)
	}

	query := `
		SELECT ` + availableLeadColumns + `
		FROM leads l` + where + `
		ORDER BY l.created_at DESC
		LIMIT $6 OFFSET $7`

	args = append(args, limit, params.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list available leads: %w", err)
	}
	defer rows.Close()

	var leads []AvailableLead
	for rows.Next() {
		lead, err := scanAvailableLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan available lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate available leads: %w", err)
	}

	return leads, total, nil
}

// PurchaseLead runs the whole purchase in one transaction: availability and
// duplicate checks, balance deduction, ledger entries, and routing the lead
// off the marketplace when it sells out.
func (r *Repo) PurchaseLead(ctx context.Context, brokerID, leadID uuid.UUID, maxPurchases int) (PurchaseResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("begin purchase: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the lead row first so concurrent buyers serialize on it.
	leadQuery := `
		SELECT ` + availableLeadColumns + `, l.status
		FROM leads l
		WHERE l.id = $1
		FOR UPDATE`

	var lead AvailableLead
	var status string
	var createdAt time.Time
	err = tx.QueryRow(ctx, leadQuery, leadID).Scan(
		&lead.ID, &lead.BusinessName, &lead.ContactName, &lead.Email, &lead.Phone, &lead.City, &lead.State, &lead.ZipCode,
		&lead.Industry, &lead.Urgency, &lead.MonthlyRevenue, &lead.AnnualRevenue, &lead.CreditScore, &lead.MonthsInBusiness, &lead.LoanAmount,
		&lead.BankStatementsUploaded, &lead.TaxReturnsUploaded, &lead.Exclusive,
		&lead.LeadScore, &lead.LeadGrade, &lead.ScoringTier, &lead.RecommendedProduct,
		&lead.Price, &lead.PurchaseCount, &createdAt, &status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PurchaseResult{}, apperr.NotFound(leadNotFoundMessage)
		}
		return PurchaseResult{}, fmt.Errorf("lock lead for purchase: %w", err)
	}
	lead.CreatedAt = createdAt.Format(time.RFC3339)

	if !isAvailable(status, lead, maxPurchases) {
		return PurchaseResult{}, apperr.Conflict(leadUnavailableMessage)
	}

	var alreadyPurchased bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM lead_purchases WHERE lead_id = $1 AND broker_id = $2)`,
		leadID, brokerID,
	).Scan(&alreadyPurchased)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("check duplicate purchase: %w", err)
	}
	if alreadyPurchased {
		return PurchaseResult{}, apperr.Conflict("lead already purchased")
	}

	var balance int64
	var brokerEmail string
	err = tx.QueryRow(ctx,
		`SELECT credit_balance, email FROM brokers WHERE id = $1 AND is_active FOR UPDATE`,
		brokerID,
	).Scan(&balance, &brokerEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PurchaseResult{}, apperr.NotFound("broker not found")
		}
		return PurchaseResult{}, fmt.Errorf("lock broker for purchase: %w", err)
	}

	if balance < lead.Price {
		return PurchaseResult{}, apperr.BadRequest("insufficient credits").
			WithDetails(map[string]int64{"required": lead.Price, "balance": balance})
	}

	var newBalance int64
	err = tx.QueryRow(ctx,
		`UPDATE brokers SET credit_balance = credit_balance - $2, updated_at = now() WHERE id = $1 RETURNING credit_balance`,
		brokerID, lead.Price,
	).Scan(&newBalance)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("deduct broker balance: %w", err)
	}

	var transactionID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (broker_id, lead_id, type, amount, description, status)
		VALUES ($1, $2, 'purchase', $3, $4, 'completed')
		RETURNING id`,
		brokerID, leadID, -lead.Price, fmt.Sprintf("purchase of lead %s", leadID),
	).Scan(&transactionID)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("record purchase transaction: %w", err)
	}

	var purchase Purchase
	var purchasedAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO lead_purchases (lead_id, broker_id, price, is_exclusive)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lead_id, broker_id, price, is_exclusive, created_at`,
		leadID, brokerID, lead.Price, lead.Exclusive,
	).Scan(&purchase.ID, &purchase.LeadID, &purchase.BrokerID, &purchase.Price, &purchase.Exclusive, &purchasedAt)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("record lead purchase: %w", err)
	}
	purchase.PurchasedAt = purchasedAt.Format(time.RFC3339)

	// Exclusive leads and leads at the purchase cap leave the marketplace.
	err = tx.QueryRow(ctx, `
		UPDATE leads SET
			purchase_count = purchase_count + 1,
			status = CASE WHEN is_exclusive OR purchase_count + 1 >= $2 THEN 'routed' ELSE status END,
			updated_at = now()
		WHERE id = $1
		RETURNING purchase_count`,
		leadID, maxPurchases,
	).Scan(&lead.PurchaseCount)
	if err != nil {
		return PurchaseResult{}, fmt.Errorf("update lead purchase count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return PurchaseResult{}, fmt.Errorf("commit purchase: %w", err)
	}

	return PurchaseResult{
		Lead:          lead,
		Purchase:      purchase,
		TransactionID: transactionID,
		NewBalance:    newBalance,
		BrokerEmail:   brokerEmail,
	}, nil
}

// ListPurchased retrieves the broker's bought leads, newest purchase first.
func (r *Repo) ListPurchased(ctx context.Context, brokerID uuid.UUID) ([]PurchasedLead, error) {
	query := `
		SELECT ` + availableLeadColumns + `,
			p.id, p.lead_id, p.broker_id, p.price, p.is_exclusive, p.created_at
		FROM lead_purchases p
		JOIN leads l ON l.id = p.lead_id
		WHERE p.broker_id = $1
		ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query, brokerID)
	if err != nil {
		return nil, fmt.Errorf("list purchased leads: %w", err)
	}
	defer rows.Close()

	var results []PurchasedLead
	for rows.Next() {
		var item PurchasedLead
		var createdAt, purchasedAt time.Time

		err := rows.Scan(
			&item.Lead.ID, &item.Lead.BusinessName, &item.Lead.ContactName, &item.Lead.Email, &item.Lead.Phone,
			&item.Lead.City, &item.Lead.State, &item.Lead.ZipCode,
			&item.Lead.Industry, &item.Lead.Urgency, &item.Lead.MonthlyRevenue, &item.Lead.AnnualRevenue,
			&item.Lead.CreditScore, &item.Lead.MonthsInBusiness, &item.Lead.LoanAmount,
			&item.Lead.BankStatementsUploaded, &item.Lead.TaxReturnsUploaded, &item.Lead.Exclusive,
			&item.Lead.LeadScore, &item.Lead.LeadGrade, &item.Lead.ScoringTier, &item.Lead.RecommendedProduct,
			&item.Lead.Price, &item.Lead.PurchaseCount, &createdAt,
			&item.Purchase.ID, &item.Purchase.LeadID, &item.Purchase.BrokerID,
			&item.Purchase.Price, &item.Purchase.Exclusive, &purchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan purchased lead: %w", err)
		}

		item.Lead.CreatedAt = createdAt.Format(time.RFC3339)
		item.Purchase.PurchasedAt = purchasedAt.Format(time.RFC3339)
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchased leads: %w", err)
	}

	return results, nil
}

// GetStats aggregates marketplace inventory and sales.
func (r *Repo) GetStats(ctx context.Context, maxPurchases int) (Stats, error) {
	stats := Stats{LeadsByTier: make(map[string]int)}

	rows, err := r.pool.Query(ctx, `
		SELECT scoring_tier, COUNT(*)
		FROM leads l
		WHERE l.status IN `+availableStatuses+`
			AND l.purchase_count < $1
			AND NOT (l.is_exclusive AND l.purchase_count > 0)
		GROUP BY scoring_tier`,
		maxPurchases,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("count available leads by tier: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return Stats{}, fmt.Errorf("scan tier count: %w", err)
		}
		stats.LeadsByTier[tier] = count
		stats.AvailableLeads += count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate tier counts: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(price), 0) FROM lead_purchases`,
	).Scan(&stats.TotalPurchases, &stats.CreditsSpent)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate purchases: %w", err)
	}

	return stats, nil
}

func isAvailable(status string, lead AvailableLead, maxPurchases int) bool {
	switch status {
	case "new", "contacted", "qualified":
	default:
		return false
	}
	if lead.PurchaseCount >= maxPurchases {
		return false
	}
	if lead.Exclusive && lead.PurchaseCount > 0 {
		return false
	}
	return true
}

// scanAvailableLead scans a single row in availableLeadColumns order.
func scanAvailableLead(rows pgx.Rows) (AvailableLead, error) {
	var lead AvailableLead
	var createdAt time.Time

	err := rows.Scan(
		&lead.ID, &lead.BusinessName, &lead.ContactName, &lead.Email, &lead.Phone, &lead.City, &lead.State, &lead.ZipCode,
		&lead.Industry, &lead.Urgency, &lead.MonthlyRevenue, &lead.AnnualRevenue, &lead.CreditScore, &lead.MonthsInBusiness, &lead.LoanAmount,
		&lead.BankStatementsUploaded, &lead.TaxReturnsUploaded, &lead.Exclusive,
		&lead.LeadScore, &lead.LeadGrade, &lead.ScoringTier, &lead.RecommendedProduct,
		&lead.Price, &lead.PurchaseCount, &createdAt,
	)
	if err != nil {
		return AvailableLead{}, err
	}

	lead.CreatedAt = createdAt.Format(time.RFC3339)
	return lead, nil
}
