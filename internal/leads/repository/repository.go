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

const leadNotFoundMessage = "lead not found"

const leadColumns = `
	id, business_name, contact_name, email, phone, city, state, zip_code,
	monthly_revenue, annual_revenue, credit_score, months_in_business, personal_income, loan_amount,
	industry, urgency,
	bank_statements_uploaded, tax_returns_uploaded, is_exclusive,
	product_scores, qualified_products, recommended_product,
	lead_score, lead_grade, scoring_tier, estimated_value, credit_repair_candidate,
	price, status, purchase_count, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a scored lead and returns the stored record.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	query := `
		INSERT INTO leads (
			business_name, contact_name, email, phone, city, state, zip_code,
			monthly_revenue, annual_revenue, credit_score, months_in_business, personal_income, loan_amount,
			industry, urgency, is_exclusive,
			product_scores, qualified_products, recommended_product,
			lead_score, lead_grade, scoring_tier, estimated_value, credit_repair_candidate,
			price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING ` + leadColumns

	var recommended *string
	if params.Result.Routing.RecommendedProduct != nil {
		s := string(*params.Result.Routing.RecommendedProduct)
		recommended = &s
	}

	row := r.pool.QueryRow(ctx, query,
		params.BusinessName, params.ContactName, params.Email, params.Phone, params.City, params.State, params.ZipCode,
		params.MonthlyRevenue, params.AnnualRevenue, params.CreditScore, params.MonthsInBusiness, params.PersonalIncome, params.LoanAmount,
		params.Industry, params.Urgency, params.Exclusive,
		params.Result.ProductScores, params.Result.Routing.QualifiedProducts, recommended,
		params.Result.LeadScore, params.Result.LeadGrade, params.Result.ScoringTier,
		params.Result.Routing.EstimatedValue, params.Result.Routing.CreditRepairCandidate,
		params.Price,
	)

	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List retrieves leads with status, tier, and score filters plus pagination,
// newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	var statusParam interface{}
	if params.Status != "" {
		statusParam = params.Status
	}
	var tierParam interface{}
	if params.Tier != "" {
		tierParam = params.Tier
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	args := []interface{}{statusParam, tierParam, params.MinScore}

	countQuery := `
		SELECT COUNT(*)
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR scoring_tier = $2)
			AND lead_score >= $3`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR scoring_tier = $2)
			AND lead_score >= $3
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	args = append(args, limit, params.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// UpdateStatus sets the pipeline status of a lead.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Lead, error) {
	query := `
		UPDATE leads SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead status: %w", err)
	}
	return lead, nil
}

// SetDocumentUploaded flips the flag for the given document type and stores
// the repriced listing value in the same statement.
func (r *Repo) SetDocumentUploaded(ctx context.Context, id uuid.UUID, documentType string, price int64) (Lead, error) {
	var column string
	switch documentType {
	case DocumentBankStatements:
		column = "bank_statements_uploaded"
	case DocumentTaxReturns:
		column = "tax_returns_uploaded"
	default:
		return Lead{}, apperr.BadRequest("unknown document type")
	}

	query := `
		UPDATE leads SET ` + column + ` = true, price = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("set lead document uploaded: %w", err)
	}
	return lead, nil
}

// scanLead scans a single row in leadColumns order.
func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&lead.ID, &lead.BusinessName, &lead.ContactName, &lead.Email, &lead.Phone, &lead.City, &lead.State, &lead.ZipCode,
		&lead.MonthlyRevenue, &lead.AnnualRevenue, &lead.CreditScore, &lead.MonthsInBusiness, &lead.PersonalIncome, &lead.LoanAmount,
		&lead.Industry, &lead.Urgency,
		&lead.BankStatementsUploaded, &lead.TaxReturnsUploaded, &lead.Exclusive,
		&lead.ProductScores, &lead.QualifiedProducts, &lead.RecommendedProduct,
		&lead.LeadScore, &lead.LeadGrade, &lead.ScoringTier, &lead.EstimatedValue, &lead.CreditRepairCandidate,
		&lead.Price, &lead.Status, &lead.PurchaseCount, &createdAt, &updatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	lead.CreatedAt = createdAt.Format(time.RFC3339)
	lead.UpdatedAt = updatedAt.Format(time.RFC3339)

	return lead, nil
}

// scanLeads is a helper to scan multiple rows into a Lead slice.
func scanLeads(rows pgx.Rows) ([]Lead, error) {
	var results []Lead

	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		results = append(results, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}

	return results, nil
}
