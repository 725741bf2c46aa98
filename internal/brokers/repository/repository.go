package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendingleads_backend/platform/apperr"
)

const brokerNotFoundMessage = "broker not found"

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

const brokerColumns = `
	id, email, password_hash, company_name, contact_name, phone, company_type,
	credit_balance, roles, is_active, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new brokers repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a broker account with its starting credit balance.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Broker, error) {
	query := `
		INSERT INTO brokers (email, password_hash, company_name, contact_name, phone, company_type, credit_balance)
		VALUES (lower($1), $2, $3, $4, $5, $6, $7)
		RETURNING ` + brokerColumns

	broker, err := scanBroker(r.pool.QueryRow(ctx, query,
		params.Email, params.PasswordHash, params.CompanyName, params.ContactName,
		params.Phone, params.CompanyType, params.InitialCredits,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Broker{}, apperr.Conflict("email already registered")
		}
		return Broker{}, fmt.Errorf("create broker: %w", err)
	}
	return broker, nil
}

// GetByID retrieves a broker by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Broker, error) {
	query := `SELECT ` + brokerColumns + ` FROM brokers WHERE id = $1`

	broker, err := scanBroker(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Broker{}, apperr.NotFound(brokerNotFoundMessage)
		}
		return Broker{}, fmt.Errorf("get broker by id: %w", err)
	}
	return broker, nil
}

// GetByEmail retrieves a broker by email, case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (Broker, error) {
	query := `SELECT ` + brokerColumns + ` FROM brokers WHERE email = lower($1)`

	broker, err := scanBroker(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Broker{}, apperr.NotFound(brokerNotFoundMessage)
		}
		return Broker{}, fmt.Errorf("get broker by email: %w", err)
	}
	return broker, nil
}

// AddCredits tops up the balance and records the transaction atomically.
func (r *Repo) AddCredits(ctx context.Context, id uuid.UUID, credits int64, description string) (Broker, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Broker{}, fmt.Errorf("begin add credits: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE brokers SET credit_balance = credit_balance + $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + brokerColumns

	broker, err := scanBroker(tx.QueryRow(ctx, query, id, credits))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Broker{}, apperr.NotFound(brokerNotFoundMessage)
		}
		return Broker{}, fmt.Errorf("add broker credits: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (broker_id, type, amount, description, status)
		VALUES ($1, 'credit_purchase', $2, $3, 'completed')`,
		id, credits, description,
	)
	if err != nil {
		return Broker{}, fmt.Errorf("record credit transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Broker{}, fmt.Errorf("commit add credits: %w", err)
	}
	return broker, nil
}

// GetPurchaseStats aggregates the broker's marketplace activity.
func (r *Repo) GetPurchaseStats(ctx context.Context, id uuid.UUID) (PurchaseStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(price), 0),
			COUNT(*) FILTER (WHERE is_exclusive)
		FROM lead_purchases
		WHERE broker_id = $1`

	var stats PurchaseStats
	err := r.pool.QueryRow(ctx, query, id).Scan(&stats.TotalPurchases, &stats.TotalSpent, &stats.ExclusiveLeads)
	if err != nil {
		return PurchaseStats{}, fmt.Errorf("get broker purchase stats: %w", err)
	}
	return stats, nil
}

// ListRecentTransactions retrieves the broker's latest ledger entries,
// newest first.
func (r *Repo) ListRecentTransactions(ctx context.Context, id uuid.UUID, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, lead_id, type, amount, description, status, created_at
		FROM transactions
		WHERE broker_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list broker transactions: %w", err)
	}
	defer rows.Close()

	var results []Transaction
	for rows.Next() {
		var txn Transaction
		var createdAt time.Time
		if err := rows.Scan(&txn.ID, &txn.LeadID, &txn.Type, &txn.Amount, &txn.Description, &txn.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan broker transaction: %w", err)
		}
		txn.CreatedAt = createdAt.Format(time.RFC3339)
		results = append(results, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate broker transactions: %w", err)
	}

	return results, nil
}

// scanBroker scans a single row in brokerColumns order.
func scanBroker(row pgx.Row) (Broker, error) {
	var broker Broker
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&broker.ID, &broker.Email, &broker.PasswordHash, &broker.CompanyName, &broker.ContactName,
		&broker.Phone, &broker.CompanyType, &broker.CreditBalance, &broker.Roles, &broker.IsActive,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Broker{}, err
	}

	broker.CreatedAt = createdAt.Format(time.RFC3339)
	broker.UpdatedAt = updatedAt.Format(time.RFC3339)

	return broker, nil
}
