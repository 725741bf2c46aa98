// Package service implements broker registration, authentication, and the
// credit ledger.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"lendingleads_backend/internal/brokers/password"
	"lendingleads_backend/internal/brokers/repository"
	"lendingleads_backend/internal/brokers/transport"
	"lendingleads_backend/platform/apperr"
	"lendingleads_backend/platform/config"
	"lendingleads_backend/platform/logger"
	"lendingleads_backend/platform/phone"
)

const invalidCredentialsMessage = "invalid email or password"

// dashboardTransactionLimit caps the ledger entries shown on the dashboard.
const dashboardTransactionLimit = 10

// Service orchestrates broker accounts and credits.
type Service struct {
	repo repository.Repository
	cfg  config.BrokerAuthConfig
	log  *logger.Logger
}

// New creates a new brokers service.
func New(repo repository.Repository, cfg config.BrokerAuthConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Register creates a broker account with the starting credit balance and
// returns an access token. New accounts are active immediately.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (transport.AuthResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	broker, err := s.repo.Create(ctx, repository.CreateParams{
		Email:          req.Email,
		PasswordHash:   hash,
		CompanyName:    req.CompanyName,
		ContactName:    req.ContactName,
		Phone:          phone.NormalizeE164(req.Phone),
		CompanyType:    req.CompanyType,
		InitialCredits: s.cfg.GetBrokerCreditLimit(),
	})
	if err != nil {
		s.log.AuthEvent("register", req.Email, false, err.Error())
		return transport.AuthResponse{}, err
	}

	token, err := s.issueAccessToken(broker)
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("register", broker.Email, true, "")
	return transport.AuthResponse{Token: token, Broker: toBrokerResponse(broker)}, nil
}

// Login authenticates a broker by email and password.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.AuthResponse, error) {
	broker, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same response for unknown email and wrong password.
		s.log.AuthEvent("login", req.Email, false, "unknown email")
		return transport.AuthResponse{}, apperr.Unauthorized(invalidCredentialsMessage)
	}

	if !password.Verify(broker.PasswordHash, req.Password) {
		s.log.AuthEvent("login", req.Email, false, "wrong password")
		return transport.AuthResponse{}, apperr.Unauthorized(invalidCredentialsMessage)
	}

	if !broker.IsActive {
		s.log.AuthEvent("login", req.Email, false, "account disabled")
		return transport.AuthResponse{}, apperr.Forbidden("account is disabled")
	}

	token, err := s.issueAccessToken(broker)
	if err != nil {
		return transport.AuthResponse{}, err
	}

	s.log.AuthEvent("login", broker.Email, true, "")
	return transport.AuthResponse{Token: token, Broker: toBrokerResponse(broker)}, nil
}

// Profile returns the authenticated broker's account.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (transport.BrokerResponse, error) {
	broker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.BrokerResponse{}, err
	}
	return toBrokerResponse(broker), nil
}

// Dashboard returns the broker's account plus marketplace activity.
func (s *Service) Dashboard(ctx context.Context, id uuid.UUID) (transport.DashboardResponse, error) {
	broker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DashboardResponse{}, err
	}

	stats, err := s.repo.GetPurchaseStats(ctx, id)
	if err != nil {
		return transport.DashboardResponse{}, err
	}

	transactions, err := s.repo.ListRecentTransactions(ctx, id, dashboardTransactionLimit)
	if err != nil {
		return transport.DashboardResponse{}, err
	}

	recent := make([]transport.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		recent = append(recent, toTransactionResponse(txn))
	}

	return transport.DashboardResponse{
		Broker:             toBrokerResponse(broker),
		TotalPurchases:     stats.TotalPurchases,
		TotalSpent:         stats.TotalSpent,
		ExclusiveLeads:     stats.ExclusiveLeads,
		RecentTransactions: recent,
	}, nil
}

// AddCredits tops up the balance after a confirmed payment. Credits are 1:1
// with USD plus the volume bonus.
func (s *Service) AddCredits(ctx context.Context, id uuid.UUID, req transport.AddCreditsRequest) (transport.AddCreditsResponse, error) {
	if req.Amount < MinTopUpAmount {
		return transport.AddCreditsResponse{}, apperr.BadRequest(fmt.Sprintf("minimum top-up is %d", MinTopUpAmount))
	}

	bonus := bonusCredits(req.Amount)
	credits := req.Amount + bonus
	description := fmt.Sprintf("credit top-up of %d (%d bonus)", req.Amount, bonus)

	broker, err := s.repo.AddCredits(ctx, id, credits, description)
	if err != nil {
		return transport.AddCreditsResponse{}, err
	}

	s.log.Info("broker credits added", "broker_id", id, "credits", credits, "bonus", bonus)
	return transport.AddCreditsResponse{
		CreditsAdded:  credits,
		BonusCredits:  bonus,
		CreditBalance: broker.CreditBalance,
	}, nil
}

// issueAccessToken signs a JWT for the broker, valid for the configured TTL.
func (s *Service) issueAccessToken(broker repository.Broker) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   broker.ID.String(),
		"type":  "access",
		"roles": broker.Roles,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.GetBrokerTokenTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func toTransactionResponse(txn repository.Transaction) transport.TransactionResponse {
	resp := transport.TransactionResponse{
		ID:          txn.ID.String(),
		Type:        txn.Type,
		Amount:      txn.Amount,
		Description: txn.Description,
		Status:      txn.Status,
		CreatedAt:   txn.CreatedAt,
	}
	if txn.LeadID != nil {
		leadID := txn.LeadID.String()
		resp.LeadID = &leadID
	}
	return resp
}

func toBrokerResponse(broker repository.Broker) transport.BrokerResponse {
	return transport.BrokerResponse{
		ID:            broker.ID.String(),
		Email:         broker.Email,
		CompanyName:   broker.CompanyName,
		ContactName:   broker.ContactName,
		Phone:         broker.Phone,
		CompanyType:   broker.CompanyType,
		CreditBalance: broker.CreditBalance,
		IsActive:      broker.IsActive,
		CreatedAt:     broker.CreatedAt,
	}
}
