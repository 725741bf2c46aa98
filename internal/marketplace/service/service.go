// Package service implements the broker lead marketplace: anonymized
// listings, credit purchases, and inventory stats.
package service

import (
	"context"

	"github.com/google/uuid"

	"lendingleads_backend/internal/events"
	"lendingleads_backend/internal/marketplace/repository"
	"lendingleads_backend/internal/marketplace/transport"
	"lendingleads_backend/platform/config"
	"lendingleads_backend/platform/logger"
)

// Service orchestrates marketplace browsing and purchasing.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	cfg  config.MarketplaceConfig
	log  *logger.Logger
}

// New creates a new marketplace service.
func New(repo repository.Repository, bus events.Bus, cfg config.MarketplaceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, cfg: cfg, log: log}
}

// ListAvailable returns anonymized listings matching the filters.
func (s *Service) ListAvailable(ctx context.Context, req transport.ListListingsRequest) (transport.ListListingsResponse, error) {
	leads, total, err := s.repo.ListAvailable(ctx, repository.ListParams{
		Tier:         req.Tier,
		Product:      req.Product,
		MinScore:     req.MinScore,
		MaxPrice:     req.MaxPrice,
		Limit:        req.Limit,
		Offset:       req.Offset,
		MaxPurchases: s.cfg.GetMaxPurchasesPerLead(),
	})
	if err != nil {
		return transport.ListListingsResponse{}, err
	}

	listings := make([]transport.ListingResponse, 0, len(leads))
	for _, lead := range leads {
		listings = append(listings, anonymizeListing(lead))
	}

	return transport.ListListingsResponse{Listings: listings, Total: total}, nil
}

// Purchase buys a lead for the broker, revealing the full record.
func (s *Service) Purchase(ctx context.Context, brokerID, leadID uuid.UUID) (transport.PurchaseResponse, error) {
	result, err := s.repo.PurchaseLead(ctx, brokerID, leadID, s.cfg.GetMaxPurchasesPerLead())
	if err != nil {
		return transport.PurchaseResponse{}, err
	}

	s.log.Info("lead purchased",
		"lead_id", leadID, "broker_id", brokerID,
		"price", result.Purchase.Price, "exclusive", result.Purchase.Exclusive,
	)

	s.bus.Publish(ctx, events.LeadPurchased{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       leadID,
		BrokerID:     brokerID,
		BrokerEmail:  result.BrokerEmail,
		BusinessName: result.Lead.BusinessName,
		Price:        result.Purchase.Price,
		Exclusive:    result.Purchase.Exclusive,
	})

	return transport.PurchaseResponse{
		Lead:          toPurchasedLead(result.Lead, result.Purchase),
		TransactionID: result.TransactionID.String(),
		CreditBalance: result.NewBalance,
	}, nil
}

// MyLeads returns the broker's purchased leads with full contact details.
func (s *Service) MyLeads(ctx context.Context, brokerID uuid.UUID) (transport.MyLeadsResponse, error) {
	purchased, err := s.repo.ListPurchased(ctx, brokerID)
	if err != nil {
		return transport.MyLeadsResponse{}, err
	}

	leads := make([]transport.PurchasedLeadResponse, 0, len(purchased))
	for _, item := range purchased {
		leads = append(leads, toPurchasedLead(item.Lead, item.Purchase))
	}

	return transport.MyLeadsResponse{Leads: leads, Total: len(leads)}, nil
}

// Stats summarizes marketplace inventory and sales for admins.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	stats, err := s.repo.GetStats(ctx, s.cfg.GetMaxPurchasesPerLead())
	if err != nil {
		return transport.StatsResponse{}, err
	}

	return transport.StatsResponse{
		AvailableLeads: stats.AvailableLeads,
		LeadsByTier:    stats.LeadsByTier,
		TotalPurchases: stats.TotalPurchases,
		CreditsSpent:   stats.CreditsSpent,
	}, nil
}

func toPurchasedLead(lead repository.AvailableLead, purchase repository.Purchase) transport.PurchasedLeadResponse {
	return transport.PurchasedLeadResponse{
		LeadID:             lead.ID.String(),
		BusinessName:       lead.BusinessName,
		ContactName:        lead.ContactName,
		Email:              lead.Email,
		Phone:              lead.Phone,
		City:               lead.City,
		State:              lead.State,
		ZipCode:            lead.ZipCode,
		Industry:           lead.Industry,
		Urgency:            lead.Urgency,
		MonthlyRevenue:     lead.MonthlyRevenue,
		AnnualRevenue:      lead.AnnualRevenue,
		CreditScore:        lead.CreditScore,
		MonthsInBusiness:   lead.MonthsInBusiness,
		LoanAmount:         lead.LoanAmount,
		LeadScore:          lead.LeadScore,
		LeadGrade:          lead.LeadGrade,
		ScoringTier:        lead.ScoringTier,
		RecommendedProduct: lead.RecommendedProduct,
		PricePaid:          purchase.Price,
		IsExclusive:        purchase.Exclusive,
		PurchasedAt:        purchase.PurchasedAt,
	}
}
