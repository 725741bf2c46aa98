// Package service implements lead intake, scoring, and pipeline management.
package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"lendingleads_backend/internal/events"
	"lendingleads_backend/internal/leads/repository"
	"lendingleads_backend/internal/leads/scoring"
	"lendingleads_backend/internal/leads/transport"
	"lendingleads_backend/platform/apperr"
	"lendingleads_backend/platform/logger"
	"lendingleads_backend/platform/phone"
)

// TaskEnqueuer schedules background work for a lead.
type TaskEnqueuer interface {
	EnqueueLeadCRMSync(ctx context.Context, leadID uuid.UUID) error
}

// DocumentStorage stores uploaded lead documents.
type DocumentStorage interface {
	UploadLeadDocument(ctx context.Context, leadID uuid.UUID, documentType, filename, contentType string, size int64, content io.Reader) (string, error)
}

// Service orchestrates lead scoring and persistence.
type Service struct {
	repo    repository.Repository
	bus     events.Bus
	tasks   TaskEnqueuer
	storage DocumentStorage
	log     *logger.Logger
}

// New creates a new leads service. tasks and storage may be nil when the
// scheduler or object storage are disabled.
func New(repo repository.Repository, bus events.Bus, tasks TaskEnqueuer, storage DocumentStorage, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, tasks: tasks, storage: storage, log: log}
}

// Submit scores an incoming lead, persists it, and kicks off downstream
// routing. Scoring failures are impossible by construction; only persistence
// can fail.
func (s *Service) Submit(ctx context.Context, req transport.SubmitLeadRequest) (transport.SubmitLeadResponse, error) {
	input := scoring.LeadInput{
		BusinessName:     req.BusinessName,
		ContactName:      req.ContactName,
		Email:            req.Email,
		Phone:            phone.NormalizeE164(req.Phone),
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		MonthlyRevenue:   req.MonthlyRevenue,
		AnnualRevenue:    req.AnnualRevenue,
		CreditScore:      req.CreditScore,
		MonthsInBusiness: req.MonthsInBusiness,
		PersonalIncome:   req.PersonalIncome,
		LoanAmount:       req.LoanAmount,
		Industry:         req.Industry,
		Urgency:          req.Urgency,
		Exclusive:        req.IsExclusive,
	}

	result := scoring.Score(input)
	price := scoring.MarketplacePrice(result.ScoringTier, input)

	lead, err := s.repo.Create(ctx, repository.CreateParams{
		BusinessName:     input.BusinessName,
		ContactName:      input.ContactName,
		Email:            input.Email,
		Phone:            input.Phone,
		City:             input.City,
		State:            input.State,
		ZipCode:          input.ZipCode,
		MonthlyRevenue:   input.MonthlyRevenue,
		AnnualRevenue:    input.AnnualRevenue,
		CreditScore:      input.CreditScore,
		MonthsInBusiness: input.MonthsInBusiness,
		PersonalIncome:   input.PersonalIncome,
		LoanAmount:       input.LoanAmount,
		Industry:         input.Industry,
		Urgency:          input.Urgency,
		Exclusive:        input.Exclusive,
		Result:           result,
		Price:            price,
	})
	if err != nil {
		return transport.SubmitLeadResponse{}, err
	}

	s.publishScored(ctx, lead)

	if s.tasks != nil {
		if err := s.tasks.EnqueueLeadCRMSync(ctx, lead.ID); err != nil {
			// CRM sync is retried by the scheduler; losing the enqueue only
			// delays the sync, never the submission.
			s.log.Error("failed to enqueue CRM sync", "lead_id", lead.ID, "error", err)
		}
	}

	return transport.SubmitLeadResponse{
		ID:      lead.ID.String(),
		Scoring: toScoringDTO(lead),
	}, nil
}

// GetByID retrieves a lead for admin views.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

// List retrieves leads with admin filters.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.ListLeadsResponse, error) {
	leads, total, err := s.repo.List(ctx, repository.ListParams{
		Status:   req.Status,
		Tier:     req.Tier,
		MinScore: req.MinScore,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return transport.ListLeadsResponse{}, err
	}

	responses := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		responses = append(responses, toLeadResponse(lead))
	}

	return transport.ListLeadsResponse{Leads: responses, Total: total}, nil
}

// validStatusTransitions maps a current status to its allowed next statuses.
// Sold and rejected are terminal.
var validStatusTransitions = map[string][]string{
	repository.StatusNew:       {repository.StatusContacted, repository.StatusQualified, repository.StatusRouted, repository.StatusRejected},
	repository.StatusContacted: {repository.StatusQualified, repository.StatusRouted, repository.StatusRejected},
	repository.StatusQualified: {repository.StatusRouted, repository.StatusRejected},
	repository.StatusRouted:    {repository.StatusSold, repository.StatusRejected},
}

// UpdateStatus moves a lead through the pipeline, rejecting backward or
// out-of-terminal transitions.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateLeadStatusRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	if !transitionAllowed(lead.Status, req.Status) {
		return transport.LeadResponse{}, apperr.Conflict("invalid status transition").
			WithDetails(map[string]string{"from": lead.Status, "to": req.Status})
	}

	updated, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.log.Info("lead status changed", "lead_id", id, "from", lead.Status, "to", req.Status)
	return toLeadResponse(updated), nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UploadDocument stores a supporting document, marks the lead, and reprices
// the listing with the documents multiplier.
func (s *Service) UploadDocument(ctx context.Context, id uuid.UUID, documentType, filename, contentType string, size int64, content io.Reader) (transport.UploadDocumentResponse, error) {
	if s.storage == nil {
		return transport.UploadDocumentResponse{}, apperr.Internal("document storage is not configured")
	}
	if documentType != repository.DocumentBankStatements && documentType != repository.DocumentTaxReturns {
		return transport.UploadDocumentResponse{}, apperr.BadRequest("unknown document type")
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.UploadDocumentResponse{}, err
	}

	objectKey, err := s.storage.UploadLeadDocument(ctx, id, documentType, filename, contentType, size, content)
	if err != nil {
		return transport.UploadDocumentResponse{}, err
	}

	input := leadScoringInput(lead)
	switch documentType {
	case repository.DocumentBankStatements:
		input.BankStatementsUploaded = true
	case repository.DocumentTaxReturns:
		input.TaxReturnsUploaded = true
	}
	price := scoring.MarketplacePrice(lead.ScoringTier, input)

	updated, err := s.repo.SetDocumentUploaded(ctx, id, documentType, price)
	if err != nil {
		return transport.UploadDocumentResponse{}, err
	}

	s.log.Info("lead document uploaded", "lead_id", id, "document_type", documentType, "price", updated.Price)
	return transport.UploadDocumentResponse{
		DocumentType: documentType,
		ObjectKey:    objectKey,
		Price:        updated.Price,
	}, nil
}

func (s *Service) publishScored(ctx context.Context, lead repository.Lead) {
	recommended := ""
	if lead.RecommendedProduct != nil {
		recommended = *lead.RecommendedProduct
	}
	s.bus.Publish(ctx, events.LeadScored{
		BaseEvent:          events.NewBaseEvent(),
		LeadID:             lead.ID,
		BusinessName:       lead.BusinessName,
		ContactName:        lead.ContactName,
		Email:              lead.Email,
		LeadScore:          lead.LeadScore,
		LeadGrade:          lead.LeadGrade,
		ScoringTier:        lead.ScoringTier,
		RecommendedProduct: recommended,
		EstimatedValue:     lead.EstimatedValue,
		Urgency:            lead.Urgency,
	})
}

// leadScoringInput rebuilds the scoring input from a stored lead, used when
// repricing after a document upload.
func leadScoringInput(lead repository.Lead) scoring.LeadInput {
	return scoring.LeadInput{
		BusinessName:           lead.BusinessName,
		ContactName:            lead.ContactName,
		Email:                  lead.Email,
		Phone:                  lead.Phone,
		City:                   lead.City,
		State:                  lead.State,
		ZipCode:                lead.ZipCode,
		MonthlyRevenue:         lead.MonthlyRevenue,
		AnnualRevenue:          lead.AnnualRevenue,
		CreditScore:            lead.CreditScore,
		MonthsInBusiness:       lead.MonthsInBusiness,
		PersonalIncome:         lead.PersonalIncome,
		LoanAmount:             lead.LoanAmount,
		Industry:               lead.Industry,
		Urgency:                lead.Urgency,
		BankStatementsUploaded: lead.BankStatementsUploaded,
		TaxReturnsUploaded:     lead.TaxReturnsUploaded,
		Exclusive:              lead.Exclusive,
	}
}

func toScoringDTO(lead repository.Lead) transport.ScoringDTO {
	productScores := make(map[string]transport.ProductScoreDTO, len(lead.ProductScores))
	for product, ps := range lead.ProductScores {
		productScores[string(product)] = transport.ProductScoreDTO{
			Score:     ps.Score,
			Qualified: ps.Qualified,
			Grade:     ps.Grade,
		}
	}

	qualifiedProducts := make([]string, 0, len(lead.QualifiedProducts))
	for _, product := range lead.QualifiedProducts {
		qualifiedProducts = append(qualifiedProducts, string(product))
	}

	return transport.ScoringDTO{
		ProductScores:         productScores,
		QualifiedProducts:     qualifiedProducts,
		RecommendedProduct:    lead.RecommendedProduct,
		LeadScore:             lead.LeadScore,
		LeadGrade:             lead.LeadGrade,
		ScoringTier:           lead.ScoringTier,
		EstimatedValue:        lead.EstimatedValue,
		CreditRepairCandidate: lead.CreditRepairCandidate,
	}
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                     lead.ID.String(),
		BusinessName:           lead.BusinessName,
		ContactName:            lead.ContactName,
		Email:                  lead.Email,
		Phone:                  lead.Phone,
		City:                   lead.City,
		State:                  lead.State,
		ZipCode:                lead.ZipCode,
		MonthlyRevenue:         lead.MonthlyRevenue,
		AnnualRevenue:          lead.AnnualRevenue,
		CreditScore:            lead.CreditScore,
		MonthsInBusiness:       lead.MonthsInBusiness,
		PersonalIncome:         lead.PersonalIncome,
		LoanAmount:             lead.LoanAmount,
		Industry:               lead.Industry,
		Urgency:                lead.Urgency,
		BankStatementsUploaded: lead.BankStatementsUploaded,
		TaxReturnsUploaded:     lead.TaxReturnsUploaded,
		IsExclusive:            lead.Exclusive,
		Scoring:                toScoringDTO(lead),
		Price:                  lead.Price,
		Status:                 lead.Status,
		PurchaseCount:          lead.PurchaseCount,
		CreatedAt:              lead.CreatedAt,
		UpdatedAt:              lead.UpdatedAt,
	}
}
