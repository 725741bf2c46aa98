package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"lendingleads_backend/internal/events"
	"lendingleads_backend/internal/leads/repository"
	"lendingleads_backend/internal/leads/transport"
	"lendingleads_backend/platform/apperr"
	"lendingleads_backend/platform/logger"
)

type fakeRepo struct {
	leads   map[uuid.UUID]repository.Lead
	created []repository.CreateParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[uuid.UUID]repository.Lead)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Lead, error) {
	f.created = append(f.created, params)

	var recommended *string
	if params.Result.Routing.RecommendedProduct != nil {
		s := string(*params.Result.Routing.RecommendedProduct)
		recommended = &s
	}

	lead := repository.Lead{
		ID:                    uuid.New(),
		BusinessName:          params.BusinessName,
		ContactName:           params.ContactName,
		Email:                 params.Email,
		Phone:                 params.Phone,
		MonthlyRevenue:        params.MonthlyRevenue,
		AnnualRevenue:         params.AnnualRevenue,
		CreditScore:           params.CreditScore,
		MonthsInBusiness:      params.MonthsInBusiness,
		PersonalIncome:        params.PersonalIncome,
		Industry:              params.Industry,
		Urgency:               params.Urgency,
		Exclusive:             params.Exclusive,
		ProductScores:         params.Result.ProductScores,
		QualifiedProducts:     params.Result.Routing.QualifiedProducts,
		RecommendedProduct:    recommended,
		LeadScore:             params.Result.LeadScore,
		LeadGrade:             params.Result.LeadGrade,
		ScoringTier:           params.Result.ScoringTier,
		EstimatedValue:        params.Result.Routing.EstimatedValue,
		CreditRepairCandidate: params.Result.Routing.CreditRepairCandidate,
		Price:                 params.Price,
		Status:                repository.StatusNew,
	}
	f.leads[lead.ID] = lead
	return lead, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (f *fakeRepo) List(_ context.Context, _ repository.ListParams) ([]repository.Lead, int, error) {
	var all []repository.Lead
	for _, lead := range f.leads {
		all = append(all, lead)
	}
	return all, len(all), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	lead.Status = status
	f.leads[id] = lead
	return lead, nil
}

func (f *fakeRepo) SetDocumentUploaded(_ context.Context, id uuid.UUID, documentType string, price int64) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	switch documentType {
	case repository.DocumentBankStatements:
		lead.BankStatementsUploaded = true
	case repository.DocumentTaxReturns:
		lead.TaxReturnsUploaded = true
	}
	lead.Price = price
	f.leads[id] = lead
	return lead, nil
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(_ context.Context, event events.Event) {
	f.published = append(f.published, event)
}

func (f *fakeBus) PublishSync(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Subscribe(string, events.Handler) {}

type fakeEnqueuer struct {
	enqueued []uuid.UUID
}

func (f *fakeEnqueuer) EnqueueLeadCRMSync(_ context.Context, leadID uuid.UUID) error {
	f.enqueued = append(f.enqueued, leadID)
	return nil
}

type fakeStorage struct {
	uploads int
}

func (f *fakeStorage) UploadLeadDocument(_ context.Context, leadID uuid.UUID, documentType, filename, _ string, _ int64, _ io.Reader) (string, error) {
	f.uploads++
	return "leads/" + leadID.String() + "/" + documentType + "/" + filename, nil
}

func newTestService() (*Service, *fakeRepo, *fakeBus, *fakeEnqueuer, *fakeStorage) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	tasks := &fakeEnqueuer{}
	storage := &fakeStorage{}
	svc := New(repo, bus, tasks, storage, logger.New("test"))
	return svc, repo, bus, tasks, storage
}

func submitReq() transport.SubmitLeadRequest {
	return transport.SubmitLeadRequest{
		BusinessName:     "Acme Web Co",
		ContactName:      "Jordan Reyes",
		Email:            "jordan@acmeweb.example",
		Phone:            "(212) 555-0134",
		CreditScore:      720,
		MonthlyRevenue:   60000,
		MonthsInBusiness: 40,
		Industry:         "Technology",
		Urgency:          "Immediate",
	}
}

func TestSubmitScoresPersistsAndRoutes(t *testing.T) {
	svc, repo, bus, tasks, _ := newTestService()

	resp, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 create, got %d", len(repo.created))
	}
	created := repo.created[0]
	if created.Phone != "+12125550134" {
		t.Errorf("phone not normalized: %q", created.Phone)
	}
	if created.Result.LeadScore != 85 {
		t.Errorf("lead score = %d, want 85", created.Result.LeadScore)
	}
	// PLATINUM base 150 with the urgency multiplier.
	if created.Price != 225 {
		t.Errorf("price = %d, want 225", created.Price)
	}

	if resp.Scoring.ScoringTier != "PLATINUM" {
		t.Errorf("tier = %q, want PLATINUM", resp.Scoring.ScoringTier)
	}
	if resp.Scoring.RecommendedProduct == nil || *resp.Scoring.RecommendedProduct != "equipmentFinancing" {
		t.Errorf("recommended = %v, want equipmentFinancing", resp.Scoring.RecommendedProduct)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	scored, ok := bus.published[0].(events.LeadScored)
	if !ok {
		t.Fatalf("published %T, want LeadScored", bus.published[0])
	}
	if scored.ScoringTier != "PLATINUM" || scored.LeadScore != 85 {
		t.Errorf("event payload %+v", scored)
	}

	if len(tasks.enqueued) != 1 {
		t.Fatalf("expected 1 CRM sync enqueue, got %d", len(tasks.enqueued))
	}
}

func TestSubmitWorksWithoutSchedulerOrStorage(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &fakeBus{}, nil, nil, logger.New("test"))

	if _, err := svc.Submit(context.Background(), submitReq()); err != nil {
		t.Fatalf("submit without adapters failed: %v", err)
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	resp, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	id := uuid.MustParse(resp.ID)

	// new -> sold skips the pipeline.
	_, err = svc.UpdateStatus(context.Background(), id, transport.UpdateLeadStatusRequest{Status: repository.StatusSold})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// new -> routed -> sold is allowed.
	if _, err := svc.UpdateStatus(context.Background(), id, transport.UpdateLeadStatusRequest{Status: repository.StatusRouted}); err != nil {
		t.Fatalf("new -> routed failed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), id, transport.UpdateLeadStatusRequest{Status: repository.StatusSold}); err != nil {
		t.Fatalf("routed -> sold failed: %v", err)
	}

	// Sold is terminal.
	_, err = svc.UpdateStatus(context.Background(), id, transport.UpdateLeadStatusRequest{Status: repository.StatusContacted})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on terminal lead, got %v", err)
	}

	if repo.leads[id].Status != repository.StatusSold {
		t.Fatalf("status = %q, want sold", repo.leads[id].Status)
	}
}

func TestUploadDocumentRepricesListing(t *testing.T) {
	svc, repo, _, _, storage := newTestService()
	resp, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	id := uuid.MustParse(resp.ID)

	result, err := svc.UploadDocument(
		context.Background(), id, repository.DocumentBankStatements,
		"statements.pdf", "application/pdf", 1024, strings.NewReader("pdf"),
	)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if storage.uploads != 1 {
		t.Fatalf("expected 1 upload, got %d", storage.uploads)
	}
	// 225 base price times the 2.5 documents multiplier.
	if result.Price != 563 {
		t.Errorf("repriced = %d, want 563", result.Price)
	}
	if !repo.leads[id].BankStatementsUploaded {
		t.Errorf("bank statements flag not set")
	}
}

func TestUploadDocumentRejectsUnknownType(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	resp, err := svc.Submit(context.Background(), submitReq())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = svc.UploadDocument(
		context.Background(), uuid.MustParse(resp.ID), "selfie",
		"me.png", "image/png", 10, strings.NewReader("x"),
	)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}
