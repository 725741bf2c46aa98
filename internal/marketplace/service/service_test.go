package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"lendingleads_backend/internal/events"
	"lendingleads_backend/internal/marketplace/repository"
	"lendingleads_backend/internal/marketplace/transport"
	"lendingleads_backend/platform/apperr"
	"lendingleads_backend/platform/logger"
)

type fakeRepo struct {
	available []repository.AvailableLead
	balances  map[uuid.UUID]int64
	purchased map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		balances:  make(map[uuid.UUID]int64),
		purchased: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeRepo) ListAvailable(_ context.Context, _ repository.ListParams) ([]repository.AvailableLead, int, error) {
	return f.available, len(f.available), nil
}

func (f *fakeRepo) PurchaseLead(_ context.Context, brokerID, leadID uuid.UUID, maxPurchases int) (repository.PurchaseResult, error) {
	var lead *repository.AvailableLead
	for i := range f.available {
		if f.available[i].ID == leadID {
			lead = &f.available[i]
		}
	}
	if lead == nil {
		return repository.PurchaseResult{}, apperr.NotFound("lead not found")
	}
	if lead.PurchaseCount >= maxPurchases || (lead.Exclusive && lead.PurchaseCount > 0) {
		return repository.PurchaseResult{}, apperr.Conflict("lead is no longer available")
	}
	if f.purchased[brokerID][leadID] {
		return repository.PurchaseResult{}, apperr.Conflict("lead already purchased")
	}

	balance := f.balances[brokerID]
	if balance < lead.Price {
		return repository.PurchaseResult{}, apperr.BadRequest("insufficient credits").
			WithDetails(map[string]int64{"required": lead.Price, "balance": balance})
	}

	f.balances[brokerID] = balance - lead.Price
	if f.purchased[brokerID] == nil {
		f.purchased[brokerID] = make(map[uuid.UUID]bool)
	}
	f.purchased[brokerID][leadID] = true
	lead.PurchaseCount++

	return repository.PurchaseResult{
		Lead: *lead,
		Purchase: repository.Purchase{
			ID: uuid.New(), LeadID: leadID, BrokerID: brokerID,
			Price: lead.Price, Exclusive: lead.Exclusive,
		},
		TransactionID: uuid.New(),
		NewBalance:    f.balances[brokerID],
		BrokerEmail:   "buyer@capital.example",
	}, nil
}

func (f *fakeRepo) ListPurchased(_ context.Context, _ uuid.UUID) ([]repository.PurchasedLead, error) {
	return nil, nil
}

func (f *fakeRepo) GetStats(_ context.Context, _ int) (repository.Stats, error) {
	return repository.Stats{}, nil
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

type testConfig struct{}

func (testConfig) GetMaxPurchasesPerLead() int { return 5 }

func availableLead(price int64) repository.AvailableLead {
	return repository.AvailableLead{
		ID:           uuid.New(),
		BusinessName: "Acme Web Co",
		ContactName:  "Jordan Reyes",
		Email:        "jordan@acmeweb.example",
		ScoringTier:  "GOLD",
		LeadGrade:    "A",
		LeadScore:    82,
		Price:        price,
	}
}

func newTestService(repo *fakeRepo, bus *fakeBus) *Service {
	return New(repo, bus, testConfig{}, logger.New("test"))
}

func TestPurchaseDeductsCreditsAndPublishes(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, bus)

	lead := availableLead(100)
	repo.available = []repository.AvailableLead{lead}
	brokerID := uuid.New()
	repo.balances[brokerID] = 250

	resp, err := svc.Purchase(context.Background(), brokerID, lead.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	if resp.CreditBalance != 150 {
		t.Errorf("balance = %d, want 150", resp.CreditBalance)
	}
	if resp.Lead.Email != "jordan@acmeweb.example" {
		t.Errorf("purchase must reveal contact details, got %+v", resp.Lead)
	}
	if resp.Lead.PricePaid != 100 {
		t.Errorf("price paid = %d, want 100", resp.Lead.PricePaid)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	purchasedEvent, ok := bus.published[0].(events.LeadPurchased)
	if !ok {
		t.Fatalf("published %T, want LeadPurchased", bus.published[0])
	}
	if purchasedEvent.Price != 100 || purchasedEvent.BrokerID != brokerID {
		t.Errorf("event payload %+v", purchasedEvent)
	}
}

func TestPurchaseInsufficientCredits(t *testing.T) {
	repo := newFakeRepo()
	bus := &fakeBus{}
	svc := newTestService(repo, bus)

	lead := availableLead(500)
	repo.available = []repository.AvailableLead{lead}
	brokerID := uuid.New()
	repo.balances[brokerID] = 120

	_, err := svc.Purchase(context.Background(), brokerID, lead.ID)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}

	// The error carries what the broker needs to top up.
	details := err.(*apperr.Error).Details.(map[string]int64)
	if details["required"] != 500 || details["balance"] != 120 {
		t.Errorf("details = %v", details)
	}
	if len(bus.published) != 0 {
		t.Errorf("no event should be published on failure")
	}
}

func TestPurchaseDuplicateConflicts(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	lead := availableLead(50)
	repo.available = []repository.AvailableLead{lead}
	brokerID := uuid.New()
	repo.balances[brokerID] = 1000

	if _, err := svc.Purchase(context.Background(), brokerID, lead.ID); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	_, err := svc.Purchase(context.Background(), brokerID, lead.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on repeat purchase, got %v", err)
	}
}

func TestExclusiveLeadSellsOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})

	lead := availableLead(300)
	lead.Exclusive = true
	repo.available = []repository.AvailableLead{lead}

	first, second := uuid.New(), uuid.New()
	repo.balances[first] = 1000
	repo.balances[second] = 1000

	if _, err := svc.Purchase(context.Background(), first, lead.ID); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	_, err := svc.Purchase(context.Background(), second, lead.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for sold exclusive lead, got %v", err)
	}
}

func TestListAvailableAnonymizes(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeBus{})
	repo.available = []repository.AvailableLead{availableLead(75)}

	resp, err := svc.ListAvailable(context.Background(), transport.ListListingsRequest{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if resp.Total != 1 || len(resp.Listings) != 1 {
		t.Fatalf("listings = %+v", resp)
	}
	if resp.Listings[0].Price != 75 || resp.Listings[0].ScoringTier != "GOLD" {
		t.Errorf("listing = %+v", resp.Listings[0])
	}
}
