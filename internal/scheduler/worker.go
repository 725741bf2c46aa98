package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"lendingleads_backend/internal/crm"
	leadsrepo "lendingleads_backend/internal/leads/repository"
	"lendingleads_backend/platform/config"
	"lendingleads_backend/platform/logger"
)

// Worker consumes queued tasks and runs the downstream deliveries. A failed
// handler returns its error to asynq, which retries with backoff.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  leadsrepo.Repository
	crm    *crm.Service
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, leads leadsrepo.Repository, crmService *crm.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}
	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	w := &Worker{
		server: asynq.NewServer(opt, asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{queue: 1},
		}),
		mux:   asynq.NewServeMux(),
		leads: leads,
		crm:   crmService,
		log:   log,
	}
	w.mux.HandleFunc(TaskLeadCRMSync, w.handleLeadCRMSync)
	return w, nil
}

// Run serves tasks until ctx is cancelled, then shuts the server down.
func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()
	return w.server.Run(w.mux)
}

func (w *Worker) handleLeadCRMSync(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadCRMSyncPayload(task)
	if err != nil {
		return fmt.Errorf("parse crm sync payload: %w", err)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("parse lead id %q: %w", payload.LeadID, err)
	}

	lead, err := w.leads.GetByID(ctx, leadID)
	if err != nil {
		return fmt.Errorf("load lead %s: %w", leadID, err)
	}

	if err := w.crm.SyncLead(ctx, leadToCRMData(lead)); err != nil {
		w.log.Error("crm sync failed", "leadId", leadID, "error", err)
		return err
	}

	w.log.Info("crm sync delivered", "leadId", leadID, "tier", lead.ScoringTier)
	return nil
}

// leadToCRMData flattens the stored lead into the snapshot the CRM
// integration consumes.
func leadToCRMData(lead leadsrepo.Lead) crm.LeadData {
	productScores := make(map[string]int, len(lead.ProductScores))
	for product, score := range lead.ProductScores {
		productScores[string(product)] = score.Score
	}

	qualified := make([]string, 0, len(lead.QualifiedProducts))
	for _, product := range lead.QualifiedProducts {
		qualified = append(qualified, string(product))
	}

	data := crm.LeadData{
		LeadID:       lead.ID,
		BusinessName: lead.BusinessName,
		ContactName:  lead.ContactName,
		Email:        lead.Email,
		Phone:        lead.Phone,
		City:         lead.City,
		State:        lead.State,
		ZipCode:      lead.ZipCode,

		Industry:         lead.Industry,
		Urgency:          lead.Urgency,
		MonthlyRevenue:   lead.MonthlyRevenue,
		CreditScore:      lead.CreditScore,
		MonthsInBusiness: lead.MonthsInBusiness,
		LoanAmount:       lead.LoanAmount,

		LeadScore:             lead.LeadScore,
		LeadGrade:             lead.LeadGrade,
		ScoringTier:           lead.ScoringTier,
		EstimatedValue:        lead.EstimatedValue,
		CreditRepairCandidate: lead.CreditRepairCandidate,
		QualifiedProducts:     qualified,
		ProductScores:         productScores,
	}
	if lead.RecommendedProduct != nil {
		data.RecommendedProduct = *lead.RecommendedProduct
	}
	return data
}
