// Package notification sends emails in response to domain events. Domain
// modules publish events and never touch the email provider directly.
package notification

import (
	"context"

	"lendingleads_backend/internal/email"
	"lendingleads_backend/internal/events"
	"lendingleads_backend/platform/config"
	"lendingleads_backend/platform/logger"
)

// hotLeadMinValue is the estimated value a lead must reach before the admin
// gets an alert email.
const hotLeadMinValue = 100

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	cfg    config.EmailConfig
	log    *logger.Logger
}

// New creates a new notification module.
func New(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.EventLeadScored, m)
	bus.Subscribe(events.EventLeadPurchased, m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadScored:
		return m.handleLeadScored(ctx, e)
	case events.LeadPurchased:
		return m.handleLeadPurchased(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleLeadScored(ctx context.Context, e events.LeadScored) error {
	if e.EstimatedValue < hotLeadMinValue {
		return nil
	}

	adminEmail := m.cfg.GetAdminEmail()
	if adminEmail == "" {
		m.log.Debug("admin email not configured, hot lead alert skipped", "leadId", e.LeadID)
		return nil
	}

	alert := email.HotLeadAlert{
		BusinessName:       e.BusinessName,
		ContactName:        e.ContactName,
		LeadScore:          e.LeadScore,
		LeadGrade:          e.LeadGrade,
		ScoringTier:        e.ScoringTier,
		RecommendedProduct: e.RecommendedProduct,
		EstimatedValue:     e.EstimatedValue,
		Urgency:            e.Urgency,
	}
	if err := m.sender.SendHotLeadAlertEmail(ctx, adminEmail, alert); err != nil {
		m.log.Error("failed to send hot lead alert",
			"leadId", e.LeadID,
			"tier", e.ScoringTier,
			"error", err,
		)
		return err
	}
	m.log.Info("hot lead alert sent", "leadId", e.LeadID, "tier", e.ScoringTier)
	return nil
}

func (m *Module) handleLeadPurchased(ctx context.Context, e events.LeadPurchased) error {
	if e.BrokerEmail == "" {
		return nil
	}

	receipt := email.PurchaseReceipt{
		BusinessName: e.BusinessName,
		Price:        e.Price,
		Exclusive:    e.Exclusive,
	}
	if err := m.sender.SendPurchaseReceiptEmail(ctx, e.BrokerEmail, receipt); err != nil {
		m.log.Error("failed to send purchase receipt",
			"leadId", e.LeadID,
			"brokerId", e.BrokerID,
			"error", err,
		)
		return err
	}
	m.log.Info("purchase receipt sent", "leadId", e.LeadID, "brokerId", e.BrokerID)
	return nil
}
