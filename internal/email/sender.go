// Package email renders and delivers transactional emails over SMTP.
package email

import "context"

// Sender delivers the application's transactional emails.
type Sender interface {
	SendHotLeadAlertEmail(ctx context.Context, toEmail string, alert HotLeadAlert) error
	SendPurchaseReceiptEmail(ctx context.Context, toEmail string, receipt PurchaseReceipt) error
}

// HotLeadAlert carries the scoring summary for an admin alert email.
type HotLeadAlert struct {
	BusinessName       string
	ContactName        string
	LeadScore          int
	LeadGrade          string
	ScoringTier        string
	RecommendedProduct string
	EstimatedValue     int
	Urgency            string
}

// PurchaseReceipt carries the details for a broker's purchase confirmation.
type PurchaseReceipt struct {
	BusinessName string
	Price        int64
	Exclusive    bool
}

// NoopSender satisfies Sender without delivering anything. Used when SMTP is
// not configured.
type NoopSender struct{}

func (NoopSender) SendHotLeadAlertEmail(ctx context.Context, toEmail string, alert HotLeadAlert) error {
	return nil
}

func (NoopSender) SendPurchaseReceiptEmail(ctx context.Context, toEmail string, receipt PurchaseReceipt) error {
	return nil
}
