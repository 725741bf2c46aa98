package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendHotLeadAlertEmail(ctx context.Context, toEmail string, alert HotLeadAlert) error {
	subject := fmt.Sprintf(subjectHotLeadAlertFmt, alert.BusinessName, alert.ScoringTier)
	content, err := renderEmailTemplate("hot_lead_alert.html", hotLeadAlertEmailData{
		baseEmailData: baseEmailData{
			Title:   "Hot lead scored",
			Heading: "A high-value lead just came in",
		},
		BusinessName:       alert.BusinessName,
		ContactName:        alert.ContactName,
		LeadScore:          alert.LeadScore,
		LeadGrade:          alert.LeadGrade,
		ScoringTier:        alert.ScoringTier,
		RecommendedProduct: alert.RecommendedProduct,
		EstimatedValue:     alert.EstimatedValue,
		Urgency:            alert.Urgency,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendPurchaseReceiptEmail(ctx context.Context, toEmail string, receipt PurchaseReceipt) error {
	subject := fmt.Sprintf(subjectPurchaseReceiptFmt, receipt.BusinessName)
	content, err := renderEmailTemplate("purchase_receipt.html", purchaseReceiptEmailData{
		baseEmailData: baseEmailData{
			Title:   "Purchase confirmed",
			Heading: "Your lead purchase is confirmed",
		},
		BusinessName: receipt.BusinessName,
		Credits:      receipt.Price,
		Exclusive:    receipt.Exclusive,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}
