package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/sync/errgroup"

	"lendingleads_backend/platform/config"
)

// Buyer is a downstream lead buyer reached over a webhook. A lead is
// forwarded when it qualified for one of the buyer's products at or above
// the buyer's minimum score.
type Buyer struct {
	Name     string
	URL      string
	Products []string
	MinScore int
}

// BuildBuyers assembles the buyer table from configuration. Buyers without a
// URL are dropped.
func BuildBuyers(cfg config.BuyerWebhookConfig) []Buyer {
	candidates := []Buyer{
		{
			Name:     "mca-buyer",
			URL:      cfg.GetMCABuyerWebhookURL(),
			Products: []string{"mca"},
			MinScore: 40,
		},
		{
			Name:     "term-buyer",
			URL:      cfg.GetTermBuyerWebhookURL(),
			Products: []string{"termLoan", "sbaLoan"},
			MinScore: 70,
		},
		{
			Name:     "multi-product-buyer",
			URL:      cfg.GetMultiBuyerWebhookURL(),
			Products: []string{"mca", "termLoan", "sbaLoan", "lineOfCredit", "creditCardStacking", "equipmentFinancing"},
			MinScore: 50,
		},
	}

	buyers := make([]Buyer, 0, len(candidates))
	for _, buyer := range candidates {
		if buyer.URL != "" {
			buyers = append(buyers, buyer)
		}
	}
	return buyers
}

// wants reports whether the buyer takes this lead.
func (b Buyer) wants(lead LeadData) bool {
	for _, product := range b.Products {
		if lead.qualifiesFor(product) && lead.ProductScores[product] >= b.MinScore {
			return true
		}
	}
	return false
}

// buyerPayload is the webhook body sent to buyers.
type buyerPayload struct {
	LeadID             string         `json:"leadId"`
	BusinessName       string         `json:"businessName"`
	ContactName        string         `json:"contactName"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	Industry           string         `json:"industry"`
	Urgency            string         `json:"urgency"`
	MonthlyRevenue     float64        `json:"monthlyRevenue"`
	CreditScore        int            `json:"creditScore"`
	MonthsInBusiness   int            `json:"monthsInBusiness"`
	LoanAmount         float64        `json:"loanAmount"`
	LeadScore          int            `json:"leadScore"`
	LeadGrade          string         `json:"leadGrade"`
	ScoringTier        string         `json:"scoringTier"`
	RecommendedProduct string         `json:"recommendedProduct"`
	QualifiedProducts  []string       `json:"qualifiedProducts"`
	ProductScores      map[string]int `json:"productScores"`
}

// forwardToBuyers fans the lead out to every matching buyer concurrently.
// One failing buyer does not stop the others; the first error is returned so
// the scheduler retries the whole delivery.
func (s *Service) forwardToBuyers(ctx context.Context, lead LeadData) error {
	payload := buyerPayload{
		LeadID:             lead.LeadID.String(),
		BusinessName:       lead.BusinessName,
		ContactName:        lead.ContactName,
		Email:              lead.Email,
		Phone:              lead.Phone,
		Industry:           lead.Industry,
		Urgency:            lead.Urgency,
		MonthlyRevenue:     lead.MonthlyRevenue,
		CreditScore:        lead.CreditScore,
		MonthsInBusiness:   lead.MonthsInBusiness,
		LoanAmount:         lead.LoanAmount,
		LeadScore:          lead.LeadScore,
		LeadGrade:          lead.LeadGrade,
		ScoringTier:        lead.ScoringTier,
		RecommendedProduct: lead.RecommendedProduct,
		QualifiedProducts:  lead.QualifiedProducts,
		ProductScores:      lead.ProductScores,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, buyer := range s.buyers {
		if !buyer.wants(lead) {
			continue
		}

		buyer := buyer
		group.Go(func() error {
			return s.deliverWebhook(groupCtx, buyer, body)
		})
	}
	return group.Wait()
}

func (s *Service) deliverWebhook(ctx context.Context, buyer Buyer, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, buyer.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.WebhookDelivery(buyer.Name, 0, err)
		return err
	}
	defer resp.Body.Close()

	s.log.WebhookDelivery(buyer.Name, resp.StatusCode, nil)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &webhookError{buyer: buyer.Name, status: resp.StatusCode}
	}
	return nil
}

type webhookError struct {
	buyer  string
	status int
}

func (e *webhookError) Error() string {
	return "buyer webhook " + e.buyer + " returned non-2xx status"
}
