package crm

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lendingleads_backend/platform/logger"
)

// Opportunity thresholds over estimated value and best product score.
const (
	opportunityMinValue  = 100
	highPriorityMinScore = 75
)

// Service forwards scored leads downstream: a CRM contact (plus an
// opportunity for valuable leads) and the buyer webhooks.
type Service struct {
	client     *Client
	buyers     []Buyer
	httpClient *http.Client
	log        *logger.Logger
}

// NewService creates the CRM sync service. client may be nil when the CRM is
// not configured; buyer forwarding still runs.
func NewService(client *Client, buyers []Buyer, log *logger.Logger) *Service {
	return &Service{
		client:     client,
		buyers:     buyers,
		httpClient: &http.Client{Timeout: clientTimeout},
		log:        log,
	}
}

// SyncLead pushes the lead to the CRM and fans it out to buyers. Errors are
// returned so the scheduler can retry the delivery.
func (s *Service) SyncLead(ctx context.Context, lead LeadData) error {
	if s.client != nil {
		if err := s.syncContact(ctx, lead); err != nil {
			return err
		}
	}
	return s.forwardToBuyers(ctx, lead)
}

func (s *Service) syncContact(ctx context.Context, lead LeadData) error {
	contactID, err := s.client.UpsertContact(ctx, Contact{
		FirstName:    lead.ContactName,
		Email:        lead.Email,
		Phone:        lead.Phone,
		CompanyName:  lead.BusinessName,
		City:         lead.City,
		State:        lead.State,
		PostalCode:   lead.ZipCode,
		Tags:         contactTags(lead),
		CustomFields: contactCustomFields(lead),
	})
	if err != nil {
		return err
	}

	if lead.EstimatedValue < opportunityMinValue {
		return nil
	}

	opportunity := Opportunity{
		ContactID:     contactID,
		Name:          fmt.Sprintf("%s (%s)", lead.BusinessName, lead.ScoringTier),
		MonetaryValue: lead.EstimatedValue,
		Status:        "open",
	}
	if lead.bestScore() >= highPriorityMinScore {
		opportunity.Priority = "high"
	}
	return s.client.CreateOpportunity(ctx, opportunity)
}

// contactTags labels the contact for CRM segmentation.
func contactTags(lead LeadData) []string {
	tags := []string{
		lead.ScoringTier,
		"Score-" + lead.LeadGrade,
	}
	for _, product := range lead.QualifiedProducts {
		tags = append(tags, product+"-Qualified")
	}
	if lead.Urgency == "Immediate" {
		tags = append(tags, "HOT-LEAD")
	}
	if lead.CreditRepairCandidate {
		tags = append(tags, "Credit-Repair-Candidate")
	}
	return tags
}

// contactCustomFields carries the full scoring breakdown into the CRM.
func contactCustomFields(lead LeadData) map[string]string {
	fields := map[string]string{
		"lead_score":          strconv.Itoa(lead.LeadScore),
		"lead_grade":          lead.LeadGrade,
		"scoring_tier":        lead.ScoringTier,
		"estimated_value":     strconv.Itoa(lead.EstimatedValue),
		"recommended_product": lead.RecommendedProduct,
		"industry":            lead.Industry,
		"urgency":             lead.Urgency,
		"monthly_revenue":     strconv.FormatFloat(lead.MonthlyRevenue, 'f', 0, 64),
		"credit_score":        strconv.Itoa(lead.CreditScore),
		"months_in_business":  strconv.Itoa(lead.MonthsInBusiness),
		"synced_at":           time.Now().UTC().Format(time.RFC3339),
	}
	for product, score := range lead.ProductScores {
		fields["score_"+product] = strconv.Itoa(score)
	}
	return fields
}
