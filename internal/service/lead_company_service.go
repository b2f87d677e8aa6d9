package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/mapper"
	"github.com/straye-as/crm-portal/internal/repository"
	"go.uber.org/zap"
)

// leadProgression orders the non-terminal statuses. ACTIVE is a legacy alias of NEW.
var leadProgression = map[domain.LeadStatus]int{
	domain.LeadStatusNew:          0,
	domain.LeadStatusActive:       0,
	"":                            0,
	domain.LeadStatusContacted:    1,
	domain.LeadStatusQualified:    2,
	domain.LeadStatusProposalSent: 3,
	domain.LeadStatusNegotiation:  4,
}

// canTransition reports whether a lead may move from one status to another with
// a plain status update. Leads move forward (skipping is allowed) or to LOST;
// CONVERTED is only reachable through Convert and terminal statuses never change.
func canTransition(from, to domain.LeadStatus) bool {
	if from.IsTerminal() || to == domain.LeadStatusConverted || to == domain.LeadStatusActive {
		return false
	}
	if to == domain.LeadStatusLost {
		return true
	}
	fromRank, ok := leadProgression[from]
	if !ok {
		return false
	}
	toRank, ok := leadProgression[to]
	return ok && toRank > fromRank
}

// canConvert reports whether a lead in the status may become a client account
func canConvert(s domain.LeadStatus) bool {
	return s == domain.LeadStatusQualified || s == domain.LeadStatusProposalSent || s == domain.LeadStatusNegotiation
}

type LeadCompanyService struct {
	leads    LeadCompanyStore
	accounts ClientAccountStore
	contacts ContactStore
	logger   *zap.Logger
}

func NewLeadCompanyService(leads LeadCompanyStore, accounts ClientAccountStore, contacts ContactStore, logger *zap.Logger) *LeadCompanyService {
	return &LeadCompanyService{
		leads:    leads,
		accounts: accounts,
		contacts: contacts,
		logger:   logger,
	}
}

func (s *LeadCompanyService) List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.LeadCompany] {
	return s.leads.List(ctx, params)
}

func (s *LeadCompanyService) GetByID(ctx context.Context, id string) (*domain.LeadCompany, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return lead, nil
}

func (s *LeadCompanyService) GetByStatus(ctx context.Context, status domain.LeadStatus, params repository.ListParams) (*domain.ListResult[domain.LeadCompany], error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.leads.GetByStatus(ctx, status, params), nil
}

func (s *LeadCompanyService) GetByAssignee(ctx context.Context, userID string, params repository.ListParams) *domain.ListResult[domain.LeadCompany] {
	return s.leads.GetByAssignee(ctx, userID, params)
}

func (s *LeadCompanyService) GetBySegment(ctx context.Context, segment string, params repository.ListParams) *domain.ListResult[domain.LeadCompany] {
	return s.leads.GetBySegment(ctx, segment, params)
}

func (s *LeadCompanyService) GetByDateRange(ctx context.Context, from, to time.Time, params repository.ListParams) *domain.ListResult[domain.LeadCompany] {
	return s.leads.GetByDateRange(ctx, from, to, params)
}

// Create stores a new lead. New leads start in NEW unless an earlier pipeline status is given.
func (s *LeadCompanyService) Create(ctx context.Context, req *domain.CreateLeadCompanyRequest) (*domain.LeadCompany, error) {
	if req.Status == "" {
		req.Status = domain.LeadStatusNew
	}
	if !req.Status.IsValid() || req.Status.IsTerminal() || req.Status == domain.LeadStatusActive {
		return nil, fmt.Errorf("%w: a new lead cannot have status %q", ErrInvalidInput, req.Status)
	}
	req.CompanyName = strings.TrimSpace(req.CompanyName)

	lead, err := s.leads.Create(ctx, req)
	if err != nil {
		return nil, mapper.FormatError("lead company", "create", err)
	}
	s.logger.Info("Lead company created", zap.String("lead_id", lead.ID), zap.String("status", string(lead.Status)))
	return lead, nil
}

func (s *LeadCompanyService) Update(ctx context.Context, id string, req *domain.UpdateLeadCompanyRequest) (*domain.LeadCompany, error) {
	lead, err := s.leads.Update(ctx, id, req)
	if err != nil {
		return nil, mapper.FormatError("lead company", "update", notFound(err))
	}
	return lead, nil
}

func (s *LeadCompanyService) Delete(ctx context.Context, id string) error {
	if err := s.leads.Delete(ctx, id); err != nil {
		return mapper.FormatError("lead company", "delete", notFound(err))
	}
	return nil
}

// UpdateStatus moves a lead along its lifecycle. Setting the current status again is a no-op.
func (s *LeadCompanyService) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.LeadCompany, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if lead.Status == status {
		return lead, nil
	}
	if !canTransition(lead.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, displayStatus(lead.Status), status)
	}

	updated, err := s.leads.Update(ctx, id, map[string]any{"status": status})
	if err != nil {
		return nil, mapper.FormatError("lead company", "update status of", err)
	}
	s.logger.Info("Lead status changed",
		zap.String("lead_id", id),
		zap.String("from", string(lead.Status)),
		zap.String("to", string(status)),
	)
	return updated, nil
}

func displayStatus(s domain.LeadStatus) string {
	if s == "" {
		return "(unset)"
	}
	return string(s)
}

// BulkUpdateStatus applies UpdateStatus to each lead in order and stops at the first failure
func (s *LeadCompanyService) BulkUpdateStatus(ctx context.Context, req *domain.BulkLeadStatusRequest) *domain.BulkResult {
	return runBulk(ctx, req.IDs, s.logger, func(ctx context.Context, id string) error {
		_, err := s.UpdateStatus(ctx, id, req.Status)
		return err
	})
}

// Convert turns a qualified lead into a client account in ordered steps:
//
//  1. create the account (or reuse one already created from this lead)
//  2. mark the lead CONVERTED and link the account
//  3. move each of the lead's contacts to the account
//
// A failure in step 1 or 2 is returned and the steps can be rerun. Contact
// moves are independent; failed ones are listed in the result.
func (s *LeadCompanyService) Convert(ctx context.Context, id string) (*domain.ConversionResult, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if lead.Status == domain.LeadStatusConverted || domain.RefID(lead.ConvertedAccount) != "" {
		return nil, fmt.Errorf("%w: lead %s", ErrAlreadyConverted, id)
	}
	if !canConvert(lead.Status) {
		return nil, fmt.Errorf("%w: %s leads cannot be converted", ErrInvalidTransition, displayStatus(lead.Status))
	}

	account, err := s.accountFor(ctx, lead)
	if err != nil {
		return nil, err
	}

	updated, err := s.leads.Update(ctx, id, map[string]any{
		"status":           domain.LeadStatusConverted,
		"convertedAccount": account.ID,
	})
	if err != nil {
		return nil, mapper.FormatError("lead company", "mark converted", err)
	}

	result := &domain.ConversionResult{
		Lead:                *updated,
		Account:             *account,
		TransferredContacts: []string{},
	}

	contacts, err := s.contacts.OwnedBy(ctx, domain.OwnerLeadCompany, id)
	if err != nil {
		s.logger.Warn("Converted lead but could not list its contacts", zap.String("lead_id", id), zap.Error(err))
		return result, nil
	}
	primarySeen := false
	for _, c := range contacts {
		demote := c.Role == domain.ContactRolePrimary && primarySeen
		if c.Role == domain.ContactRolePrimary {
			primarySeen = true
		}
		if _, err := s.contacts.Update(ctx, c.ID, transferPayload(domain.OwnerClientAccount, account.ID, demote)); err != nil {
			s.logger.Warn("Failed to move contact to converted account",
				zap.String("contact_id", c.ID),
				zap.String("account_id", account.ID),
				zap.Error(err),
			)
			result.FailedContacts = append(result.FailedContacts, c.ID)
			continue
		}
		result.TransferredContacts = append(result.TransferredContacts, c.ID)
	}

	s.logger.Info("Lead converted",
		zap.String("lead_id", id),
		zap.String("account_id", account.ID),
		zap.Int("contacts", len(result.TransferredContacts)),
		zap.Int("failed_contacts", len(result.FailedContacts)),
	)
	return result, nil
}

func (s *LeadCompanyService) accountFor(ctx context.Context, lead *domain.LeadCompany) (*domain.ClientAccount, error) {
	if existing := s.accounts.GetConvertedFromLead(ctx, lead.ID); existing != nil && len(existing.Data) > 0 {
		return &existing.Data[0], nil
	}
	req := mapper.LeadToClientAccount(lead)
	account, err := s.accounts.Create(ctx, &req)
	if err != nil {
		return nil, mapper.FormatError("client account", "create", err)
	}
	return account, nil
}

func (s *LeadCompanyService) GetStats(ctx context.Context) *domain.LeadCompanyStats {
	leads := s.leads.All(ctx)

	out := &domain.LeadCompanyStats{
		Total:          len(leads),
		ByStatus:       map[domain.LeadStatus]int{},
		BySegment:      map[string]int{},
		ConversionRate: conversionRate(leads),
	}
	scoreSum := 0
	for i := range leads {
		l := &leads[i]
		status := l.Status
		if status == "" {
			status = domain.LeadStatusNew
		}
		out.ByStatus[status]++
		if l.Segment != "" {
			out.BySegment[l.Segment]++
		}
		out.TotalDealValue += l.DealValue
		scoreSum += l.Score
	}
	if out.Total > 0 {
		out.AverageDealValue = out.TotalDealValue / float64(out.Total)
		out.AverageScore = int(math.Round(float64(scoreSum) / float64(out.Total)))
	}
	return out
}
