package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/mapper"
	"github.com/straye-as/crm-portal/internal/repository"
	"go.uber.org/zap"
)

// engagementWindow is how far back activities count toward the engagement score
const engagementWindow = 30 * 24 * time.Hour

var engagementWeights = map[domain.ActivityType]int{
	domain.ActivityTypeMeeting: 10,
	domain.ActivityTypeCall:    8,
	domain.ActivityTypeEmail:   5,
	domain.ActivityTypeNote:    3,
}

const defaultEngagementWeight = 2

type ContactService struct {
	contacts   ContactStore
	leads      LeadCompanyStore
	accounts   ClientAccountStore
	activities ActivityStore
	now        Clock
	logger     *zap.Logger
}

func NewContactService(
	contacts ContactStore,
	leads LeadCompanyStore,
	accounts ClientAccountStore,
	activities ActivityStore,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		contacts:   contacts,
		leads:      leads,
		accounts:   accounts,
		activities: activities,
		now:        systemClock,
		logger:     logger,
	}
}

// WithClock replaces the time source
func (s *ContactService) WithClock(now Clock) *ContactService {
	s.now = now
	return s
}

func (s *ContactService) List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.Contact] {
	return s.contacts.List(ctx, params)
}

func (s *ContactService) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *ContactService) GetByLeadCompany(ctx context.Context, leadID string, params repository.ListParams) *domain.ListResult[domain.Contact] {
	return s.contacts.GetByLeadCompany(ctx, leadID, params)
}

func (s *ContactService) GetByClientAccount(ctx context.Context, accountID string, params repository.ListParams) *domain.ListResult[domain.Contact] {
	return s.contacts.GetByClientAccount(ctx, accountID, params)
}

func (s *ContactService) GetByRole(ctx context.Context, role domain.ContactRole, params repository.ListParams) *domain.ListResult[domain.Contact] {
	return s.contacts.GetByRole(ctx, role, params)
}

func (s *ContactService) GetByEmail(ctx context.Context, email string) *domain.ListResult[domain.Contact] {
	return s.contacts.GetByEmail(ctx, email)
}

// Create stores a contact owned by exactly one company. A new primary contact
// demotes the owner's existing primary first.
func (s *ContactService) Create(ctx context.Context, req *domain.CreateContactRequest) (*domain.Contact, error) {
	kind, ownerID, err := ownerOf(req.LeadCompany, req.ClientAccount)
	if err != nil {
		return nil, err
	}
	if req.Status == "" {
		req.Status = domain.ContactStatusActive
	}
	if req.Role == domain.ContactRolePrimary {
		if err := s.demotePrimaries(ctx, kind, ownerID, ""); err != nil {
			return nil, err
		}
	}

	contact, err := s.contacts.Create(ctx, req)
	if err != nil {
		return nil, mapper.FormatError("contact", "create", err)
	}
	return contact, nil
}

// Update changes contact fields. Setting the role to PRIMARY_CONTACT goes
// through the same demote-then-promote sequence as SetPrimary.
func (s *ContactService) Update(ctx context.Context, id string, req *domain.UpdateContactRequest) (*domain.Contact, error) {
	if req.Role != nil && *req.Role == domain.ContactRolePrimary {
		current, err := s.contacts.GetByID(ctx, id)
		if err != nil {
			return nil, notFound(err)
		}
		kind, owner := current.Owner()
		if kind != domain.OwnerNone {
			if err := s.demotePrimaries(ctx, kind, owner.ID, id); err != nil {
				return nil, err
			}
		}
	}

	contact, err := s.contacts.Update(ctx, id, req)
	if err != nil {
		return nil, mapper.FormatError("contact", "update", notFound(err))
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return mapper.FormatError("contact", "delete", notFound(err))
	}
	return nil
}

// SetPrimary makes a contact the only PRIMARY_CONTACT of its company. Other
// primaries are demoted to DECISION_MAKER one at a time, then the target is
// promoted. Every step is idempotent and the company never holds two primaries
// after any prefix of steps; a failed step stops the sequence and is returned.
func (s *ContactService) SetPrimary(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	kind, owner := contact.Owner()
	if kind == domain.OwnerNone {
		return nil, fmt.Errorf("%w: contact %s has no company", ErrInvalidOwner, id)
	}

	if err := s.demotePrimaries(ctx, kind, owner.ID, id); err != nil {
		return nil, err
	}
	if contact.Role == domain.ContactRolePrimary {
		return contact, nil
	}

	promoted, err := s.contacts.Update(ctx, id, map[string]any{"role": domain.ContactRolePrimary})
	if err != nil {
		return nil, mapper.FormatError("contact", "promote", err)
	}
	s.logger.Info("Primary contact changed",
		zap.String("contact_id", id),
		zap.String("owner_kind", string(kind)),
		zap.String("owner_id", owner.ID),
	)
	return promoted, nil
}

// demotePrimaries demotes every PRIMARY_CONTACT of the owner except keepID
func (s *ContactService) demotePrimaries(ctx context.Context, kind domain.OwnerKind, ownerID, keepID string) error {
	siblings, err := s.contacts.OwnedBy(ctx, kind, ownerID)
	if err != nil {
		return fmt.Errorf("failed to read contacts of %s %s: %w", kind, ownerID, err)
	}
	for _, c := range siblings {
		if c.ID == keepID || c.Role != domain.ContactRolePrimary {
			continue
		}
		if _, err := s.contacts.Update(ctx, c.ID, map[string]any{"role": domain.ContactRoleDecisionMaker}); err != nil {
			return mapper.FormatError("contact", "demote", err)
		}
		s.logger.Info("Primary contact demoted", zap.String("contact_id", c.ID))
	}
	return nil
}

// Transfer moves a contact to a different company in a single update that
// clears one owner reference and sets the other. A primary contact is demoted
// when the target already has a primary.
func (s *ContactService) Transfer(ctx context.Context, id string, req *domain.TransferContactRequest) (*domain.Contact, error) {
	kind, targetID, err := ownerOf(req.LeadCompany, req.ClientAccount)
	if err != nil {
		return nil, err
	}
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.ownerExists(ctx, kind, targetID); err != nil {
		return nil, err
	}

	demote := false
	if contact.Role == domain.ContactRolePrimary {
		demote, err = s.hasPrimary(ctx, kind, targetID, id)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.contacts.Update(ctx, id, transferPayload(kind, targetID, demote))
	if err != nil {
		return nil, mapper.FormatError("contact", "transfer", err)
	}
	s.logger.Info("Contact transferred",
		zap.String("contact_id", id),
		zap.String("owner_kind", string(kind)),
		zap.String("owner_id", targetID),
		zap.Bool("demoted", demote),
	)
	return updated, nil
}

func (s *ContactService) hasPrimary(ctx context.Context, kind domain.OwnerKind, ownerID, exceptID string) (bool, error) {
	contacts, err := s.contacts.OwnedBy(ctx, kind, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to read contacts of %s %s: %w", kind, ownerID, err)
	}
	for _, c := range contacts {
		if c.ID != exceptID && c.Role == domain.ContactRolePrimary {
			return true, nil
		}
	}
	return false, nil
}

func (s *ContactService) ownerExists(ctx context.Context, kind domain.OwnerKind, id string) error {
	var err error
	switch kind {
	case domain.OwnerLeadCompany:
		_, err = s.leads.GetByID(ctx, id)
	case domain.OwnerClientAccount:
		_, err = s.accounts.GetByID(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return nil
}

// transferPayload sets the target owner and clears the other reference
func transferPayload(kind domain.OwnerKind, targetID string, demote bool) map[string]any {
	payload := map[string]any{
		"leadCompany":   nil,
		"clientAccount": nil,
	}
	payload[string(kind)] = targetID
	if demote {
		payload["role"] = domain.ContactRoleDecisionMaker
	}
	return payload
}

// ownerOf validates that exactly one of the two owner ids is set
func ownerOf(leadID, accountID string) (domain.OwnerKind, string, error) {
	leadID, accountID = strings.TrimSpace(leadID), strings.TrimSpace(accountID)
	switch {
	case leadID != "" && accountID == "":
		return domain.OwnerLeadCompany, leadID, nil
	case accountID != "" && leadID == "":
		return domain.OwnerClientAccount, accountID, nil
	}
	return domain.OwnerNone, "", ErrInvalidOwner
}

// BulkUpdateStatus updates contacts one at a time and stops at the first
// failure. Earlier writes stay committed; later ids are reported as skipped.
func (s *ContactService) BulkUpdateStatus(ctx context.Context, req *domain.BulkContactStatusRequest) *domain.BulkResult {
	return runBulk(ctx, req.IDs, s.logger, func(ctx context.Context, id string) error {
		_, err := s.contacts.Update(ctx, id, map[string]any{"status": req.Status})
		return err
	})
}

// GetEngagementScore weights the contact's activities of the last 30 days
// (MEETING 10, CALL 8, EMAIL 5, NOTE 3, other 2) and caps the sum at 100
func (s *ContactService) GetEngagementScore(ctx context.Context, contactID string) (*domain.EngagementScore, error) {
	if _, err := s.contacts.GetByID(ctx, contactID); err != nil {
		return nil, notFound(err)
	}

	since := s.now().Add(-engagementWindow)
	out := &domain.EngagementScore{
		ContactID: contactID,
		Breakdown: map[domain.ActivityType]int{},
		Since:     since,
	}
	for _, a := range s.activities.ContactSince(ctx, contactID, since) {
		if a.OccurredAt().Before(since) {
			continue
		}
		weight, ok := engagementWeights[a.ActivityType]
		if !ok {
			weight = defaultEngagementWeight
		}
		out.ActivityCount++
		out.Breakdown[a.ActivityType]++
		out.Score += weight
	}
	if out.Score > 100 {
		out.Score = 100
	}
	return out, nil
}

// FindDuplicates pairs the first contact seen with each later contact sharing
// its email, compared trimmed and case-insensitively. Blank emails are ignored.
func (s *ContactService) FindDuplicates(ctx context.Context) []domain.DuplicatePair {
	contacts := s.contacts.All(ctx)

	first := make(map[string]int, len(contacts))
	pairs := []domain.DuplicatePair{}
	for i := range contacts {
		key := strings.ToLower(strings.TrimSpace(contacts[i].Email))
		if key == "" {
			continue
		}
		idx, seen := first[key]
		if !seen {
			first[key] = i
			continue
		}
		pairs = append(pairs, domain.DuplicatePair{
			Email:     key,
			Original:  contacts[idx],
			Duplicate: contacts[i],
		})
	}
	return pairs
}

func (s *ContactService) GetStats(ctx context.Context) *domain.ContactStats {
	contacts := s.contacts.All(ctx)

	out := &domain.ContactStats{
		Total:    len(contacts),
		ByRole:   map[domain.ContactRole]int{},
		ByStatus: map[domain.ContactStatus]int{},
	}
	for i := range contacts {
		c := &contacts[i]
		if c.Role != "" {
			out.ByRole[c.Role]++
		}
		if c.Status != "" {
			out.ByStatus[c.Status]++
		}
		if c.Role == domain.ContactRolePrimary {
			out.PrimaryCount++
		}
		if kind, _ := c.Owner(); kind == domain.OwnerNone {
			out.WithoutOwner++
		}
		if strings.TrimSpace(c.Email) == "" {
			out.WithoutEmails++
		}
	}
	return out
}
