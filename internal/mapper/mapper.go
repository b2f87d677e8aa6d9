package mapper

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/straye-as/crm-portal/internal/domain"
)

const day = 24 * time.Hour

// Initials returns the uppercased first letters of up to two words of name, or "NA".
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r := firstLetter(word)
		if r == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		n++
		if n == 2 {
			break
		}
	}
	if n == 0 {
		return "NA"
	}
	return b.String()
}

func firstLetter(word string) rune {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
	}
	return 0
}

// RelativeTime labels t relative to now: "Today" under one day, then days under
// seven, weeks under thirty, months beyond. A zero t yields "Never".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	days := int(now.Sub(t) / day)
	switch {
	case days < 1:
		return "Today"
	case days < 7:
		return plural(days, "day")
	case days < 30:
		return plural(days/7, "week")
	default:
		return plural(days/30, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Percent returns round(100*part/whole), or 0 when whole is 0
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// PercentChange compares current to previous: round(100*(cur-prev)/prev).
// With previous at 0 it returns 100 for any non-zero current and 0 otherwise.
func PercentChange(current, previous float64) int {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return int(math.Round(100 * (current - previous) / previous))
}

// LeadToCard builds a funnel card for a lead company
func LeadToCard(lead *domain.LeadCompany, now time.Time) domain.PipelineCard {
	last := lead.LastActivityAt.Time
	if last.IsZero() {
		last = lead.UpdatedAt
	}
	return domain.PipelineCard{
		ID:           lead.ID,
		Name:         lead.CompanyName,
		Company:      lead.CompanyName,
		Initials:     Initials(lead.CompanyName),
		Value:        lead.DealValue,
		LastActivity: RelativeTime(last, now),
	}
}

// DealToCard builds a funnel card for a deal; initials come from the company or contact
func DealToCard(deal *domain.Deal, now time.Time) domain.PipelineCard {
	display := deal.CompanyName()
	if display == "" && deal.Contact != nil {
		display = deal.Contact.Name
	}
	if display == "" {
		display = deal.Name
	}
	return domain.PipelineCard{
		ID:           deal.ID,
		Name:         deal.Name,
		Company:      display,
		Initials:     Initials(display),
		Value:        deal.Value,
		LastActivity: RelativeTime(deal.UpdatedAt, now),
	}
}

// DealToStageHistory builds the history row for a stage change
func DealToStageHistory(deal *domain.Deal, from domain.DealStage, tenant, userID, userName, notes string) *domain.DealStageHistory {
	h := &domain.DealStageHistory{
		DealID:        deal.ID,
		DealName:      deal.Name,
		Tenant:        tenant,
		ToStage:       deal.Stage,
		Value:         deal.Value,
		ChangedByID:   userID,
		ChangedByName: userName,
		Notes:         notes,
	}
	if from != "" {
		f := from
		h.FromStage = &f
	}
	return h
}

// LeadToClientAccount builds the account created when a lead converts
func LeadToClientAccount(lead *domain.LeadCompany) domain.CreateClientAccountRequest {
	return domain.CreateClientAccountRequest{
		CompanyName:       lead.CompanyName,
		Industry:          lead.Industry,
		Website:           lead.Website,
		Email:             lead.Email,
		Phone:             lead.Phone,
		Segment:           lead.Segment,
		HealthScore:       lead.HealthScore,
		AccountValue:      lead.DealValue,
		Notes:             lead.Notes,
		AssignedTo:        domain.RefID(lead.AssignedTo),
		ConvertedFromLead: lead.ID,
	}
}

// FormatError wraps err with the entity and operation that failed
func FormatError(entity, operation string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", operation, entity, err)
}
