package service

import (
	"context"
	"math"
	"strings"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/mapper"
	"github.com/straye-as/crm-portal/internal/repository"
	"go.uber.org/zap"
)

// atRiskHealthScore is the health score below which an account counts as at risk
const atRiskHealthScore = 50

type ClientAccountService struct {
	accounts ClientAccountStore
	logger   *zap.Logger
}

func NewClientAccountService(accounts ClientAccountStore, logger *zap.Logger) *ClientAccountService {
	return &ClientAccountService{accounts: accounts, logger: logger}
}

func (s *ClientAccountService) List(ctx context.Context, params repository.ListParams) *domain.ListResult[domain.ClientAccount] {
	return s.accounts.List(ctx, params)
}

func (s *ClientAccountService) GetByID(ctx context.Context, id string) (*domain.ClientAccount, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return account, nil
}

func (s *ClientAccountService) GetByAssignee(ctx context.Context, userID string, params repository.ListParams) *domain.ListResult[domain.ClientAccount] {
	return s.accounts.GetByAssignee(ctx, userID, params)
}

func (s *ClientAccountService) Create(ctx context.Context, req *domain.CreateClientAccountRequest) (*domain.ClientAccount, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	account, err := s.accounts.Create(ctx, req)
	if err != nil {
		return nil, mapper.FormatError("client account", "create", err)
	}
	s.logger.Info("Client account created", zap.String("account_id", account.ID))
	return account, nil
}

func (s *ClientAccountService) Update(ctx context.Context, id string, req *domain.UpdateClientAccountRequest) (*domain.ClientAccount, error) {
	account, err := s.accounts.Update(ctx, id, req)
	if err != nil {
		return nil, mapper.FormatError("client account", "update", notFound(err))
	}
	return account, nil
}

func (s *ClientAccountService) Delete(ctx context.Context, id string) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return mapper.FormatError("client account", "delete", notFound(err))
	}
	return nil
}

func (s *ClientAccountService) GetStats(ctx context.Context) *domain.ClientAccountStats {
	accounts := s.accounts.All(ctx)

	out := &domain.ClientAccountStats{Total: len(accounts)}
	healthSum := 0
	for i := range accounts {
		a := &accounts[i]
		healthSum += a.HealthScore
		out.TotalAccountValue += a.AccountValue
		if a.HealthScore < atRiskHealthScore {
			out.AtRisk++
		}
		if domain.RefID(a.ConvertedFromLead) != "" {
			out.ConvertedFromLead++
		}
	}
	if out.Total > 0 {
		out.AverageHealthScore = int(math.Round(float64(healthSum) / float64(out.Total)))
	}
	return out
}
