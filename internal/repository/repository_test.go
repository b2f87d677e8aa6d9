package repository_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/repository"
	"github.com/straye-as/crm-portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []map[string]any
	handler  func(w http.ResponseWriter, r *http.Request)
}

func newFakeBackend(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*fakeBackend, *backend.Client) {
	t.Helper()
	fb := &fakeBackend{handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		fb.mu.Lock()
		fb.requests = append(fb.requests, r)
		fb.bodies = append(fb.bodies, body)
		fb.mu.Unlock()
		fb.handler(w, r)
	}))
	t.Cleanup(srv.Close)

	retry := backend.RetryConfig{MaxAttempts: 1, InitialBackoff: time.Millisecond}
	return fb, backend.NewClient(srv.URL, "token", zap.NewNop(), backend.WithRetry(retry))
}

func (fb *fakeBackend) last() (*http.Request, map[string]any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := len(fb.requests)
	return fb.requests[n-1], fb.bodies[n-1]
}

type countingFallbacks struct {
	mu    sync.Mutex
	count map[string]int
}

func (c *countingFallbacks) ReadFallback(collection string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == nil {
		c.count = map[string]int{}
	}
	c.count[collection]++
}

func tenantCtx(tenant string) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID: "7",
		Roles:  []auth.Role{auth.RoleSales},
		Tenant: tenant,
	})
}

func TestDealRepository_ListDecodesEnvelope(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"attributes":{"name":"Roof","stage":"PROPOSAL","value":1200,
				"clientAccount":{"data":{"id":3,"attributes":{"companyName":"Acme"}}}}}
		],"meta":{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":1}}}`))
	})

	repo := repository.NewDealRepository(client, repository.Options{}, zap.NewNop())
	res := repo.List(context.Background(), repository.ListParams{})

	require.Len(t, res.Data, 1)
	deal := res.Data[0]
	assert.Equal(t, "1", deal.ID)
	assert.Equal(t, domain.DealStageProposal, deal.Stage)
	assert.Equal(t, 1200.0, deal.Value)
	assert.Equal(t, "Acme", deal.CompanyName())
	assert.Equal(t, 1, res.Pagination.Total)
}

func TestDealRepository_AllToleratesNumericShapes(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"attributes":{"name":"Roof","stage":"PROPOSAL","value":1000,"probability":50}},
			{"id":2,"attributes":{"name":"Facade","stage":"NEGOTIATION","value":"2500.00","probability":62.5}},
			{"id":3,"attributes":{"name":"Windows","stage":"PROPOSAL","value":"5000","probability":"40"}}
		],"meta":{"pagination":{"page":1,"pageSize":1000,"pageCount":1,"total":3}}}`))
	})

	repo := repository.NewDealRepository(client, repository.Options{}, zap.NewNop())
	deals := repo.All(context.Background())

	require.Len(t, deals, 3)
	assert.Equal(t, 2500.0, deals[1].Value)
	assert.Equal(t, 62.5, deals[1].Probability)
	assert.Equal(t, 5000.0, deals[2].Value)
	assert.Equal(t, 40.0, deals[2].Probability)

	pipeline := service.NewDealService(repo, nil, zap.NewNop()).GetPipelineData(context.Background())
	assert.Equal(t, 3, pipeline.TotalDeals)
	assert.Equal(t, 8500.0, pipeline.TotalValue)
}

func TestLeadCompanyRepository_ListCoercesStringScores(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":4,"companyName":"Nordic AS","dealValue":"12500.50","score":"71","healthScore":80.6,"phone":4712345678}]`))
	})

	repo := repository.NewLeadCompanyRepository(client, repository.Options{}, zap.NewNop())
	res := repo.List(context.Background(), repository.ListParams{})

	require.Len(t, res.Data, 1)
	lead := res.Data[0]
	assert.Equal(t, 12500.5, lead.DealValue)
	assert.Equal(t, 71, lead.Score)
	assert.Equal(t, 81, lead.HealthScore)
	assert.Equal(t, "4712345678", lead.Phone)
}

func TestLeadCompanyRepository_ListDegradesOnFailure(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	fallbacks := &countingFallbacks{}

	repo := repository.NewLeadCompanyRepository(client, repository.Options{Fallbacks: fallbacks}, zap.NewNop())
	res := repo.List(context.Background(), repository.ListParams{Page: 2})

	require.NotNil(t, res)
	assert.Empty(t, res.Data)
	assert.Equal(t, domain.Pagination{}, res.Pagination)
	assert.Equal(t, 1, fallbacks.count["lead-companies"])
}

func TestLeadCompanyRepository_ListMalformedBody(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	repo := repository.NewLeadCompanyRepository(client, repository.Options{}, zap.NewNop())
	res := repo.List(context.Background(), repository.ListParams{})
	assert.Empty(t, res.Data)
}

func TestLeadCompanyRepository_GetByStatusBuildsFilter(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	repo := repository.NewLeadCompanyRepository(client, repository.Options{TenantField: "tenant"}, zap.NewNop())
	repo.GetByStatus(tenantCtx("stalbygg"), domain.LeadStatusQualified, repository.ListParams{Page: 3, PageSize: 10})

	r, _ := fb.last()
	q := r.URL.Query()
	assert.Equal(t, "QUALIFIED", q.Get("filters[status][$eq]"))
	assert.Equal(t, "stalbygg", q.Get("filters[tenant][$eq]"))
	assert.Equal(t, "3", q.Get("pagination[page]"))
	assert.Equal(t, "10", q.Get("pagination[pageSize]"))
	assert.Equal(t, "createdAt:desc", q.Get("sort[0]"))
}

func TestListParams_Normalized(t *testing.T) {
	p := repository.ListParams{Page: -1, PageSize: 5000}.Normalized()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, repository.MaxPageSize, p.PageSize)
	assert.Equal(t, repository.SortOrderDesc, p.SortOrder)

	p = repository.ListParams{}.Normalized()
	assert.Equal(t, repository.DefaultPageSize, p.PageSize)
}

func TestContactRepository_GetByLeadCompanyUsesCustomEndpoint(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":4,"firstName":"Ada","lastName":"Lovelace","leadCompany":5}]`))
	})

	repo := repository.NewContactRepository(client, repository.Options{}, zap.NewNop())
	res := repo.GetByLeadCompany(context.Background(), "5", repository.ListParams{})

	r, _ := fb.last()
	assert.Equal(t, "/api/contacts/lead-company/5", r.URL.Path)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Ada Lovelace", res.Data[0].FullName())
	assert.Equal(t, "5", domain.RefID(res.Data[0].LeadCompany))
}

func TestContactRepository_GetByIDNotFound(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"data":null,"error":{"status":404,"message":"Not Found"}}`))
	})
	fallbacks := &countingFallbacks{}

	repo := repository.NewContactRepository(client, repository.Options{Fallbacks: fallbacks}, zap.NewNop())
	c, err := repo.GetByID(context.Background(), "99")

	assert.Nil(t, c)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, fallbacks.count["contacts"])
}

func TestContactRepository_GetByIDReadFailure(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	fallbacks := &countingFallbacks{}

	repo := repository.NewContactRepository(client, repository.Options{Fallbacks: fallbacks}, zap.NewNop())
	_, err := repo.GetByID(context.Background(), "1")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 1, fallbacks.count["contacts"])
}

func TestDealRepository_GetByIDScopedToTenant(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[],"meta":{"pagination":{"page":1,"pageSize":1,"pageCount":0,"total":0}}}`))
	})

	repo := repository.NewDealRepository(client, repository.Options{TenantField: "tenant"}, zap.NewNop())
	_, err := repo.GetByID(tenantCtx("stalbygg"), "12")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	r, _ := fb.last()
	assert.Equal(t, "/api/deals", r.URL.Path)
	assert.Equal(t, "12", r.URL.Query().Get("filters[id][$eq]"))
	assert.Equal(t, "stalbygg", r.URL.Query().Get("filters[tenant][$eq]"))
}

func TestLeadCompanyRepository_CreateStampsTenant(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":8,"attributes":{"companyName":"Nordic AS","status":"NEW"}}}`))
	})

	repo := repository.NewLeadCompanyRepository(client, repository.Options{TenantField: "tenant"}, zap.NewNop())
	lead, err := repo.Create(tenantCtx("stalbygg"), domain.CreateLeadCompanyRequest{CompanyName: "Nordic AS"})
	require.NoError(t, err)
	assert.Equal(t, "8", lead.ID)

	r, body := fb.last()
	assert.Equal(t, http.MethodPost, r.Method)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Nordic AS", data["companyName"])
	assert.Equal(t, "stalbygg", data["tenant"])
}

func TestDealRepository_UpdateReturnsWriteError(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"status":400,"message":"stage is invalid"}}`))
	})

	repo := repository.NewDealRepository(client, repository.Options{}, zap.NewNop())
	_, err := repo.Update(context.Background(), "3", map[string]any{"stage": "BOGUS"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, backend.StatusCode(err))
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestDealRepository_DeleteNotFound(t *testing.T) {
	_, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	repo := repository.NewDealRepository(client, repository.Options{}, zap.NewNop())
	err := repo.Delete(context.Background(), "3")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDealRepository_AllUsesFanoutPage(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	repo := repository.NewDealRepository(client, repository.Options{}, zap.NewNop())
	deals := repo.All(context.Background())

	assert.NotNil(t, deals)
	r, _ := fb.last()
	assert.Equal(t, "1000", r.URL.Query().Get("pagination[pageSize]"))
	assert.Equal(t, "leadCompany", r.URL.Query().Get("populate[0]"))
}

func TestDealRepository_GetByCloseDateRange(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	repo := repository.NewDealRepository(client, repository.Options{}, zap.NewNop())
	repo.GetByCloseDateRange(context.Background(), from, to)

	r, _ := fb.last()
	q := r.URL.Query()
	assert.Equal(t, "2024-03-01T00:00:00Z", q.Get("filters[closeDate][$gte]"))
	assert.Equal(t, "2024-03-31T23:59:59Z", q.Get("filters[closeDate][$lte]"))
}

func TestTaskRepository_GetByAssigneeMatchesEitherRelation(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"Draft","status":"To Do","assignees":[{"id":4,"username":"kari"}]}]`))
	})

	repo := repository.NewTaskRepository(client, repository.Options{}, zap.NewNop())
	res := repo.GetByAssignee(context.Background(), "4", repository.ListParams{Search: "ignored"})

	r, _ := fb.last()
	q := r.URL.Query()
	assert.Equal(t, "4", q.Get("filters[$or][0][assignee][id][$eq]"))
	assert.Equal(t, "4", q.Get("filters[$or][1][assignees][id][$eq]"))
	require.Len(t, res.Data, 1)
	assert.Equal(t, "kari", res.Data[0].Assignees[0].Name)
}

func TestActivityRepository_GetUpcoming(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := repository.NewActivityRepository(client, repository.Options{}, zap.NewNop())
	repo.GetUpcoming(context.Background(), now, 5)

	r, _ := fb.last()
	q := r.URL.Query()
	assert.Equal(t, "PLANNED", q.Get("filters[status][$eq]"))
	assert.Equal(t, "2024-05-01T12:00:00Z", q.Get("filters[scheduledDate][$gte]"))
	assert.Equal(t, "scheduledDate:asc", q.Get("sort[0]"))
	assert.Equal(t, "5", q.Get("pagination[pageSize]"))
}

func TestActivityRepository_ContactSinceMatchesAnyActivityDate(t *testing.T) {
	fb, client := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"activityType":"MEETING","completedDate":"2024-04-20","createdAt":"2024-03-01T09:00:00Z"}]`))
	})

	since := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	repo := repository.NewActivityRepository(client, repository.Options{}, zap.NewNop())
	got := repo.ContactSince(context.Background(), "7", since)

	r, _ := fb.last()
	q := r.URL.Query()
	assert.Equal(t, "7", q.Get("filters[contact][id][$eq]"))
	assert.Equal(t, "2024-04-01", q.Get("filters[$or][0][completedDate][$gte]"))
	assert.Equal(t, "2024-04-01", q.Get("filters[$or][1][scheduledDate][$gte]"))
	assert.Equal(t, "2024-04-01T12:00:00Z", q.Get("filters[$or][2][createdAt][$gte]"))
	assert.Empty(t, q.Get("filters[createdAt][$gte]"))
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC), got[0].OccurredAt())
}
