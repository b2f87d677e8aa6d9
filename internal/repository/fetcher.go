package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/straye-as/crm-portal/internal/auth"
	"github.com/straye-as/crm-portal/internal/backend"
	"github.com/straye-as/crm-portal/internal/domain"
	"go.uber.org/zap"
)

// ErrNotFound is returned by GetByID when a record is missing, outside the
// caller's tenant, or could not be read.
var ErrNotFound = errors.New("record not found")

// FallbackRecorder counts reads that degraded to an empty result
type FallbackRecorder interface {
	ReadFallback(collection string)
}

type nopRecorder struct{}

func (nopRecorder) ReadFallback(string) {}

// Options are shared by every record fetcher
type Options struct {
	// TenantField is the record field holding the tenant slug
	TenantField string
	// FanoutPageSize is the page size used by All and the other aggregation reads
	FanoutPageSize int
	Fallbacks      FallbackRecorder
}

func (o Options) withDefaults() Options {
	if o.FanoutPageSize <= 0 {
		o.FanoutPageSize = 1000
	}
	if o.Fallbacks == nil {
		o.Fallbacks = nopRecorder{}
	}
	return o
}

// fetcher implements the read and write contract shared by all collections:
// reads log and degrade to empty results, writes log and return the error.
type fetcher[T any] struct {
	client     *backend.Client
	collection string
	populate   []string
	opts       Options
	logger     *zap.Logger
}

func newFetcher[T any](client *backend.Client, collection string, populate []string, opts Options, logger *zap.Logger) *fetcher[T] {
	return &fetcher[T]{
		client:     client,
		collection: collection,
		populate:   populate,
		opts:       opts.withDefaults(),
		logger:     logger.With(zap.String("collection", collection)),
	}
}

func (f *fetcher[T]) scoped(ctx context.Context, q *backend.Query) *backend.Query {
	q = q.Clone()
	if len(q.Populate) == 0 {
		q.With(f.populate...)
	}
	return ApplyTenantFilter(ctx, q, f.opts.TenantField)
}

// fanout is the query used by aggregations: one page of FanoutPageSize records
func (f *fetcher[T]) fanout() *backend.Query {
	return backend.NewQuery(1, f.opts.FanoutPageSize)
}

func (f *fetcher[T]) list(ctx context.Context, q *backend.Query) *domain.ListResult[T] {
	env, err := f.client.List(ctx, f.collection, f.scoped(ctx, q))
	if err != nil {
		return f.degraded(ctx, "list", err)
	}
	return f.decodeList(env)
}

// listStrict is list for callers about to write based on the result: a failed
// read is returned instead of degrading to an empty slice
func (f *fetcher[T]) listStrict(ctx context.Context, q *backend.Query) ([]T, error) {
	env, err := f.client.List(ctx, f.collection, f.scoped(ctx, q))
	if err != nil {
		f.logger.Warn("Backend read failed", zap.String("operation", "list"), zap.Error(err))
		return nil, fmt.Errorf("list %s: %w", f.collection, err)
	}
	return f.decodeList(env).Data, nil
}

func (f *fetcher[T]) listPath(ctx context.Context, path string, q *backend.Query) *domain.ListResult[T] {
	env, err := f.client.ListPath(ctx, f.collection, path, f.scoped(ctx, q))
	if err != nil {
		return f.degraded(ctx, "list", err)
	}
	return f.decodeList(env)
}

func (f *fetcher[T]) all(ctx context.Context, q *backend.Query) []T {
	if q == nil {
		q = f.fanout()
	}
	return f.list(ctx, q).Data
}

func (f *fetcher[T]) degraded(ctx context.Context, op string, err error) *domain.ListResult[T] {
	f.opts.Fallbacks.ReadFallback(f.collection)
	f.logger.Warn("Backend read failed, returning empty result",
		zap.String("operation", op),
		zap.String("tenant", auth.EffectiveTenant(ctx)),
		zap.Error(err),
	)
	return domain.EmptyList[T]()
}

func (f *fetcher[T]) decodeList(env *backend.ListEnvelope) *domain.ListResult[T] {
	out := &domain.ListResult[T]{
		Data: make([]T, 0, len(env.Records)),
		Pagination: domain.Pagination{
			Page:      env.Pagination.Page,
			PageSize:  env.Pagination.PageSize,
			PageCount: env.Pagination.PageCount,
			Total:     env.Pagination.Total,
		},
	}
	for _, rec := range env.Records {
		item, err := backend.Decode[T](rec)
		if err != nil {
			f.logger.Warn("Skipping malformed record", zap.String("id", rec.ID()), zap.Error(err))
			continue
		}
		out.Data = append(out.Data, item)
	}
	return out
}

// get fetches one record. Scoped requests go through a filtered list so the
// tenant check happens on the backend.
func (f *fetcher[T]) get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	if auth.EffectiveTenant(ctx) != "" && f.opts.TenantField != "" {
		res := f.list(ctx, backend.NewQuery(1, 1).Where(id, "id"))
		if len(res.Data) == 0 {
			return nil, ErrNotFound
		}
		return &res.Data[0], nil
	}

	rec, err := f.client.Get(ctx, f.collection, id, (&backend.Query{}).With(f.populate...))
	if err != nil {
		if !backend.IsNotFound(err) {
			f.opts.Fallbacks.ReadFallback(f.collection)
			f.logger.Warn("Backend read failed", zap.String("operation", "get"), zap.String("id", id), zap.Error(err))
		}
		return nil, ErrNotFound
	}
	item, err := backend.Decode[T](rec)
	if err != nil {
		f.logger.Warn("Malformed record", zap.String("id", id), zap.Error(err))
		return nil, ErrNotFound
	}
	return &item, nil
}

func (f *fetcher[T]) create(ctx context.Context, payload any) (*T, error) {
	body, err := f.withTenant(ctx, payload)
	if err != nil {
		return nil, err
	}
	rec, err := f.client.Create(ctx, f.collection, body)
	if err != nil {
		f.logger.Error("Failed to create record", zap.Error(err))
		return nil, fmt.Errorf("create %s: %w", f.collection, err)
	}
	return f.decodeWritten(rec)
}

func (f *fetcher[T]) update(ctx context.Context, id string, payload any) (*T, error) {
	if err := f.checkScope(ctx, id); err != nil {
		return nil, err
	}
	rec, err := f.client.Update(ctx, f.collection, id, payload)
	if err != nil {
		f.logger.Error("Failed to update record", zap.String("id", id), zap.Error(err))
		if backend.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update %s %s: %w", f.collection, id, err)
	}
	return f.decodeWritten(rec)
}

func (f *fetcher[T]) delete(ctx context.Context, id string) error {
	if err := f.checkScope(ctx, id); err != nil {
		return err
	}
	if err := f.client.Delete(ctx, f.collection, id); err != nil {
		f.logger.Error("Failed to delete record", zap.String("id", id), zap.Error(err))
		if backend.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s %s: %w", f.collection, id, err)
	}
	return nil
}

// checkScope refuses writes to records outside the caller's tenant
func (f *fetcher[T]) checkScope(ctx context.Context, id string) error {
	if auth.EffectiveTenant(ctx) == "" || f.opts.TenantField == "" {
		return nil
	}
	if _, err := f.get(ctx, id); err != nil {
		return err
	}
	return nil
}

// withTenant stamps the tenant onto a create payload
func (f *fetcher[T]) withTenant(ctx context.Context, payload any) (any, error) {
	tenant := auth.EffectiveTenant(ctx)
	if tenant == "" || f.opts.TenantField == "" {
		return payload, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", f.collection, err)
	}
	body := map[string]any{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", f.collection, err)
	}
	body[f.opts.TenantField] = tenant
	return body, nil
}

func (f *fetcher[T]) decodeWritten(rec backend.Record) (*T, error) {
	if rec == nil {
		return nil, fmt.Errorf("%s: empty write response", f.collection)
	}
	item, err := backend.Decode[T](rec)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
