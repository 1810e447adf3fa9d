package profile

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/cache"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/telemetry"
)

var tracer = telemetry.GetTracer("mingus/profile")

// Source fetches company metadata from an external data source.
type Source interface {
	FetchProfile(ctx context.Context, company string) (models.CompanyProfile, error)
}

// Resolver looks up company profiles cache-aside with per-key request
// collapsing: under concurrent demand for the same uncached company,
// exactly one outbound fetch is in flight and every caller shares its
// result. A failed fetch degrades to a neutral profile and never fails
// the surrounding search.
type Resolver struct {
	source Source
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

func NewResolver(source Source, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		source: source,
		cache:  c,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Resolve returns the profile for a company, fetching and caching it
// when missing or past its TTL. The returned profile may be degraded
// but the call itself never fails.
func (r *Resolver) Resolve(ctx context.Context, company string) models.CompanyProfile {
	ctx, span := tracer.Start(ctx, "Resolver.Resolve")
	defer span.End()

	normalized := models.NormalizeKey(company)
	span.SetAttributes(telemetry.String("company", normalized))
	key := cache.ProfileKey(normalized)

	var cached models.CompanyProfile
	err := r.cache.Get(ctx, key, &cached)
	if err == nil && cached.Fresh(r.ttl, r.now()) {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		return cached
	}
	if err != nil && err != cache.ErrNotFound {
		span.RecordError(err)
		r.logger.Warn("profile cache read failed", zap.String("company", normalized), zap.Error(err))
	}

	result, fetchErr, _ := r.group.Do(key, func() (interface{}, error) {
		return r.fetchAndStore(ctx, normalized, key, err == nil, cached)
	})
	if fetchErr != nil {
		// fetchAndStore never returns an error; the neutral default
		// covers every failure path.
		r.logger.Error("unexpected profile resolution failure",
			zap.String("company", normalized), zap.Error(fetchErr))
		return models.NeutralProfile(normalized, r.now())
	}

	return result.(models.CompanyProfile)
}

func (r *Resolver) fetchAndStore(ctx context.Context, normalized, key string, haveStale bool, stale models.CompanyProfile) (interface{}, error) {
	fetched, err := r.source.FetchProfile(ctx, normalized)
	if err != nil {
		r.logger.Warn("profile fetch failed, degrading to neutral",
			zap.String("company", normalized), zap.Error(err))
		return models.NeutralProfile(normalized, r.now()), nil
	}

	fetched.Company = normalized
	fetched.RefreshedAt = r.now()
	if haveStale {
		fetched = models.MergeProfiles(fetched, stale)
	}

	// Cache expiry runs past the freshness TTL so a stale entry is
	// still available for field-level merging on the next refresh.
	if err := r.cache.Set(ctx, key, fetched, 2*r.ttl); err != nil {
		r.logger.Warn("failed to cache company profile",
			zap.String("company", normalized), zap.Error(err))
	}

	return fetched, nil
}
