package aggregator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/classify"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/events"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/profile"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/provider"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/scoring"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/storage"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/telemetry"
)

var tracer = telemetry.GetTracer("mingus/aggregator")

// Options control the orchestration budget for one search.
type Options struct {
	ProviderTimeout    time.Duration
	ProviderRetries    int
	ProviderBackoff    time.Duration
	SearchDeadline     time.Duration
	TopK               int
	ProfileConcurrency int
}

func DefaultOptions() Options {
	return Options{
		ProviderTimeout:    10 * time.Second,
		ProviderRetries:    3,
		ProviderBackoff:    500 * time.Millisecond,
		SearchDeadline:     30 * time.Second,
		TopK:               50,
		ProfileConcurrency: 8,
	}
}

// Service orchestrates a search: concurrent provider fan-out,
// deduplication, enrichment, scoring, ranking, and persistence. It
// holds a flat list of adapters and never special-cases any source.
type Service struct {
	adapters  []provider.Adapter
	resolver  *profile.Resolver
	store     storage.Store
	publisher events.Publisher
	logger    *zap.Logger
	opts      Options

	mu          sync.Mutex
	lastSuccess map[string]time.Time
}

func NewService(adapters []provider.Adapter, resolver *profile.Resolver, store storage.Store, publisher events.Publisher, opts Options, logger *zap.Logger) *Service {
	return &Service{
		adapters:    adapters,
		resolver:    resolver,
		store:       store,
		publisher:   publisher,
		logger:      logger,
		opts:        opts,
		lastSuccess: make(map[string]time.Time),
	}
}

// Search runs the full pipeline for validated criteria and returns the
// top-ranked postings plus per-provider health. Provider failures
// degrade the result instead of failing it; the only terminal
// conditions are invalid criteria, storage unavailability, and every
// provider failing with nothing to show.
func (s *Service) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.JobPosting, models.ProviderHealth, error) {
	ctx, span := tracer.Start(ctx, "Service.Search")
	defer span.End()

	if err := criteria.Validate(); err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	strategy, err := scoring.StrategyFor(criteria.Field, criteria.Level)
	if err != nil {
		return nil, nil, err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SearchDeadline)
		defer cancel()
	}

	result := s.fanOut(ctx, criteria)
	health := result.health
	span.SetAttributes(telemetry.Int("postings.raw", len(result.postings)))

	if len(result.postings) == 0 {
		if health.AllDegraded() {
			return nil, health, errors.NoResults("every provider degraded and no postings were produced")
		}
		// Healthy providers, genuinely nothing matched.
		return []models.JobPosting{}, health, nil
	}

	postings := dedupe(result.postings)
	s.enrich(ctx, postings, criteria)

	for i := range postings {
		postings[i].Score, postings[i].Breakdown = scoring.Score(postings[i], criteria, strategy)
	}
	rank(postings)

	if err := s.persist(ctx, criteria, postings); err != nil {
		// Durable storage is part of the contract; the caller retries.
		span.RecordError(err)
		return nil, health, err
	}

	s.publish(ctx, criteria, postings, health)

	if len(postings) > s.opts.TopK {
		postings = postings[:s.opts.TopK]
	}

	s.logger.Info("search completed",
		zap.String("criteria_hash", criteria.Hash()),
		zap.Int("postings", len(postings)),
		zap.Int("providers", len(health)))
	return postings, health, nil
}

// enrich tags every posting with MSA fit and remote classification,
// then resolves company profiles concurrently. Profile lookups are the
// only other outbound I/O; the resolver degrades to neutral on any
// failure so enrichment never blocks the search.
func (s *Service) enrich(ctx context.Context, postings []models.JobPosting, criteria models.SearchCriteria) {
	ctx, span := tracer.Start(ctx, "Service.enrich")
	defer span.End()

	for i := range postings {
		postings[i].MSAFit = classify.GradeMSA(postings[i].Location, criteria.PreferredMSAs)
		postings[i].Remote = classify.ClassifyRemote(
			postings[i].Remote, postings[i].Location, postings[i].Description)
	}

	companies := make(map[string]bool)
	for i := range postings {
		companies[models.NormalizeKey(postings[i].Company)] = true
	}
	span.SetAttributes(telemetry.Int("companies.count", len(companies)))

	profiles := make(map[string]models.CompanyProfile, len(companies))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.opts.ProfileConcurrency)
	for company := range companies {
		wg.Add(1)
		go func(company string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			resolved := s.resolver.Resolve(ctx, company)
			mu.Lock()
			profiles[company] = resolved
			mu.Unlock()
		}(company)
	}
	wg.Wait()

	for i := range postings {
		if resolved, ok := profiles[models.NormalizeKey(postings[i].Company)]; ok {
			profileCopy := resolved
			postings[i].Profile = &profileCopy
		}
	}
}

// persist upserts postings and the profiles they reference. It runs
// detached from the search deadline: results that survived a deadline
// expiry are still worth storing.
func (s *Service) persist(ctx context.Context, criteria models.SearchCriteria, postings []models.JobPosting) error {
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()

	if err := s.store.UpsertPostings(persistCtx, criteria, postings); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, posting := range postings {
		if posting.Profile == nil || posting.Profile.Degraded || seen[posting.Profile.Company] {
			continue
		}
		seen[posting.Profile.Company] = true
		if err := s.store.UpsertProfile(persistCtx, *posting.Profile); err != nil {
			s.logger.Warn("failed to persist company profile",
				zap.String("company", posting.Profile.Company),
				zap.Error(err))
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, criteria models.SearchCriteria, postings []models.JobPosting, health models.ProviderHealth) {
	if s.publisher == nil {
		return
	}

	for _, posting := range postings {
		if err := s.publisher.PublishScoredPosting(ctx, posting); err != nil {
			s.logger.Warn("failed to publish scored posting",
				zap.String("fingerprint", posting.Fingerprint),
				zap.Error(err))
			break
		}
	}

	var degraded []string
	for name, status := range health {
		if status.Degraded {
			degraded = append(degraded, name)
		}
	}
	var topScore float64
	if len(postings) > 0 {
		topScore = postings[0].Score
	}
	event := events.SearchCompletedEvent{
		CriteriaHash:      criteria.Hash(),
		Field:             criteria.Field,
		Postings:          len(postings),
		DegradedProviders: degraded,
		TopScore:          topScore,
		CompletedAt:       time.Now(),
	}
	if err := s.publisher.PublishSearchCompleted(ctx, event); err != nil {
		s.logger.Warn("failed to publish search completed event", zap.Error(err))
	}
}

func (s *Service) markSuccess(providerName string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSuccess[providerName] = at
}

func (s *Service) lastSuccessAt(providerName string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSuccess[providerName]
}
