package aggregator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/provider"
)

// fanOutResult is the synchronized accumulator for concurrent adapter
// responses. Appends only; ordering is re-derived deterministically
// after all enrichment, never from arrival order.
type fanOutResult struct {
	mu       sync.Mutex
	postings []models.JobPosting
	health   models.ProviderHealth
}

func newFanOutResult() *fanOutResult {
	return &fanOutResult{health: make(models.ProviderHealth)}
}

func (r *fanOutResult) addPostings(postings []models.JobPosting) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postings = append(r.postings, postings...)
}

func (r *fanOutResult) recordHealth(status models.ProviderStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.health[status.Provider] = status
}

// fanOut queries every adapter concurrently, each under its own
// timeout and retry budget. A fully failed adapter is recorded as
// degraded; it never fails the call.
func (s *Service) fanOut(ctx context.Context, criteria models.SearchCriteria) *fanOutResult {
	ctx, span := tracer.Start(ctx, "Service.fanOut")
	defer span.End()

	result := newFanOutResult()

	var wg sync.WaitGroup
	for _, adapter := range s.adapters {
		wg.Add(1)
		go func(adapter provider.Adapter) {
			defer wg.Done()
			s.fetchFromAdapter(ctx, adapter, criteria, result)
		}(adapter)
	}
	wg.Wait()

	return result
}

func (s *Service) fetchFromAdapter(ctx context.Context, adapter provider.Adapter, criteria models.SearchCriteria, result *fanOutResult) {
	adapterCtx, cancel := context.WithTimeout(ctx, s.opts.ProviderTimeout)
	defer cancel()

	raw, err := provider.FetchWithRetry(
		adapterCtx, adapter, criteria,
		s.opts.ProviderRetries, s.opts.ProviderBackoff, s.logger)
	if err != nil {
		s.logger.Warn("provider degraded for this search",
			zap.String("provider", adapter.Name()),
			zap.Error(err))
		result.recordHealth(models.ProviderStatus{
			Provider:    adapter.Name(),
			Degraded:    true,
			Error:       err.Error(),
			LastSuccess: s.lastSuccessAt(adapter.Name()),
		})
		return
	}

	postings := make([]models.JobPosting, 0, len(raw))
	for _, rawPosting := range raw {
		posting, err := adapter.Normalize(rawPosting)
		if err != nil {
			s.logger.Warn("dropping unnormalizable posting",
				zap.String("provider", adapter.Name()),
				zap.Error(err))
			continue
		}
		postings = append(postings, posting)
	}

	result.addPostings(postings)

	now := time.Now()
	s.markSuccess(adapter.Name(), now)
	result.recordHealth(models.ProviderStatus{
		Provider:    adapter.Name(),
		Postings:    len(postings),
		LastSuccess: now,
	})
}
