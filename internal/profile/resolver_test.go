package profile

import (
	"context"
	"encoding"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/cache"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	marshaler, ok := value.(encoding.BinaryMarshaler)
	if !ok {
		return cache.ErrInvalidValue
	}
	data, err := marshaler.MarshalBinary()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memCache) Get(ctx context.Context, key string, value interface{}) error {
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrNotFound
	}
	unmarshaler, ok := value.(encoding.BinaryUnmarshaler)
	if !ok {
		return cache.ErrInvalidValue
	}
	return unmarshaler.UnmarshalBinary(data)
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	return nil
}

func (c *memCache) Close() error { return nil }

// countingSource counts outbound fetches and can block them on a gate.
type countingSource struct {
	mu      sync.Mutex
	calls   int
	gate    chan struct{}
	profile models.CompanyProfile
	err     error
}

func (s *countingSource) FetchProfile(ctx context.Context, company string) (models.CompanyProfile, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return models.CompanyProfile{}, s.err
	}
	profile := s.profile
	profile.Company = company
	return profile, nil
}

func (s *countingSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestResolveCollapsesConcurrentLookups(t *testing.T) {
	source := &countingSource{
		gate:    make(chan struct{}),
		profile: models.CompanyProfile{RatingScore: 0.8},
	}
	resolver := NewResolver(source, newMemCache(), time.Hour, zap.NewNop())

	const concurrency = 20
	results := make([]models.CompanyProfile, concurrency)
	var started, done sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i] = resolver.Resolve(context.Background(), "Acme Corp")
		}(i)
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond) // let every goroutine reach the collapse point
	close(source.gate)
	done.Wait()

	assert.Equal(t, 1, source.callCount(), "concurrent demand must collapse to one fetch")
	for _, result := range results {
		assert.Equal(t, 0.8, result.RatingScore)
	}
}

func TestResolveCacheHitSkipsFetch(t *testing.T) {
	source := &countingSource{profile: models.CompanyProfile{RatingScore: 0.8}}
	mem := newMemCache()
	resolver := NewResolver(source, mem, time.Hour, zap.NewNop())

	cached := models.CompanyProfile{
		Company:     "acme corp",
		RatingScore: 0.9,
		RefreshedAt: time.Now(),
	}
	require.NoError(t, mem.Set(context.Background(), cache.ProfileKey("acme corp"), cached, 0))

	result := resolver.Resolve(context.Background(), "Acme Corp")
	assert.Equal(t, 0.9, result.RatingScore)
	assert.Equal(t, 0, source.callCount())
}

func TestResolveStaleEntryRefetchesAndMerges(t *testing.T) {
	source := &countingSource{profile: models.CompanyProfile{GrowthScore: 0.7}}
	mem := newMemCache()
	resolver := NewResolver(source, mem, time.Hour, zap.NewNop())

	stale := models.CompanyProfile{
		Company:        "acme corp",
		DiversityScore: 0.6,
		RefreshedAt:    time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, mem.Set(context.Background(), cache.ProfileKey("acme corp"), stale, 0))

	result := resolver.Resolve(context.Background(), "Acme Corp")
	assert.Equal(t, 1, source.callCount())
	assert.Equal(t, 0.7, result.GrowthScore, "fresh field from the new fetch")
	assert.Equal(t, 0.6, result.DiversityScore, "field the new fetch lacked survives from the stale entry")
}

func TestResolveFetchFailureDegradesToNeutral(t *testing.T) {
	source := &countingSource{err: errors.ProfileFetch("source down", nil)}
	resolver := NewResolver(source, newMemCache(), time.Hour, zap.NewNop())

	result := resolver.Resolve(context.Background(), "Acme Corp")
	assert.True(t, result.Degraded)
	assert.Equal(t, 0.5, result.DiversityScore)
	assert.Equal(t, 0.5, result.GrowthScore)
	assert.Equal(t, 0.5, result.RatingScore)
}

func TestResolveSecondCallHitsCache(t *testing.T) {
	source := &countingSource{profile: models.CompanyProfile{RatingScore: 0.8}}
	resolver := NewResolver(source, newMemCache(), time.Hour, zap.NewNop())

	first := resolver.Resolve(context.Background(), "Acme Corp")
	second := resolver.Resolve(context.Background(), "Acme Corp")

	assert.Equal(t, 1, source.callCount())
	assert.Equal(t, first.RatingScore, second.RatingScore)
}
