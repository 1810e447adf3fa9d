package aggregator

import (
	"context"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/classify"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/scoring"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/storage"
)

// CompanyProfile resolves a single company profile, possibly degraded.
func (s *Service) CompanyProfile(ctx context.Context, company string) models.CompanyProfile {
	return s.resolver.Resolve(ctx, company)
}

// FieldStrategy exposes the read-only weight vector for a combination,
// for transparency and testing.
func (s *Service) FieldStrategy(field models.CareerField, level models.ExperienceLevel) (scoring.Strategy, error) {
	return scoring.StrategyFor(field, level)
}

// ApplyMSATargeting attaches MSA fit grades to a posting list.
func (s *Service) ApplyMSATargeting(postings []models.JobPosting, preferredMSAs []string) []models.JobPosting {
	return classify.ApplyMSATargeting(postings, preferredMSAs)
}

// ClassifyRemote classifies a single posting's remote mode.
func (s *Service) ClassifyRemote(posting models.JobPosting) models.RemoteMode {
	return classify.ClassifyRemote(posting.Remote, posting.Location, posting.Description)
}

// TopK returns previously persisted results for a criteria hash.
func (s *Service) TopK(ctx context.Context, criteriaHash string, k int) ([]models.JobPosting, error) {
	return s.store.TopK(ctx, criteriaHash, k)
}

// Analytics returns persisted rollups by career field.
func (s *Service) Analytics(ctx context.Context, filter storage.AnalyticsFilter) ([]storage.FieldRollup, error) {
	return s.store.Analytics(ctx, filter)
}

// Health reports each configured provider's last-success timestamp.
// Providers that have never succeeded report a zero time.
func (s *Service) Health() models.ProviderHealth {
	health := make(models.ProviderHealth, len(s.adapters))
	for _, adapter := range s.adapters {
		last := s.lastSuccessAt(adapter.Name())
		health[adapter.Name()] = models.ProviderStatus{
			Provider:    adapter.Name(),
			Degraded:    last.IsZero(),
			LastSuccess: last,
		}
	}
	return health
}
