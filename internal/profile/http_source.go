package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/telemetry"
)

// HTTPSource fetches company metadata from a company-data API that
// reports diversity, growth, and rating signals per company.
type HTTPSource struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
}

func NewHTTPSource(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	return &HTTPSource{
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		baseURL: baseURL,
	}
}

type companyResponse struct {
	Name           string    `json:"name"`
	DiversityScore float64   `json:"diversity_score"`
	GrowthScore    float64   `json:"growth_score"`
	Rating         float64   `json:"rating"`
	Source         string    `json:"source"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s *HTTPSource) FetchProfile(ctx context.Context, company string) (models.CompanyProfile, error) {
	ctx, span := tracer.Start(ctx, "HTTPSource.FetchProfile")
	defer span.End()
	span.SetAttributes(telemetry.String("company", company))

	requestURL := fmt.Sprintf("%s/companies?name=%s", s.baseURL, url.QueryEscape(company))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return models.CompanyProfile{}, errors.ProfileFetch("creating request", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return models.CompanyProfile{}, errors.ProfileFetch("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return models.CompanyProfile{}, errors.ProfileFetch(
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var decoded companyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.CompanyProfile{}, errors.ProfileFetch("decoding response", err)
	}

	profile := models.CompanyProfile{
		Company:        models.NormalizeKey(decoded.Name),
		DiversityScore: decoded.DiversityScore,
		GrowthScore:    decoded.GrowthScore,
		RatingScore:    decoded.Rating,
		RefreshedAt:    decoded.UpdatedAt,
	}
	if decoded.Source != "" {
		profile.Sources = []string{decoded.Source}
	}
	return profile, nil
}
