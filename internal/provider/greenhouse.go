package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/telemetry"
)

// GreenhouseAdapter fetches postings from the Greenhouse job board API.
// Greenhouse does not publish structured salary bands, so compensation
// is recovered from the posting body when it is mentioned there.
type GreenhouseAdapter struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
}

func NewGreenhouseAdapter(baseURL string, timeout time.Duration, logger *zap.Logger) *GreenhouseAdapter {
	return &GreenhouseAdapter{
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		baseURL: baseURL,
	}
}

func (a *GreenhouseAdapter) Name() string { return "greenhouse" }

type greenhouseResponse struct {
	Jobs []struct {
		Title       string `json:"title"`
		CompanyName string `json:"company_name"`
		Location    struct {
			Name string `json:"name"`
		} `json:"location"`
		Content   string    `json:"content"`
		UpdatedAt time.Time `json:"updated_at"`
	} `json:"jobs"`
}

func (a *GreenhouseAdapter) Fetch(ctx context.Context, criteria models.SearchCriteria) ([]RawPosting, error) {
	ctx, span := tracer.Start(ctx, "GreenhouseAdapter.Fetch")
	defer span.End()

	params := url.Values{}
	params.Set("content", "true")
	params.Set("q", searchTerm(criteria.Field))
	requestURL := fmt.Sprintf("%s/boards/search/jobs?%s", a.baseURL, params.Encode())
	span.SetAttributes(telemetry.String("http.url", requestURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Provider("creating greenhouse request", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Provider("executing greenhouse request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			a.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	var decoded greenhouseResponse
	if err := decodeResponse(resp, a.Name(), &decoded); err != nil {
		return nil, err
	}

	raw := make([]RawPosting, 0, len(decoded.Jobs))
	for _, job := range decoded.Jobs {
		min, max := parseSalaryText(job.Content)
		raw = append(raw, RawPosting{
			Title:       job.Title,
			Company:     job.CompanyName,
			Location:    job.Location.Name,
			SalaryMin:   min,
			SalaryMax:   max,
			PostedAt:    job.UpdatedAt,
			Description: job.Content,
		})
	}

	a.logger.Debug("fetched greenhouse postings", zap.Int("count", len(raw)))
	return raw, nil
}

func (a *GreenhouseAdapter) Normalize(raw RawPosting) (models.JobPosting, error) {
	return Normalize(a.Name(), raw)
}
