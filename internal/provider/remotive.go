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

// RemotiveAdapter fetches postings from the Remotive remote-jobs API.
// Everything it lists is remote by definition, so the structured flag
// is always set.
type RemotiveAdapter struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
}

func NewRemotiveAdapter(baseURL string, timeout time.Duration, logger *zap.Logger) *RemotiveAdapter {
	return &RemotiveAdapter{
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		baseURL: baseURL,
	}
}

func (a *RemotiveAdapter) Name() string { return "remotive" }

type remotiveResponse struct {
	Jobs []struct {
		Title                     string    `json:"title"`
		CompanyName               string    `json:"company_name"`
		CandidateRequiredLocation string    `json:"candidate_required_location"`
		Salary                    string    `json:"salary"`
		Description               string    `json:"description"`
		PublicationDate           time.Time `json:"publication_date"`
	} `json:"jobs"`
}

func (a *RemotiveAdapter) Fetch(ctx context.Context, criteria models.SearchCriteria) ([]RawPosting, error) {
	ctx, span := tracer.Start(ctx, "RemotiveAdapter.Fetch")
	defer span.End()

	params := url.Values{}
	params.Set("search", searchTerm(criteria.Field))
	requestURL := fmt.Sprintf("%s/remote-jobs?%s", a.baseURL, params.Encode())
	span.SetAttributes(telemetry.String("http.url", requestURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Provider("creating remotive request", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Provider("executing remotive request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			a.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	var decoded remotiveResponse
	if err := decodeResponse(resp, a.Name(), &decoded); err != nil {
		return nil, err
	}

	raw := make([]RawPosting, 0, len(decoded.Jobs))
	for _, job := range decoded.Jobs {
		min, max := parseSalaryText(job.Salary)
		raw = append(raw, RawPosting{
			Title:        job.Title,
			Company:      job.CompanyName,
			Location:     job.CandidateRequiredLocation,
			SalaryMin:    min,
			SalaryMax:    max,
			PostedAt:     job.PublicationDate,
			Description:  job.Description,
			RemotePolicy: "remote",
		})
	}

	a.logger.Debug("fetched remotive postings", zap.Int("count", len(raw)))
	return raw, nil
}

func (a *RemotiveAdapter) Normalize(raw RawPosting) (models.JobPosting, error) {
	return Normalize(a.Name(), raw)
}
