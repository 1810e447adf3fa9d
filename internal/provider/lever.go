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

// LeverAdapter fetches postings from the Lever postings API.
type LeverAdapter struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string
}

func NewLeverAdapter(baseURL string, timeout time.Duration, logger *zap.Logger) *LeverAdapter {
	return &LeverAdapter{
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		baseURL: baseURL,
	}
}

func (a *LeverAdapter) Name() string { return "lever" }

type leverPosting struct {
	Text       string `json:"text"`
	Company    string `json:"company"`
	Categories struct {
		Location   string `json:"location"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
	WorkplaceType    string `json:"workplaceType"`
	DescriptionPlain string `json:"descriptionPlain"`
	CreatedAt        int64  `json:"createdAt"`
	SalaryRange      *struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"salaryRange"`
}

func (a *LeverAdapter) Fetch(ctx context.Context, criteria models.SearchCriteria) ([]RawPosting, error) {
	ctx, span := tracer.Start(ctx, "LeverAdapter.Fetch")
	defer span.End()

	params := url.Values{}
	params.Set("mode", "json")
	params.Set("query", searchTerm(criteria.Field))
	requestURL := fmt.Sprintf("%s/postings/search?%s", a.baseURL, params.Encode())
	span.SetAttributes(telemetry.String("http.url", requestURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Provider("creating lever request", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Provider("executing lever request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			a.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	var postings []leverPosting
	if err := decodeResponse(resp, a.Name(), &postings); err != nil {
		return nil, err
	}

	raw := make([]RawPosting, 0, len(postings))
	for _, p := range postings {
		remotePolicy := ""
		switch p.WorkplaceType {
		case "remote":
			remotePolicy = "remote"
		case "hybrid":
			remotePolicy = "hybrid"
		case "onsite", "on-site":
			remotePolicy = "onsite"
		}

		rp := RawPosting{
			Title:        p.Text,
			Company:      p.Company,
			Location:     p.Categories.Location,
			PostedAt:     time.UnixMilli(p.CreatedAt),
			Description:  p.DescriptionPlain,
			RemotePolicy: remotePolicy,
		}
		if p.SalaryRange != nil {
			rp.SalaryMin = p.SalaryRange.Min
			rp.SalaryMax = p.SalaryRange.Max
		}
		raw = append(raw, rp)
	}

	a.logger.Debug("fetched lever postings", zap.Int("count", len(raw)))
	return raw, nil
}

func (a *LeverAdapter) Normalize(raw RawPosting) (models.JobPosting, error) {
	return Normalize(a.Name(), raw)
}

// searchTerm maps a career field to the free-text query providers
// expect. The enum is closed; every field must appear here.
func searchTerm(field models.CareerField) string {
	switch field {
	case models.FieldTechnology:
		return "software engineering"
	case models.FieldFinance:
		return "finance"
	case models.FieldHealthcare:
		return "healthcare"
	case models.FieldMarketing:
		return "marketing"
	case models.FieldOperations:
		return "operations"
	default:
		return string(field)
	}
}
