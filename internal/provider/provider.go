package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/telemetry"
)

var tracer = telemetry.GetTracer("mingus/provider")

// RawPosting is a provider result after wire decoding but before
// canonical normalization. Zero salary bounds mean the listing did not
// publish compensation.
type RawPosting struct {
	Title        string
	Company      string
	Location     string
	SalaryMin    float64
	SalaryMax    float64
	PostedAt     time.Time
	Description  string
	RemotePolicy string
}

// Adapter is the uniform contract every listing source implements. The
// aggregator holds a list of these and never special-cases one source.
// An empty Fetch result is a valid success, not an error.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, criteria models.SearchCriteria) ([]RawPosting, error)
	Normalize(raw RawPosting) (models.JobPosting, error)
}

// Normalize converts a raw posting into the canonical model shared by
// all adapters: fingerprint identity, structured remote mode, and the
// contributing source recorded.
func Normalize(source string, raw RawPosting) (models.JobPosting, error) {
	if raw.Title == "" || raw.Company == "" {
		return models.JobPosting{}, errors.Provider(
			fmt.Sprintf("%s returned posting without title or company", source), nil)
	}

	var salary *models.SalaryRange
	if raw.SalaryMin > 0 || raw.SalaryMax > 0 {
		min, max := raw.SalaryMin, raw.SalaryMax
		if min == 0 {
			min = max
		}
		if max == 0 {
			max = min
		}
		salary = &models.SalaryRange{Min: min, Max: max}
	}

	remote := models.RemoteModeUnknown
	switch raw.RemotePolicy {
	case "remote":
		remote = models.RemoteModeRemote
	case "hybrid":
		remote = models.RemoteModeHybrid
	case "onsite", "on-site":
		remote = models.RemoteModeOnSite
	}

	return models.JobPosting{
		Fingerprint: models.ComputeFingerprint(raw.Company, raw.Title, raw.Location, salary),
		Title:       raw.Title,
		Company:     raw.Company,
		Location:    raw.Location,
		Salary:      salary,
		PostedAt:    raw.PostedAt,
		Sources:     []string{source},
		Description: raw.Description,
		Remote:      remote,
		MSAFit:      models.MSAFitNone,
	}, nil
}

// FetchWithRetry runs one adapter fetch under the per-provider retry
// budget: exponential backoff, transient failures only. Auth and
// malformed-request failures abort immediately.
func FetchWithRetry(ctx context.Context, adapter Adapter, criteria models.SearchCriteria, maxAttempts int, initialBackoff time.Duration, logger *zap.Logger) ([]RawPosting, error) {
	ctx, span := tracer.Start(ctx, "FetchWithRetry")
	defer span.End()
	span.SetAttributes(telemetry.String("provider", adapter.Name()))

	if maxAttempts < 1 {
		maxAttempts = 1
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialBackoff

	var result []RawPosting
	attempt := 0
	operation := func() error {
		attempt++
		raw, err := adapter.Fetch(ctx, criteria)
		if err != nil {
			span.RecordError(err)
			if !errors.Retryable(err) {
				return backoff.Permanent(err)
			}
			logger.Warn("provider fetch failed, will retry",
				zap.String("provider", adapter.Name()),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}
		result = raw
		return nil
	}

	wrapped := backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(maxAttempts-1)), ctx)
	if err := backoff.Retry(operation, wrapped); err != nil {
		return nil, err
	}

	span.SetAttributes(telemetry.Int("postings.count", len(result)))
	return result, nil
}

// decodeResponse maps an HTTP response onto the provider error
// taxonomy and decodes the body on success.
func decodeResponse(resp *http.Response, source string, out interface{}) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Auth(fmt.Sprintf("%s rejected credentials", source), nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return errors.RateLimit(fmt.Sprintf("%s rate limited the request", source), nil)
	case resp.StatusCode == http.StatusBadRequest:
		return errors.Validation(fmt.Sprintf("%s rejected the request as malformed", source), nil)
	case resp.StatusCode != http.StatusOK:
		return errors.Provider(fmt.Sprintf("%s returned status %d", source, resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Provider(fmt.Sprintf("decoding %s response", source), err)
	}
	return nil
}
