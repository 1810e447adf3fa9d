package storage

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/telemetry"
)

var tracer = telemetry.GetTracer("mingus/storage")

// AnalyticsFilter narrows a rollup to one career field; nil means all.
type AnalyticsFilter struct {
	Field *models.CareerField
}

// FieldRollup is the per-field analytics aggregate: how many postings
// were persisted, the average salary uplift over the searcher's
// current salary, and the average composite score.
type FieldRollup struct {
	Field     models.CareerField `json:"field"`
	Count     uint64             `json:"count"`
	AvgUplift float64            `json:"avg_uplift"`
	AvgScore  float64            `json:"avg_score"`
}

// Store is the persistence contract the engine depends on. Postings
// upsert by fingerprint, profiles by normalized company name.
type Store interface {
	UpsertPostings(ctx context.Context, criteria models.SearchCriteria, postings []models.JobPosting) error
	UpsertProfile(ctx context.Context, profile models.CompanyProfile) error
	TopK(ctx context.Context, criteriaHash string, k int) ([]models.JobPosting, error)
	Analytics(ctx context.Context, filter AnalyticsFilter) ([]FieldRollup, error)
	PurgeExpired(ctx context.Context, retention time.Duration) (uint64, error)
}

type ClickHouseStore struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func NewClickHouseStore(conn clickhouse.Conn, logger *zap.Logger) *ClickHouseStore {
	return &ClickHouseStore{conn: conn, logger: logger}
}

// UpsertPostings writes scored postings keyed by fingerprint. The
// ReplacingMergeTree keeps the newest row per fingerprint, so a repeat
// upsert overwrites score and breakdown; the first-seen timestamp is
// carried forward from any existing row so it survives the replacement.
func (s *ClickHouseStore) UpsertPostings(ctx context.Context, criteria models.SearchCriteria, postings []models.JobPosting) error {
	if len(postings) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "ClickHouseStore.UpsertPostings")
	defer span.End()
	span.SetAttributes(telemetry.Int("postings.count", len(postings)))

	firstSeen, err := s.firstSeenTimestamps(ctx, postings)
	if err != nil {
		return errors.Persistence("loading first-seen timestamps", err)
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO postings (
			fingerprint, criteria_hash, title, company, location,
			salary_min, salary_max, posted_at, first_seen_at, sources,
			description, remote, msa_fit, career_field, current_salary,
			score, salary_fit, msa_fit_score, company_quality, remote_fit,
			updated_at
		)
	`)
	if err != nil {
		return errors.Persistence("preparing postings batch", err)
	}

	now := time.Now()
	criteriaHash := criteria.Hash()
	for _, posting := range postings {
		var salaryMin, salaryMax *float64
		if posting.Salary != nil {
			salaryMin = &posting.Salary.Min
			salaryMax = &posting.Salary.Max
		}

		seenAt := posting.PostedAt
		if existing, ok := firstSeen[posting.Fingerprint]; ok && existing.Before(seenAt) {
			seenAt = existing
		}

		if err := batch.Append(
			posting.Fingerprint,
			criteriaHash,
			posting.Title,
			posting.Company,
			posting.Location,
			salaryMin,
			salaryMax,
			posting.PostedAt,
			seenAt,
			posting.Sources,
			posting.Description,
			string(posting.Remote),
			string(posting.MSAFit),
			string(criteria.Field),
			criteria.CurrentSalary,
			posting.Score,
			posting.Breakdown.SalaryFit,
			posting.Breakdown.MSAFit,
			posting.Breakdown.CompanyQuality,
			posting.Breakdown.RemoteFit,
			now,
		); err != nil {
			return errors.Persistence("appending posting to batch", err)
		}
	}

	if err := batch.Send(); err != nil {
		return errors.Persistence("sending postings batch", err)
	}
	return nil
}

func (s *ClickHouseStore) firstSeenTimestamps(ctx context.Context, postings []models.JobPosting) (map[string]time.Time, error) {
	fingerprints := make([]string, 0, len(postings))
	for _, posting := range postings {
		fingerprints = append(fingerprints, posting.Fingerprint)
	}

	rows, err := s.conn.Query(ctx, `
		SELECT fingerprint, min(first_seen_at)
		FROM postings
		WHERE fingerprint IN (?)
		GROUP BY fingerprint
	`, fingerprints)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	firstSeen := make(map[string]time.Time)
	for rows.Next() {
		var fingerprint string
		var seenAt time.Time
		if err := rows.Scan(&fingerprint, &seenAt); err != nil {
			return nil, err
		}
		firstSeen[fingerprint] = seenAt
	}
	return firstSeen, rows.Err()
}

func (s *ClickHouseStore) UpsertProfile(ctx context.Context, profile models.CompanyProfile) error {
	ctx, span := tracer.Start(ctx, "ClickHouseStore.UpsertProfile")
	defer span.End()

	degraded := uint8(0)
	if profile.Degraded {
		degraded = 1
	}

	if err := s.conn.Exec(ctx, `
		INSERT INTO company_profiles (
			company, diversity_score, growth_score, rating_score,
			sources, refreshed_at, degraded
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		profile.Company,
		profile.DiversityScore,
		profile.GrowthScore,
		profile.RatingScore,
		profile.Sources,
		profile.RefreshedAt,
		degraded,
	); err != nil {
		return errors.Persistence("inserting company profile", err)
	}
	return nil
}

// TopK returns the highest-scored postings for a criteria hash in the
// engine's deterministic order: score, salary midpoint, posted date,
// fingerprint.
func (s *ClickHouseStore) TopK(ctx context.Context, criteriaHash string, k int) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "ClickHouseStore.TopK")
	defer span.End()
	span.SetAttributes(telemetry.Int("k", k))

	rows, err := s.conn.Query(ctx, `
		SELECT
			fingerprint, title, company, location,
			salary_min, salary_max, posted_at, sources, description,
			remote, msa_fit, score,
			salary_fit, msa_fit_score, company_quality, remote_fit
		FROM postings FINAL
		WHERE criteria_hash = ?
		ORDER BY
			score DESC,
			(coalesce(salary_min, 0) + coalesce(salary_max, 0)) / 2 DESC,
			posted_at DESC,
			fingerprint ASC
		LIMIT ?
	`, criteriaHash, k)
	if err != nil {
		return nil, errors.Persistence("querying top postings", err)
	}
	defer rows.Close()

	var postings []models.JobPosting
	for rows.Next() {
		var posting models.JobPosting
		var salaryMin, salaryMax *float64
		var remote, msaFit string
		if err := rows.Scan(
			&posting.Fingerprint, &posting.Title, &posting.Company, &posting.Location,
			&salaryMin, &salaryMax, &posting.PostedAt, &posting.Sources, &posting.Description,
			&remote, &msaFit, &posting.Score,
			&posting.Breakdown.SalaryFit, &posting.Breakdown.MSAFit,
			&posting.Breakdown.CompanyQuality, &posting.Breakdown.RemoteFit,
		); err != nil {
			return nil, errors.Persistence("scanning posting row", err)
		}
		if salaryMin != nil && salaryMax != nil {
			posting.Salary = &models.SalaryRange{Min: *salaryMin, Max: *salaryMax}
		}
		posting.Remote = models.RemoteMode(remote)
		posting.MSAFit = models.MSAFit(msaFit)
		postings = append(postings, posting)
	}
	return postings, rows.Err()
}

// Analytics aggregates persisted postings by career field. Uplift is
// the posting midpoint relative to the searcher's salary at the time
// the posting was scored; unlisted salaries are excluded from it.
func (s *ClickHouseStore) Analytics(ctx context.Context, filter AnalyticsFilter) ([]FieldRollup, error) {
	ctx, span := tracer.Start(ctx, "ClickHouseStore.Analytics")
	defer span.End()

	query := `
		SELECT
			career_field,
			count() AS postings,
			avgIf(
				(salary_min + salary_max) / 2 / current_salary - 1,
				salary_min IS NOT NULL AND current_salary > 0
			) AS avg_uplift,
			avg(score) AS avg_score
		FROM postings FINAL
	`
	args := []interface{}{}
	if filter.Field != nil {
		query += " WHERE career_field = ?"
		args = append(args, string(*filter.Field))
	}
	query += " GROUP BY career_field ORDER BY career_field"

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Persistence("querying analytics rollup", err)
	}
	defer rows.Close()

	var rollups []FieldRollup
	for rows.Next() {
		var rollup FieldRollup
		var field string
		if err := rows.Scan(&field, &rollup.Count, &rollup.AvgUplift, &rollup.AvgScore); err != nil {
			return nil, errors.Persistence("scanning rollup row", err)
		}
		rollup.Field = models.CareerField(field)
		rollups = append(rollups, rollup)
	}
	return rollups, rows.Err()
}

// PurgeExpired deletes postings past the retention horizon, measured
// from first sighting.
func (s *ClickHouseStore) PurgeExpired(ctx context.Context, retention time.Duration) (uint64, error) {
	ctx, span := tracer.Start(ctx, "ClickHouseStore.PurgeExpired")
	defer span.End()

	cutoff := time.Now().Add(-retention)

	var count uint64
	row := s.conn.QueryRow(ctx,
		"SELECT count() FROM postings FINAL WHERE first_seen_at < ?", cutoff)
	if err := row.Scan(&count); err != nil {
		return 0, errors.Persistence("counting expired postings", err)
	}

	if err := s.conn.Exec(ctx,
		"DELETE FROM postings WHERE first_seen_at < ?", cutoff); err != nil {
		return 0, errors.Persistence("purging expired postings", err)
	}

	s.logger.Info("purged expired postings",
		zap.Uint64("count", count),
		zap.Time("cutoff", cutoff))
	return count, nil
}
