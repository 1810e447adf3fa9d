package migrations

import "github.com/Jahnesta3rd/Mingus-2025-sub005/internal/storage/schema"

var CreatePostingsTable = schema.Migration{
	Version:     1,
	Description: "Create postings table",
	Up: `
		CREATE TABLE IF NOT EXISTS postings (
			fingerprint String,
			criteria_hash String,
			title String,
			company String,
			location String,
			salary_min Nullable(Float64),
			salary_max Nullable(Float64),
			posted_at DateTime,
			first_seen_at DateTime,
			sources Array(String),
			description String,
			remote String,
			msa_fit String,
			career_field String,
			current_salary Float64,
			score Float64,
			salary_fit Float64,
			msa_fit_score Float64,
			company_quality Float64,
			remote_fit Float64,
			updated_at DateTime,
			PRIMARY KEY (fingerprint)
		) ENGINE = ReplacingMergeTree(updated_at)
		PARTITION BY toYYYYMM(first_seen_at)
		ORDER BY (fingerprint)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS postings`,
}
