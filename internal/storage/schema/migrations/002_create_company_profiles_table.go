package migrations

import "github.com/Jahnesta3rd/Mingus-2025-sub005/internal/storage/schema"

var CreateCompanyProfilesTable = schema.Migration{
	Version:     2,
	Description: "Create company profiles table",
	Up: `
		CREATE TABLE IF NOT EXISTS company_profiles (
			company String,
			diversity_score Float64,
			growth_score Float64,
			rating_score Float64,
			sources Array(String),
			refreshed_at DateTime,
			degraded UInt8,
			PRIMARY KEY (company)
		) ENGINE = ReplacingMergeTree(refreshed_at)
		ORDER BY (company)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS company_profiles`,
}

// All lists every migration in apply order.
var All = []schema.Migration{
	CreatePostingsTable,
	CreateCompanyProfilesTable,
}
