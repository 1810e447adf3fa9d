package models

import (
	"encoding/json"
	"time"
)

// CompanyProfile is company-quality metadata keyed by normalized
// company name. Scores are normalized to [0, 1]. One profile is shared
// by every posting that references the company.
type CompanyProfile struct {
	Company        string    `json:"company"`
	DiversityScore float64   `json:"diversity_score"`
	GrowthScore    float64   `json:"growth_score"`
	RatingScore    float64   `json:"rating_score"`
	Sources        []string  `json:"sources"`
	RefreshedAt    time.Time `json:"refreshed_at"`
	Degraded       bool      `json:"degraded"`
}

func (p CompanyProfile) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

func (p *CompanyProfile) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}

// Fresh reports whether the profile is still within its TTL.
func (p CompanyProfile) Fresh(ttl time.Duration, now time.Time) bool {
	return now.Sub(p.RefreshedAt) < ttl
}

const neutralProfileScore = 0.5

// NeutralProfile is the degraded fallback used when no source could be
// reached: mid-scale on every dimension so company quality neither
// helps nor hurts the posting.
func NeutralProfile(company string, now time.Time) CompanyProfile {
	return CompanyProfile{
		Company:        NormalizeKey(company),
		DiversityScore: neutralProfileScore,
		GrowthScore:    neutralProfileScore,
		RatingScore:    neutralProfileScore,
		RefreshedAt:    now,
		Degraded:       true,
	}
}

// MergeProfiles combines two observations of the same company. Each
// field is taken from the more recently refreshed side when that side
// actually set it; sources are unioned.
func MergeProfiles(a, b CompanyProfile) CompanyProfile {
	newer, older := a, b
	if b.RefreshedAt.After(a.RefreshedAt) {
		newer, older = b, a
	}

	merged := newer
	if merged.DiversityScore == 0 {
		merged.DiversityScore = older.DiversityScore
	}
	if merged.GrowthScore == 0 {
		merged.GrowthScore = older.GrowthScore
	}
	if merged.RatingScore == 0 {
		merged.RatingScore = older.RatingScore
	}
	merged.Degraded = newer.Degraded && older.Degraded

	seen := make(map[string]bool, len(newer.Sources)+len(older.Sources))
	var sources []string
	for _, src := range append(append([]string(nil), newer.Sources...), older.Sources...) {
		if src != "" && !seen[src] {
			seen[src] = true
			sources = append(sources, src)
		}
	}
	merged.Sources = sources
	return merged
}
