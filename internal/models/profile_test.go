package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNeutralProfileIsMidScale(t *testing.T) {
	now := time.Now()
	profile := NeutralProfile("Acme Corp", now)
	assert.Equal(t, "acme corp", profile.Company)
	assert.Equal(t, 0.5, profile.DiversityScore)
	assert.Equal(t, 0.5, profile.GrowthScore)
	assert.Equal(t, 0.5, profile.RatingScore)
	assert.True(t, profile.Degraded)
}

func TestFresh(t *testing.T) {
	now := time.Now()
	profile := CompanyProfile{RefreshedAt: now.Add(-time.Hour)}
	assert.True(t, profile.Fresh(2*time.Hour, now))
	assert.False(t, profile.Fresh(30*time.Minute, now))
}

func TestMergeProfilesPrefersNewerFields(t *testing.T) {
	older := CompanyProfile{
		Company:        "acme",
		DiversityScore: 0.9,
		GrowthScore:    0.4,
		RatingScore:    0.6,
		Sources:        []string{"glassdoor"},
		RefreshedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := CompanyProfile{
		Company:     "acme",
		GrowthScore: 0.8,
		RatingScore: 0.7,
		Sources:     []string{"levels"},
		RefreshedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	merged := MergeProfiles(older, newer)

	// Newer side wins where it set a value; gaps fall back to older.
	assert.Equal(t, 0.8, merged.GrowthScore)
	assert.Equal(t, 0.7, merged.RatingScore)
	assert.Equal(t, 0.9, merged.DiversityScore)
	assert.ElementsMatch(t, []string{"glassdoor", "levels"}, merged.Sources)
	assert.Equal(t, newer.RefreshedAt, merged.RefreshedAt)
}

func TestMergeProfilesSymmetricInArgumentOrder(t *testing.T) {
	a := CompanyProfile{RatingScore: 0.3, RefreshedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := CompanyProfile{RatingScore: 0.9, RefreshedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, MergeProfiles(a, b).RatingScore, MergeProfiles(b, a).RatingScore)
}

func TestMergeProfilesDegradedOnlyWhenBothDegraded(t *testing.T) {
	real := CompanyProfile{RatingScore: 0.9, RefreshedAt: time.Now()}
	degraded := CompanyProfile{Degraded: true, RefreshedAt: time.Now().Add(-time.Hour)}

	assert.False(t, MergeProfiles(real, degraded).Degraded)
	assert.True(t, MergeProfiles(degraded, degraded).Degraded)
}
