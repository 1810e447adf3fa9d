package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
)

func testCriteria(increase float64, remoteOK bool) models.SearchCriteria {
	return models.SearchCriteria{
		CurrentSalary:  75000,
		TargetIncrease: increase,
		Field:          models.FieldTechnology,
		Level:          models.LevelMid,
		RemoteOK:       remoteOK,
	}
}

func testPosting(midpoint float64) models.JobPosting {
	return models.JobPosting{
		Salary: &models.SalaryRange{Min: midpoint - 5000, Max: midpoint + 5000},
		MSAFit: models.MSAFitNone,
		Remote: models.RemoteModeUnknown,
	}
}

func mustStrategy(t *testing.T, field models.CareerField, level models.ExperienceLevel) Strategy {
	t.Helper()
	strategy, err := StrategyFor(field, level)
	require.NoError(t, err)
	return strategy
}

func TestAllStrategyWeightsSumToOne(t *testing.T) {
	for _, field := range models.AllCareerFields {
		for _, level := range models.AllExperienceLevels {
			strategy, err := StrategyFor(field, level)
			require.NoError(t, err, "missing strategy for %s/%s", field, level)
			sum := strategy.SalaryWeight + strategy.MSAWeight +
				strategy.CompanyWeight + strategy.RemoteWeight
			assert.InDelta(t, 1.0, sum, 1e-9, "weights for %s/%s", field, level)
			assert.GreaterOrEqual(t, strategy.SalaryWeight, 0.0)
			assert.GreaterOrEqual(t, strategy.MSAWeight, 0.0)
			assert.GreaterOrEqual(t, strategy.CompanyWeight, 0.0)
			assert.GreaterOrEqual(t, strategy.RemoteWeight, 0.0)
		}
	}
}

func TestStrategyForRejectsUnknownCombination(t *testing.T) {
	_, err := StrategyFor("astrology", models.LevelMid)
	assert.Error(t, err)
}

func TestScoreIsDeterministic(t *testing.T) {
	criteria := testCriteria(0.25, true)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)
	posting := testPosting(96000)
	posting.MSAFit = models.MSAFitExact
	posting.Remote = models.RemoteModeRemote

	score1, breakdown1 := Score(posting, criteria, strategy)
	score2, breakdown2 := Score(posting, criteria, strategy)
	assert.Equal(t, score1, score2)
	assert.Equal(t, breakdown1, breakdown2)
}

func TestCompositeReconstructsFromBreakdown(t *testing.T) {
	criteria := testCriteria(0.25, true)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	postings := []models.JobPosting{
		testPosting(96000),
		testPosting(60000),
		{MSAFit: models.MSAFitSameState, Remote: models.RemoteModeHybrid},
	}
	for _, posting := range postings {
		composite, breakdown := Score(posting, criteria, strategy)
		reconstructed := strategy.SalaryWeight*breakdown.SalaryFit +
			strategy.MSAWeight*breakdown.MSAFit +
			strategy.CompanyWeight*breakdown.CompanyQuality +
			strategy.RemoteWeight*breakdown.RemoteFit
		assert.InDelta(t, composite, reconstructed, 1e-6)
	}
}

func TestSalaryFitMonotoneInTargetIncrease(t *testing.T) {
	strategy := mustStrategy(t, models.FieldTechnology, models.LevelMid)
	posting := testPosting(96000)

	var previous float64 = 2 // above any possible fit
	for _, increase := range []float64{0.15, 0.20, 0.25, 0.30, 0.35, 0.40, 0.45} {
		_, breakdown := Score(posting, testCriteria(increase, false), strategy)
		assert.LessOrEqual(t, breakdown.SalaryFit, previous,
			"raising the target must not raise salary fit (increase %v)", increase)
		previous = breakdown.SalaryFit
	}
}

func TestSalaryFitShortfallDecays(t *testing.T) {
	criteria := testCriteria(0.25, false)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	_, nearTarget := Score(testPosting(90000), criteria, strategy)
	_, farBelow := Score(testPosting(60000), criteria, strategy)
	assert.Greater(t, nearTarget.SalaryFit, farBelow.SalaryFit)
}

func TestSalaryFitExcessBonusIsCapped(t *testing.T) {
	criteria := testCriteria(0.25, false)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	_, large := Score(testPosting(200000), criteria, strategy)
	_, huge := Score(testPosting(900000), criteria, strategy)
	assert.LessOrEqual(t, large.SalaryFit, 1.0)
	assert.Equal(t, large.SalaryFit, huge.SalaryFit, "bonus caps out for outsized bands")
}

func TestSalaryFitAtTargetNearMaximum(t *testing.T) {
	criteria := testCriteria(0.25, false)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	// Target is 93750; a 93750 midpoint meets it exactly.
	_, breakdown := Score(testPosting(93750), criteria, strategy)
	assert.GreaterOrEqual(t, breakdown.SalaryFit, 0.95)
}

func TestUnlistedSalaryScoresNeutral(t *testing.T) {
	criteria := testCriteria(0.25, false)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	posting := models.JobPosting{MSAFit: models.MSAFitNone, Remote: models.RemoteModeUnknown}
	_, breakdown := Score(posting, criteria, strategy)
	assert.Equal(t, 0.5, breakdown.SalaryFit)
}

func TestMSABonusOrdering(t *testing.T) {
	criteria := testCriteria(0.25, false)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	matched := testPosting(96000)
	matched.MSAFit = models.MSAFitExact
	unmatched := testPosting(96000)
	unmatched.MSAFit = models.MSAFitNone

	matchedScore, matchedBreakdown := Score(matched, criteria, strategy)
	unmatchedScore, unmatchedBreakdown := Score(unmatched, criteria, strategy)

	assert.GreaterOrEqual(t, matchedBreakdown.MSAFit, unmatchedBreakdown.MSAFit)
	assert.Greater(t, matchedScore, unmatchedScore)
}

func TestRemoteFitCredit(t *testing.T) {
	criteria := testCriteria(0.25, true)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	score := func(mode models.RemoteMode, remoteOK bool) float64 {
		posting := testPosting(96000)
		posting.Remote = mode
		c := criteria
		c.RemoteOK = remoteOK
		_, breakdown := Score(posting, c, strategy)
		return breakdown.RemoteFit
	}

	assert.Equal(t, 1.0, score(models.RemoteModeRemote, true))
	assert.Equal(t, 0.5, score(models.RemoteModeHybrid, true))
	assert.Equal(t, 0.0, score(models.RemoteModeOnSite, true))
	assert.Equal(t, 0.0, score(models.RemoteModeUnknown, true),
		"unknown classification earns no credit even when remote is acceptable")
	assert.Equal(t, 0.0, score(models.RemoteModeRemote, false))
}

func TestCompanyQualityNeutralWhenDegradedOrMissing(t *testing.T) {
	criteria := testCriteria(0.25, false)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	missing := testPosting(96000)
	_, missingBreakdown := Score(missing, criteria, strategy)
	assert.Equal(t, 0.5, missingBreakdown.CompanyQuality)

	degraded := testPosting(96000)
	neutral := models.NeutralProfile("acme", missing.PostedAt)
	degraded.Profile = &neutral
	_, degradedBreakdown := Score(degraded, criteria, strategy)
	assert.Equal(t, 0.5, degradedBreakdown.CompanyQuality)
}

func TestCompanyQualityBlendsProfile(t *testing.T) {
	criteria := testCriteria(0.25, false)
	strategy := mustStrategy(t, criteria.Field, criteria.Level)

	posting := testPosting(96000)
	posting.Profile = &models.CompanyProfile{
		DiversityScore: 0.9,
		GrowthScore:    0.6,
		RatingScore:    0.9,
	}
	_, breakdown := Score(posting, criteria, strategy)
	assert.InDelta(t, 0.8, breakdown.CompanyQuality, 1e-9)
}
