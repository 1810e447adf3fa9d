package scoring

import (
	"math"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
)

const (
	// Partial credit for a same-state metro match.
	sameStateCredit = 0.5
	// Partial credit for a hybrid posting when remote is acceptable.
	hybridCredit = 0.5
	// Salary fit awarded exactly at the target; the remaining headroom
	// is a capped bonus for exceeding it.
	atTargetFit   = 0.95
	excessCeiling = 0.5
	// Neutral salary fit when the posting lists no compensation.
	unlistedSalaryFit = 0.5
)

// Score computes the composite match score and its per-dimension
// breakdown for one posting. It is pure: identical inputs always give
// identical outputs, which the ranking order depends on.
func Score(posting models.JobPosting, criteria models.SearchCriteria, strategy Strategy) (float64, models.ScoreBreakdown) {
	breakdown := models.ScoreBreakdown{
		SalaryFit:      salaryFit(posting.Salary, criteria.TargetSalary()),
		MSAFit:         msaFit(posting.MSAFit),
		CompanyQuality: companyQuality(posting.Profile),
		RemoteFit:      remoteFit(posting.Remote, criteria.RemoteOK),
	}

	composite := strategy.SalaryWeight*breakdown.SalaryFit +
		strategy.MSAWeight*breakdown.MSAFit +
		strategy.CompanyWeight*breakdown.CompanyQuality +
		strategy.RemoteWeight*breakdown.RemoteFit

	return composite, breakdown
}

// salaryFit measures how the posting's midpoint compares to the target
// salary. Below target decays quadratically with the shortfall; at or
// above target it sits near the maximum with a small bonus that caps
// out at 50% excess so outsized bands cannot dominate the ranking.
func salaryFit(salary *models.SalaryRange, target float64) float64 {
	if salary == nil || target <= 0 {
		return unlistedSalaryFit
	}

	ratio := salary.Midpoint() / target
	if ratio >= 1 {
		excess := math.Min(ratio-1, excessCeiling) / excessCeiling
		return atTargetFit + (1-atTargetFit)*excess
	}
	return atTargetFit * ratio * ratio
}

func msaFit(grade models.MSAFit) float64 {
	switch grade {
	case models.MSAFitExact:
		return 1.0
	case models.MSAFitSameState:
		return sameStateCredit
	default:
		return 0
	}
}

// companyQuality blends the profile dimensions evenly. A missing
// profile scores the same as the degraded neutral default.
func companyQuality(profile *models.CompanyProfile) float64 {
	if profile == nil {
		return 0.5
	}
	return (profile.DiversityScore + profile.GrowthScore + profile.RatingScore) / 3
}

func remoteFit(mode models.RemoteMode, remoteOK bool) float64 {
	if !remoteOK {
		return 0
	}
	switch mode {
	case models.RemoteModeRemote:
		return 1.0
	case models.RemoteModeHybrid:
		return hybridCredit
	default:
		// Unknown is conservative: no credit without positive signal.
		return 0
	}
}
