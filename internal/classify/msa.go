package classify

import (
	"strings"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
)

// GradeMSA grades a posting location against the preferred metro set.
// An exact match on the normalized metro name earns full credit, a
// different metro in the same state earns partial credit, anything
// else earns none. Remote acceptability is deliberately not consulted
// here; remote credit lives in its own scoring dimension.
func GradeMSA(location string, preferredMSAs []string) models.MSAFit {
	if len(preferredMSAs) == 0 {
		return models.MSAFitNone
	}

	normalized := models.NormalizeKey(location)
	locationState := stateOf(normalized)

	for _, msa := range preferredMSAs {
		if models.NormalizeKey(msa) == normalized {
			return models.MSAFitExact
		}
	}

	if locationState == "" {
		return models.MSAFitNone
	}
	for _, msa := range preferredMSAs {
		if stateOf(models.NormalizeKey(msa)) == locationState {
			return models.MSAFitSameState
		}
	}

	return models.MSAFitNone
}

// ApplyMSATargeting attaches an MSA fit grade to every posting in the
// slice, in place.
func ApplyMSATargeting(postings []models.JobPosting, preferredMSAs []string) []models.JobPosting {
	for i := range postings {
		postings[i].MSAFit = GradeMSA(postings[i].Location, preferredMSAs)
	}
	return postings
}

// stateOf extracts the two-letter state code from a "City, ST" style
// location, or returns empty when the location has no such suffix.
func stateOf(normalizedLocation string) string {
	idx := strings.LastIndex(normalizedLocation, ",")
	if idx < 0 {
		return ""
	}
	suffix := strings.TrimSpace(normalizedLocation[idx+1:])
	if len(suffix) != 2 {
		return ""
	}
	return suffix
}
