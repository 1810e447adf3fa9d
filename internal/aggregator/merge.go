package aggregator

import (
	"sort"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
)

// dedupe collapses postings with matching fingerprints: source lists
// are unioned, the most complete description wins, and the earliest
// posted date is kept as the posting's date.
func dedupe(postings []models.JobPosting) []models.JobPosting {
	byFingerprint := make(map[string]models.JobPosting, len(postings))
	for _, posting := range postings {
		existing, ok := byFingerprint[posting.Fingerprint]
		if !ok {
			byFingerprint[posting.Fingerprint] = posting
			continue
		}
		byFingerprint[posting.Fingerprint] = mergePostings(existing, posting)
	}

	merged := make([]models.JobPosting, 0, len(byFingerprint))
	for _, posting := range byFingerprint {
		merged = append(merged, posting)
	}
	return merged
}

func mergePostings(a, b models.JobPosting) models.JobPosting {
	merged := a

	if len(b.Description) > len(a.Description) {
		merged.Description = b.Description
	}
	if !b.PostedAt.IsZero() && (merged.PostedAt.IsZero() || b.PostedAt.Before(merged.PostedAt)) {
		merged.PostedAt = b.PostedAt
	}
	if merged.Remote == models.RemoteModeUnknown && b.Remote != models.RemoteModeUnknown {
		merged.Remote = b.Remote
	}

	seen := make(map[string]bool, len(a.Sources)+len(b.Sources))
	var sources []string
	for _, src := range append(append([]string(nil), a.Sources...), b.Sources...) {
		if !seen[src] {
			seen[src] = true
			sources = append(sources, src)
		}
	}
	sort.Strings(sources)
	merged.Sources = sources

	return merged
}

// rank orders postings deterministically: composite score descending,
// then salary midpoint descending, then posted date descending, then
// fingerprint ascending. The order is a pure function of the postings
// themselves, never of response arrival timing.
func rank(postings []models.JobPosting) {
	sort.Slice(postings, func(i, j int) bool {
		a, b := postings[i], postings[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if am, bm := a.Salary.Midpoint(), b.Salary.Midpoint(); am != bm {
			return am > bm
		}
		if !a.PostedAt.Equal(b.PostedAt) {
			return a.PostedAt.After(b.PostedAt)
		}
		return a.Fingerprint < b.Fingerprint
	})
}
