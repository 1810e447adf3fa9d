package classify

import (
	"regexp"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
)

var (
	hybridPattern = regexp.MustCompile(`(?i)\bhybrid\b`)
	remotePattern = regexp.MustCompile(`(?i)(\bremote\b|\bwfh\b|work[- ]from[- ]home|fully distributed)`)
	onSitePattern = regexp.MustCompile(`(?i)(on[- ]?site|in[- ]office|in[- ]person)`)
)

// ClassifyRemote combines a provider-supplied structured flag with a
// keyword scan of the location and description. The structured flag
// wins when the provider set one; the scan only fills gaps. A posting
// that matches nothing stays Unknown, which earns no remote credit.
func ClassifyRemote(structured models.RemoteMode, location, description string) models.RemoteMode {
	if structured != models.RemoteModeUnknown && structured != "" {
		return structured
	}

	text := location + "\n" + description
	switch {
	case hybridPattern.MatchString(text):
		return models.RemoteModeHybrid
	case remotePattern.MatchString(text):
		return models.RemoteModeRemote
	case onSitePattern.MatchString(text):
		return models.RemoteModeOnSite
	default:
		return models.RemoteModeUnknown
	}
}
