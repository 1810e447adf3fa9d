package models

import "time"

// ProviderStatus records how one provider behaved during a search, and
// when it last succeeded across searches.
type ProviderStatus struct {
	Provider    string    `json:"provider"`
	Degraded    bool      `json:"degraded"`
	Error       string    `json:"error,omitempty"`
	Postings    int       `json:"postings"`
	LastSuccess time.Time `json:"last_success,omitempty"`
}

// ProviderHealth maps provider name to its status for one search call.
type ProviderHealth map[string]ProviderStatus

// AllDegraded reports whether every provider in the map failed.
func (h ProviderHealth) AllDegraded() bool {
	if len(h) == 0 {
		return true
	}
	for _, status := range h {
		if !status.Degraded {
			return false
		}
	}
	return true
}
