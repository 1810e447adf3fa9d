package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
)

func TestClassifyRemoteStructuredFlagWins(t *testing.T) {
	// Provider said on-site; description keywords must not override it.
	got := ClassifyRemote(models.RemoteModeOnSite, "Atlanta, GA", "remote friendly culture")
	assert.Equal(t, models.RemoteModeOnSite, got)
}

func TestClassifyRemoteKeywords(t *testing.T) {
	tests := []struct {
		name        string
		location    string
		description string
		want        models.RemoteMode
	}{
		{"remote in location", "Remote", "", models.RemoteModeRemote},
		{"wfh in description", "Atlanta, GA", "WFH encouraged", models.RemoteModeRemote},
		{"work from home", "", "work from home role", models.RemoteModeRemote},
		{"hybrid beats remote", "", "hybrid schedule, partially remote", models.RemoteModeHybrid},
		{"on-site", "", "this is an on-site position", models.RemoteModeOnSite},
		{"in office", "", "5 days in-office", models.RemoteModeOnSite},
		{"no signal", "Atlanta, GA", "great role", models.RemoteModeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRemote(models.RemoteModeUnknown, tt.location, tt.description)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyRemoteEmptyStructuredTreatedAsUnknown(t *testing.T) {
	got := ClassifyRemote("", "Remote", "")
	assert.Equal(t, models.RemoteModeRemote, got)
}
