package models

// CareerField is the closed set of career fields the engine understands.
// Scoring strategies are keyed by field, so every decision site that
// switches on a field must handle all of these.
type CareerField string

const (
	FieldTechnology CareerField = "technology"
	FieldFinance    CareerField = "finance"
	FieldHealthcare CareerField = "healthcare"
	FieldMarketing  CareerField = "marketing"
	FieldOperations CareerField = "operations"
)

var AllCareerFields = []CareerField{
	FieldTechnology,
	FieldFinance,
	FieldHealthcare,
	FieldMarketing,
	FieldOperations,
}

func (f CareerField) Valid() bool {
	for _, known := range AllCareerFields {
		if f == known {
			return true
		}
	}
	return false
}

// ExperienceLevel is the closed set of seniority levels.
type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

var AllExperienceLevels = []ExperienceLevel{
	LevelEntry,
	LevelMid,
	LevelSenior,
	LevelExecutive,
}

func (l ExperienceLevel) Valid() bool {
	for _, known := range AllExperienceLevels {
		if l == known {
			return true
		}
	}
	return false
}

// RemoteMode is the tri-state remote classification plus Unknown.
// Unknown earns no remote-fit credit; it is not collapsed into OnSite
// so callers can tell "provider said on-site" from "nobody said anything".
type RemoteMode string

const (
	RemoteModeRemote  RemoteMode = "remote"
	RemoteModeHybrid  RemoteMode = "hybrid"
	RemoteModeOnSite  RemoteMode = "onsite"
	RemoteModeUnknown RemoteMode = "unknown"
)

// MSAFit grades how well a posting's location matches the preferred
// metro set.
type MSAFit string

const (
	MSAFitExact     MSAFit = "exact"
	MSAFitSameState MSAFit = "same_state"
	MSAFitNone      MSAFit = "none"
)
