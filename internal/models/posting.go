package models

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SalaryRange is a posting's listed compensation band. Postings with no
// listed compensation carry a nil *SalaryRange.
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r *SalaryRange) Midpoint() float64 {
	if r == nil {
		return 0
	}
	return (r.Min + r.Max) / 2
}

// ScoreBreakdown holds the per-dimension values behind a composite
// score so rankings stay explainable after the fact.
type ScoreBreakdown struct {
	SalaryFit      float64 `json:"salary_fit"`
	MSAFit         float64 `json:"msa_fit"`
	CompanyQuality float64 `json:"company_quality"`
	RemoteFit      float64 `json:"remote_fit"`
}

// JobPosting is the canonical posting model. Identity is the
// fingerprint; postings from different providers describing the same
// job collapse into one record with a merged source list.
type JobPosting struct {
	Fingerprint string       `json:"fingerprint"`
	Title       string       `json:"title"`
	Company     string       `json:"company"`
	Location    string       `json:"location"`
	Salary      *SalaryRange `json:"salary,omitempty"`
	PostedAt    time.Time    `json:"posted_at"`
	Sources     []string     `json:"sources"`
	Description string       `json:"description"`

	Remote RemoteMode `json:"remote"`
	MSAFit MSAFit     `json:"msa_fit"`

	Profile   *CompanyProfile `json:"profile,omitempty"`
	Score     float64         `json:"score"`
	Breakdown ScoreBreakdown  `json:"breakdown"`
}

func (p JobPosting) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

func (p *JobPosting) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizeKey lowercases, trims, and collapses whitespace so that
// cosmetic differences between providers do not split identities.
func NormalizeKey(s string) string {
	return whitespacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

var fingerprintNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// ComputeFingerprint derives the deterministic posting identity from
// the normalized (company, title, location, salary band) tuple. Salary
// bounds are bucketed to the nearest thousand so provider rounding
// noise does not break deduplication.
func ComputeFingerprint(company, title, location string, salary *SalaryRange) string {
	var salaryPart string
	if salary != nil {
		salaryPart = fmt.Sprintf("%d-%d",
			int(math.Round(salary.Min/1000)),
			int(math.Round(salary.Max/1000)))
	}
	tuple := strings.Join([]string{
		NormalizeKey(company),
		NormalizeKey(title),
		NormalizeKey(location),
		salaryPart,
	}, "|")
	return uuid.NewSHA1(fingerprintNamespace, []byte(tuple)).String()
}
