package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
)

const (
	MinTargetIncrease = 0.15
	MaxTargetIncrease = 0.45
)

// SearchCriteria is the validated input to one search call. Construct
// it, validate it, and treat it as immutable afterwards.
type SearchCriteria struct {
	CurrentSalary    float64         `json:"current_salary"`
	TargetIncrease   float64         `json:"target_increase"`
	Field            CareerField     `json:"field"`
	Level            ExperienceLevel `json:"level"`
	PreferredMSAs    []string        `json:"preferred_msas"`
	RemoteOK         bool            `json:"remote_ok"`
	RequiredBenefits []string        `json:"required_benefits"`
}

func (c SearchCriteria) Validate() error {
	if c.CurrentSalary <= 0 {
		return errors.Validation(fmt.Sprintf("current salary must be positive, got %.2f", c.CurrentSalary), nil)
	}
	if c.TargetIncrease < MinTargetIncrease || c.TargetIncrease > MaxTargetIncrease {
		return errors.Validation(fmt.Sprintf("target increase %.2f outside [%.2f, %.2f]",
			c.TargetIncrease, MinTargetIncrease, MaxTargetIncrease), nil)
	}
	if !c.Field.Valid() {
		return errors.Validation(fmt.Sprintf("unknown career field %q", c.Field), nil)
	}
	if !c.Level.Valid() {
		return errors.Validation(fmt.Sprintf("unknown experience level %q", c.Level), nil)
	}
	return nil
}

// TargetSalary is the compensation the user is searching for.
func (c SearchCriteria) TargetSalary() float64 {
	return c.CurrentSalary * (1 + c.TargetIncrease)
}

var criteriaNamespace = uuid.MustParse("b1c52c86-9d14-4f9a-9a3e-5a4f3d2e1c0b")

// Hash is a deterministic identity for the criteria, used to key
// persisted result sets. Set ordering does not affect it.
func (c SearchCriteria) Hash() string {
	msas := append([]string(nil), c.PreferredMSAs...)
	sort.Strings(msas)
	benefits := append([]string(nil), c.RequiredBenefits...)
	sort.Strings(benefits)

	canonical := fmt.Sprintf("%.2f|%.4f|%s|%s|%s|%t|%s",
		c.CurrentSalary,
		c.TargetIncrease,
		c.Field,
		c.Level,
		strings.Join(msas, ","),
		c.RemoteOK,
		strings.Join(benefits, ","),
	)
	return uuid.NewSHA1(criteriaNamespace, []byte(canonical)).String()
}
