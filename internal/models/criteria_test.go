package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
)

func validCriteria() SearchCriteria {
	return SearchCriteria{
		CurrentSalary:  75000,
		TargetIncrease: 0.25,
		Field:          FieldTechnology,
		Level:          LevelMid,
	}
}

func TestValidateAcceptsRange(t *testing.T) {
	for _, increase := range []float64{0.15, 0.25, 0.45} {
		criteria := validCriteria()
		criteria.TargetIncrease = increase
		assert.NoError(t, criteria.Validate(), "increase %v should be valid", increase)
	}
}

func TestValidateRejectsOutOfRangeIncrease(t *testing.T) {
	for _, increase := range []float64{0.14, 0.46, -0.2, 0, 1.0} {
		criteria := validCriteria()
		criteria.TargetIncrease = increase
		err := criteria.Validate()
		require.Error(t, err, "increase %v should be rejected", increase)
		assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
	}
}

func TestValidateRejectsNonPositiveSalary(t *testing.T) {
	criteria := validCriteria()
	criteria.CurrentSalary = 0
	err := criteria.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	criteria := validCriteria()
	criteria.Field = "astrology"
	assert.Error(t, criteria.Validate())

	criteria = validCriteria()
	criteria.Level = "wizard"
	assert.Error(t, criteria.Validate())
}

func TestTargetSalary(t *testing.T) {
	criteria := validCriteria()
	assert.InDelta(t, 93750.0, criteria.TargetSalary(), 1e-9)
}

func TestHashIgnoresSetOrdering(t *testing.T) {
	a := validCriteria()
	a.PreferredMSAs = []string{"Atlanta, GA", "Denver, CO"}
	a.RequiredBenefits = []string{"401k", "dental"}

	b := validCriteria()
	b.PreferredMSAs = []string{"Denver, CO", "Atlanta, GA"}
	b.RequiredBenefits = []string{"dental", "401k"}

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestHashDistinguishesCriteria(t *testing.T) {
	a := validCriteria()
	b := validCriteria()
	b.TargetIncrease = 0.30
	assert.NotEqual(t, a.Hash(), b.Hash())
}
