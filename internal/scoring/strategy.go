package scoring

import (
	"fmt"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/errors"
	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/models"
)

// Strategy is the weight vector applied to the four scoring dimensions
// for one (career field, experience level) combination. Weights are
// non-negative and sum to 1.0.
type Strategy struct {
	SalaryWeight  float64 `json:"salary_weight"`
	MSAWeight     float64 `json:"msa_weight"`
	CompanyWeight float64 `json:"company_weight"`
	RemoteWeight  float64 `json:"remote_weight"`
}

type strategyKey struct {
	field models.CareerField
	level models.ExperienceLevel
}

// Weight emphasis shifts with seniority: entry-level candidates chase
// compensation, executives weigh company quality more, and remote
// flexibility matters most in technology and marketing.
var strategies = map[strategyKey]Strategy{
	{models.FieldTechnology, models.LevelEntry}:     {0.50, 0.15, 0.15, 0.20},
	{models.FieldTechnology, models.LevelMid}:       {0.45, 0.15, 0.20, 0.20},
	{models.FieldTechnology, models.LevelSenior}:    {0.40, 0.15, 0.25, 0.20},
	{models.FieldTechnology, models.LevelExecutive}: {0.35, 0.15, 0.35, 0.15},

	{models.FieldFinance, models.LevelEntry}:     {0.55, 0.20, 0.15, 0.10},
	{models.FieldFinance, models.LevelMid}:       {0.50, 0.20, 0.20, 0.10},
	{models.FieldFinance, models.LevelSenior}:    {0.45, 0.20, 0.25, 0.10},
	{models.FieldFinance, models.LevelExecutive}: {0.40, 0.20, 0.35, 0.05},

	{models.FieldHealthcare, models.LevelEntry}:     {0.50, 0.25, 0.15, 0.10},
	{models.FieldHealthcare, models.LevelMid}:       {0.45, 0.25, 0.20, 0.10},
	{models.FieldHealthcare, models.LevelSenior}:    {0.40, 0.25, 0.25, 0.10},
	{models.FieldHealthcare, models.LevelExecutive}: {0.35, 0.25, 0.35, 0.05},

	{models.FieldMarketing, models.LevelEntry}:     {0.45, 0.15, 0.20, 0.20},
	{models.FieldMarketing, models.LevelMid}:       {0.40, 0.15, 0.25, 0.20},
	{models.FieldMarketing, models.LevelSenior}:    {0.40, 0.15, 0.30, 0.15},
	{models.FieldMarketing, models.LevelExecutive}: {0.35, 0.15, 0.40, 0.10},

	{models.FieldOperations, models.LevelEntry}:     {0.50, 0.25, 0.15, 0.10},
	{models.FieldOperations, models.LevelMid}:       {0.45, 0.25, 0.20, 0.10},
	{models.FieldOperations, models.LevelSenior}:    {0.40, 0.25, 0.25, 0.10},
	{models.FieldOperations, models.LevelExecutive}: {0.40, 0.20, 0.35, 0.05},
}

// StrategyFor returns the read-only weight vector for the combination.
// Unknown combinations are a validation failure, not a fallback; the
// enum set is closed and the table covers all of it.
func StrategyFor(field models.CareerField, level models.ExperienceLevel) (Strategy, error) {
	strategy, ok := strategies[strategyKey{field, level}]
	if !ok {
		return Strategy{}, errors.Validation(
			fmt.Sprintf("no strategy for field %q level %q", field, level), nil)
	}
	return strategy, nil
}
