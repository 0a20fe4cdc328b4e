// Package benefit evaluates the base annual retirement allowance: average
// salary times years of service times the age-based benefit percentage,
// never more than eighty percent of salary.
package benefit

import (
	"github.com/shopspring/decimal"

	"pension-estimator/internal/model"
)

const (
	MaxMemberAge      = 120
	MaxYearsOfService = 50
)

var (
	capRatio    = decimal.RequireFromString("0.8")
	hundred     = decimal.NewFromInt(100)
	maxServiceD = decimal.NewFromInt(MaxYearsOfService)
)

// Base is the unreduced allowance before any option election.
type Base struct {
	// Percentage is the benefit percentage per year of service, e.g. 2.5.
	Percentage decimal.Decimal
	Annual     decimal.Decimal
	Capped     bool
}

type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes the base annual allowance. Inputs outside the supported
// ranges return a *model.ValidationError.
func (e *Evaluator) Evaluate(in model.PensionInput) (Base, error) {
	c, err := e.chartFor(in)
	if err != nil {
		return Base{}, err
	}

	pct := c.percentage(in.MemberAge)
	annual := in.AverageSalary.Mul(in.YearsOfService).Mul(pct).Div(hundred)

	limit := in.AverageSalary.Mul(capRatio)
	capped := annual.GreaterThan(limit)
	if capped {
		annual = limit
	}

	return Base{Percentage: pct, Annual: annual, Capped: capped}, nil
}

// Percentage returns the benefit percentage for the input's group, tier and
// age without evaluating the salary.
func (e *Evaluator) Percentage(in model.PensionInput) (decimal.Decimal, error) {
	c, err := e.chartFor(in)
	if err != nil {
		return decimal.Zero, err
	}
	return c.percentage(in.MemberAge), nil
}

func (e *Evaluator) chartFor(in model.PensionInput) (chart, error) {
	if !in.Group.Valid() {
		return chart{}, model.Invalid(model.CodeInvalidGroup, "group", "unknown retirement group %d", in.Group)
	}

	tier := NormalizeTier(in.Tier)
	byGroup, ok := charts[tier]
	if !ok {
		return chart{}, model.Invalid(model.CodeInvalidTier, "tier", "unknown tier %q", in.Tier)
	}
	c := byGroup[in.Group]

	if !in.AverageSalary.IsPositive() {
		return chart{}, model.Invalid(model.CodeInvalidSalary, "average_salary", "average salary must be positive")
	}
	if !in.YearsOfService.IsPositive() || in.YearsOfService.GreaterThan(maxServiceD) {
		return chart{}, model.Invalid(model.CodeInvalidService, "years_of_service",
			"years of service must be greater than 0 and at most %d", MaxYearsOfService)
	}
	if in.MemberAge <= 0 || in.MemberAge > MaxMemberAge {
		return chart{}, model.Invalid(model.CodeInvalidAge, "member_age", "member age %d is not plausible", in.MemberAge)
	}
	if in.MemberAge < c.minAge {
		return chart{}, model.Invalid(model.CodeAgeBelowMinimum, "member_age",
			"group %d members under the %s chart may not retire before age %d", in.Group, tier, c.minAge)
	}
	if in.YearsOfService.LessThan(c.minService) {
		return chart{}, model.Invalid(model.CodeInsufficientService, "years_of_service",
			"group %d requires at least %s years of service", in.Group, c.minService)
	}
	return c, nil
}

// NormalizeTier maps an empty tier to the pre-2012 chart.
func NormalizeTier(t model.Tier) model.Tier {
	if t == "" {
		return model.TierPre2012
	}
	return t
}
