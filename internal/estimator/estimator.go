// Package estimator turns a PensionInput into a BenefitResult by combining
// the base allowance with the elected option's reduction factor.
package estimator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"pension-estimator/internal/benefit"
	"pension-estimator/internal/model"
	"pension-estimator/internal/options"
)

// MaxProjectionSpan bounds how many retirement ages one projection covers.
const MaxProjectionSpan = 40

var twelve = decimal.NewFromInt(12)

type Calculator struct {
	evaluator *benefit.Evaluator
	lookup    *options.Lookup
}

func New(evaluator *benefit.Evaluator, lookup *options.Lookup) *Calculator {
	return &Calculator{evaluator: evaluator, lookup: lookup}
}

// Calculate computes the estimate for a single election. It has no side
// effects: identical inputs always produce identical results.
func (c *Calculator) Calculate(in model.PensionInput) (model.BenefitResult, error) {
	opt := in.Option.Normalize()

	base, err := c.evaluator.Evaluate(in)
	if err != nil {
		return model.BenefitResult{}, err
	}
	factor, err := c.lookup.Factor(opt, in.MemberAge, in.BeneficiaryAge)
	if err != nil {
		return model.BenefitResult{}, err
	}

	// Truncate so the rounded base never rises above the cap.
	baseAnnual := base.Annual.Truncate(2)
	reduced := baseAnnual.Mul(factor).Round(2)

	res := model.BenefitResult{
		Option:            opt,
		Group:             in.Group,
		MemberAge:         in.MemberAge,
		BenefitPercentage: base.Percentage,
		Capped:            base.Capped,
		BaseAnnual:        baseAnnual,
		ReducedAnnual:     reduced,
		Monthly:           reduced.Div(twelve).Round(2),
		SurvivorAnnual:    options.Survivor(opt, reduced).Round(2),
		PopUpAnnual:       decimal.Zero,
		ReductionFactor:   factor,
		ReductionPercent:  options.ReductionPercent(factor),
	}
	if opt == model.OptionC {
		age := *in.BeneficiaryAge
		res.BeneficiaryAge = &age
		res.PopUpAnnual = baseAnnual
	}
	return res, nil
}

// Compare estimates Options A, B and C side by side. Option C is left out
// when no beneficiary age is known.
func (c *Calculator) Compare(in model.PensionInput) ([]model.BenefitResult, error) {
	elections := []model.Option{model.OptionA, model.OptionB}
	if in.BeneficiaryAge != nil {
		elections = append(elections, model.OptionC)
	}

	results := make([]model.BenefitResult, 0, len(elections))
	for _, opt := range elections {
		in.Option = opt
		res, err := c.Calculate(in)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", opt, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Project estimates retiring at each age from fromAge to toAge. Every year of
// delay past the input's age adds a year of service and ages the beneficiary
// by a year. Ages at which the member is not eligible are reported with the
// reason instead of a result.
func (c *Calculator) Project(in model.PensionInput, fromAge, toAge int) ([]model.AgeProjection, error) {
	if fromAge <= 0 || toAge < fromAge {
		return nil, model.Invalid(model.CodeInvalidAge, "to_age", "projection range %d..%d is empty", fromAge, toAge)
	}
	if toAge > benefit.MaxMemberAge {
		return nil, model.Invalid(model.CodeInvalidAge, "to_age", "projection may not go past age %d", benefit.MaxMemberAge)
	}
	if toAge-fromAge > MaxProjectionSpan {
		return nil, model.Invalid(model.CodeInvalidAge, "to_age", "projection may span at most %d years", MaxProjectionSpan)
	}

	projections := make([]model.AgeProjection, 0, toAge-fromAge+1)
	for age := fromAge; age <= toAge; age++ {
		delta := age - in.MemberAge
		at := in
		at.MemberAge = age
		at.YearsOfService = in.YearsOfService.Add(decimal.NewFromInt(int64(delta)))
		if in.BeneficiaryAge != nil {
			bene := *in.BeneficiaryAge + delta
			at.BeneficiaryAge = &bene
		}

		p := model.AgeProjection{RetirementAge: age, YearsOfService: at.YearsOfService}
		res, err := c.Calculate(at)
		switch {
		case err == nil:
			p.Result = &res
		case isEligibilityError(err):
			var verr *model.ValidationError
			errors.As(err, &verr)
			p.IneligibleCode = verr.Code
		default:
			return nil, err
		}
		projections = append(projections, p)
	}
	return projections, nil
}

// isEligibilityError reports whether err depends only on the retirement age
// or the service accrued by then.
func isEligibilityError(err error) bool {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	switch verr.Code {
	case model.CodeAgeBelowMinimum, model.CodeInsufficientService, model.CodeAgeOutOfRange,
		model.CodeInvalidService, model.CodeInvalidAge, model.CodeInvalidBeneficiaryAge:
		return true
	}
	return false
}
