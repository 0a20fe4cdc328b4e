// Package options applies retirement option elections to a base allowance.
//
// Option A pays the full allowance for the member's life. Option B pays a
// slightly reduced allowance and refunds any remaining contributions to the
// beneficiary. Option C pays a reduced allowance and continues two-thirds of
// it to the surviving beneficiary.
package options

import (
	"github.com/shopspring/decimal"

	"pension-estimator/internal/model"
)

const maxBeneficiaryAge = 120

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	three   = decimal.NewFromInt(3)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// FactorSource supplies tabulated reduction factors.
type FactorSource interface {
	OptionB(memberAge int) (decimal.Decimal, bool)
	OptionC(memberAge, beneficiaryAge int) (decimal.Decimal, bool)
}

type Lookup struct {
	table FactorSource
}

func NewLookup(table FactorSource) *Lookup {
	return &Lookup{table: table}
}

// Factor returns the multiplier applied to the base allowance for the
// election. Option A is always 1.
func (l *Lookup) Factor(opt model.Option, memberAge int, beneficiaryAge *int) (decimal.Decimal, error) {
	switch opt.Normalize() {
	case model.OptionA:
		return one, nil

	case model.OptionB:
		f, ok := l.table.OptionB(memberAge)
		if !ok {
			return decimal.Zero, model.Invalid(model.CodeAgeOutOfRange, "member_age",
				"no option B factor for member age %d", memberAge)
		}
		return f, nil

	case model.OptionC:
		if beneficiaryAge == nil {
			return decimal.Zero, model.Invalid(model.CodeMissingBeneficiaryAge, "beneficiary_age",
				"option C requires a beneficiary age")
		}
		if *beneficiaryAge < 0 || *beneficiaryAge > maxBeneficiaryAge {
			return decimal.Zero, model.Invalid(model.CodeInvalidBeneficiaryAge, "beneficiary_age",
				"beneficiary age %d is not plausible", *beneficiaryAge)
		}
		f, ok := l.table.OptionC(memberAge, *beneficiaryAge)
		if !ok {
			return decimal.Zero, model.Invalid(model.CodeAgeOutOfRange, "member_age",
				"no option C factor for member age %d", memberAge)
		}
		return f, nil
	}

	return decimal.Zero, model.Invalid(model.CodeInvalidOption, "option", "unknown retirement option %q", opt)
}

// Survivor returns the annual amount continued to the beneficiary after the
// member's death. Only Option C continues an annuity.
func Survivor(opt model.Option, reducedAnnual decimal.Decimal) decimal.Decimal {
	if opt.Normalize() != model.OptionC {
		return decimal.Zero
	}
	return reducedAnnual.Mul(two).Div(three)
}

// ReductionPercent converts a factor into the percentage given up, e.g.
// 0.9295 becomes 7.05.
func ReductionPercent(factor decimal.Decimal) decimal.Decimal {
	return one.Sub(factor).Mul(hundred).Round(2)
}

// Reconcile derives the implied Option C factor and survivor benefit from an
// Option A amount and a published Option C amount. The published figure is
// taken to be the reduced member pension, so the survivor receives
// two-thirds of it.
func Reconcile(optionA, publishedOptionC decimal.Decimal) (model.Reconciliation, error) {
	if !optionA.IsPositive() {
		return model.Reconciliation{}, model.Invalid(model.CodeInvalidAmount, "option_a", "option A amount must be positive")
	}
	if !publishedOptionC.IsPositive() || publishedOptionC.GreaterThan(optionA) {
		return model.Reconciliation{}, model.Invalid(model.CodeInvalidAmount, "published_option_c",
			"published option C amount must be positive and no greater than option A")
	}

	implied := publishedOptionC.DivRound(optionA, 6)
	survivor := Survivor(model.OptionC, publishedOptionC)

	return model.Reconciliation{
		OptionAAnnual:    optionA,
		PublishedOptionC: publishedOptionC,
		ImpliedFactor:    implied,
		ReductionPercent: ReductionPercent(implied),
		SurvivorAnnual:   survivor.Round(2),
		SurvivorMonthly:  survivor.Div(twelve).Round(2),
	}, nil
}
