package model

import "github.com/shopspring/decimal"

type Situation struct {
	Member      *Member         `json:"member"`
	Election    *Election       `json:"election"`
	Estimate    *BenefitResult  `json:"estimate"`
	Comparison  []BenefitResult `json:"option_comparison,omitempty"`
	Projections []AgeProjection `json:"projections,omitempty"`
}

type Member struct {
	MemberID       string          `json:"member_id"`
	Name           string          `json:"name"`
	AverageSalary  decimal.Decimal `json:"average_salary"`
	YearsOfService decimal.Decimal `json:"years_of_service"`
	MemberAge      int             `json:"member_age"`
	Group          Group           `json:"group"`
	Tier           Tier            `json:"tier"`
}

type Election struct {
	Option         Option `json:"option"`
	BeneficiaryAge *int   `json:"beneficiary_age"`
}

// Input assembles the estimator input from the member and the current
// election. Without an election the member is estimated under Option A.
func (s *Situation) Input() PensionInput {
	in := PensionInput{
		AverageSalary:  s.Member.AverageSalary,
		YearsOfService: s.Member.YearsOfService,
		MemberAge:      s.Member.MemberAge,
		Group:          s.Member.Group,
		Tier:           s.Member.Tier,
		Option:         OptionA,
	}
	if s.Election != nil {
		in.Option = s.Election.Option
		in.BeneficiaryAge = s.Election.BeneficiaryAge
	}
	return in
}
