package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Group is a retirement classification. Group 1 covers general employees,
// Group 2 hazardous positions, Group 3 state police and Group 4 public safety.
type Group int

const (
	Group1 Group = 1
	Group2 Group = 2
	Group3 Group = 3
	Group4 Group = 4
)

func (g Group) Valid() bool {
	return g >= Group1 && g <= Group4
}

// Option is a retirement payout election.
type Option string

const (
	OptionA Option = "A" // straight life annuity
	OptionB Option = "B" // annuity with refund of remaining contributions
	OptionC Option = "C" // joint and two-thirds survivor annuity
)

// Normalize upper-cases and trims the option so "c" and " C " both match OptionC.
func (o Option) Normalize() Option {
	return Option(strings.ToUpper(strings.TrimSpace(string(o))))
}

func (o Option) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC:
		return true
	}
	return false
}

// Tier selects the benefit percentage chart. Members hired on or after
// 2012-04-02 retire under a later chart with higher minimum ages.
type Tier string

const (
	TierPre2012  Tier = "pre_2012"
	TierPost2012 Tier = "post_2012"
)

// PensionInput is the data a single estimate is computed from.
type PensionInput struct {
	AverageSalary  decimal.Decimal `json:"average_salary"`
	YearsOfService decimal.Decimal `json:"years_of_service"`
	MemberAge      int             `json:"member_age"`
	Group          Group           `json:"group"`
	Option         Option          `json:"option"`
	BeneficiaryAge *int            `json:"beneficiary_age,omitempty"`
	Tier           Tier            `json:"tier,omitempty"`
}
