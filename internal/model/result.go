package model

import "github.com/shopspring/decimal"

// BenefitResult is an immutable estimate for one option election.
type BenefitResult struct {
	Option            Option          `json:"option"`
	Group             Group           `json:"group"`
	MemberAge         int             `json:"member_age"`
	BeneficiaryAge    *int            `json:"beneficiary_age,omitempty"`
	BenefitPercentage decimal.Decimal `json:"benefit_percentage"`
	Capped            bool            `json:"capped"`
	BaseAnnual        decimal.Decimal `json:"base_annual"`
	ReducedAnnual     decimal.Decimal `json:"reduced_annual"`
	Monthly           decimal.Decimal `json:"monthly"`
	SurvivorAnnual    decimal.Decimal `json:"survivor_annual"`
	PopUpAnnual       decimal.Decimal `json:"pop_up_annual"`
	ReductionFactor   decimal.Decimal `json:"reduction_factor"`
	ReductionPercent  decimal.Decimal `json:"reduction_percent"`
}

// Reconciliation compares an Option A amount with a published Option C
// figure, treating the published figure as the reduced member pension.
type Reconciliation struct {
	OptionAAnnual    decimal.Decimal `json:"option_a_annual"`
	PublishedOptionC decimal.Decimal `json:"published_option_c"`
	ImpliedFactor    decimal.Decimal `json:"implied_factor"`
	ReductionPercent decimal.Decimal `json:"reduction_percent"`
	SurvivorAnnual   decimal.Decimal `json:"survivor_annual"`
	SurvivorMonthly  decimal.Decimal `json:"survivor_monthly"`
}

// AgeProjection is the estimate for retiring at a later age. Result is nil
// when the member would not be eligible at that age.
type AgeProjection struct {
	RetirementAge  int             `json:"retirement_age"`
	YearsOfService decimal.Decimal `json:"years_of_service"`
	Result         *BenefitResult  `json:"result"`
	IneligibleCode string          `json:"ineligible_code,omitempty"`
}
