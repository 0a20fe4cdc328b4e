package benefit

import (
	"github.com/shopspring/decimal"

	"pension-estimator/internal/model"
)

// chart is an age-indexed benefit percentage schedule. The percentage is
// startPct at minAge and grows by step per year of age until fullAge, after
// which it stays at the maximum.
type chart struct {
	minAge     int
	fullAge    int
	startPct   decimal.Decimal
	step       decimal.Decimal
	minService decimal.Decimal
}

var (
	maxPct        = decimal.RequireFromString("2.5")
	tenYears      = decimal.NewFromInt(10)
	twentyYears   = decimal.NewFromInt(20)
	pre2012Start  = decimal.RequireFromString("1.5")
	pre2012Step   = decimal.RequireFromString("0.1")
	post2012Start = decimal.RequireFromString("1.45")
	post2012Step  = decimal.RequireFromString("0.15")
)

// Group 3 earns the maximum at any age once it has twenty years of service.
var statePolice = chart{minAge: 0, fullAge: 0, startPct: maxPct, step: decimal.Zero, minService: twentyYears}

var charts = map[model.Tier]map[model.Group]chart{
	model.TierPre2012: {
		model.Group1: {minAge: 55, fullAge: 65, startPct: pre2012Start, step: pre2012Step, minService: tenYears},
		model.Group2: {minAge: 50, fullAge: 60, startPct: pre2012Start, step: pre2012Step, minService: tenYears},
		model.Group3: statePolice,
		model.Group4: {minAge: 45, fullAge: 55, startPct: pre2012Start, step: pre2012Step, minService: tenYears},
	},
	model.TierPost2012: {
		model.Group1: {minAge: 60, fullAge: 67, startPct: post2012Start, step: post2012Step, minService: tenYears},
		model.Group2: {minAge: 55, fullAge: 62, startPct: post2012Start, step: post2012Step, minService: tenYears},
		model.Group3: statePolice,
		model.Group4: {minAge: 50, fullAge: 57, startPct: post2012Start, step: post2012Step, minService: tenYears},
	},
}

func (c chart) percentage(age int) decimal.Decimal {
	if age >= c.fullAge {
		return maxPct
	}
	return c.startPct.Add(c.step.Mul(decimal.NewFromInt(int64(age - c.minAge))))
}
