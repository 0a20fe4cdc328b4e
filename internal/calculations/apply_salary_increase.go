package calculations

import (
	"github.com/shopspring/decimal"

	"pension-estimator/internal/model"
)

type applySalaryIncreaseProps struct {
	// Percentage is a fraction: 0.03 raises the salary by three percent.
	Percentage decimal.Decimal `json:"percentage"`
}

type ApplySalaryIncreaseHandler struct{}

func (h *ApplySalaryIncreaseHandler) Validate(state *model.Situation, step *model.Step) []model.CalculationMessage {
	if state.Member == nil {
		return memberNotFound()
	}
	var props applySalaryIncreaseProps
	return decodeProps(step, &props)
}

func (h *ApplySalaryIncreaseHandler) Apply(state *model.Situation, step *model.Step) []model.CalculationMessage {
	var props applySalaryIncreaseProps
	_ = decodeProps(step, &props)

	var msgs []model.CalculationMessage
	salary := state.Member.AverageSalary.Mul(decimal.NewFromInt(1).Add(props.Percentage)).Round(2)
	if salary.IsNegative() {
		salary = decimal.Zero
		msgs = append(msgs, warning("NEGATIVE_SALARY_CLAMPED", "Average salary clamped to 0"))
	}
	state.Member.AverageSalary = salary
	clearEstimates(state)

	return msgs
}

// clearEstimates drops results computed from the previous member data.
func clearEstimates(state *model.Situation) {
	state.Estimate = nil
	state.Comparison = nil
	state.Projections = nil
}
