package calculations

import (
	"pension-estimator/internal/estimator"
	"pension-estimator/internal/model"
)

type CalculateBenefitHandler struct {
	calc *estimator.Calculator
}

func (h *CalculateBenefitHandler) Validate(state *model.Situation, step *model.Step) []model.CalculationMessage {
	if state.Member == nil {
		return memberNotFound()
	}

	if _, err := h.calc.Calculate(state.Input()); err != nil {
		return []model.CalculationMessage{fromError(err)}
	}

	if state.Election == nil {
		return []model.CalculationMessage{warning("NO_OPTION_ELECTED", "No option elected, estimating option A")}
	}
	return nil
}

func (h *CalculateBenefitHandler) Apply(state *model.Situation, step *model.Step) []model.CalculationMessage {
	res, err := h.calc.Calculate(state.Input())
	if err != nil {
		return []model.CalculationMessage{fromError(err)}
	}
	state.Estimate = &res

	if res.Capped {
		return []model.CalculationMessage{warning("BENEFIT_CAPPED", "Base benefit limited to 80%% of average salary")}
	}
	return nil
}
