package calculations

import (
	"pension-estimator/internal/estimator"
	"pension-estimator/internal/model"
)

type compareOptionsProps struct {
	// BeneficiaryAge overrides the elected beneficiary's age for Option C.
	BeneficiaryAge *int `json:"beneficiary_age"`
}

type CompareOptionsHandler struct {
	calc *estimator.Calculator
}

func (h *CompareOptionsHandler) Validate(state *model.Situation, step *model.Step) []model.CalculationMessage {
	if state.Member == nil {
		return memberNotFound()
	}

	var props compareOptionsProps
	if msgs := decodeProps(step, &props); msgs != nil {
		return msgs
	}

	in := compareInput(state, props)
	if _, err := h.calc.Compare(in); err != nil {
		return []model.CalculationMessage{fromError(err)}
	}
	if in.BeneficiaryAge == nil {
		return []model.CalculationMessage{warning("OPTION_C_SKIPPED", "No beneficiary age known, option C not compared")}
	}
	return nil
}

func (h *CompareOptionsHandler) Apply(state *model.Situation, step *model.Step) []model.CalculationMessage {
	var props compareOptionsProps
	_ = decodeProps(step, &props)

	results, err := h.calc.Compare(compareInput(state, props))
	if err != nil {
		return []model.CalculationMessage{fromError(err)}
	}
	state.Comparison = results

	return nil
}

func compareInput(state *model.Situation, props compareOptionsProps) model.PensionInput {
	in := state.Input()
	if props.BeneficiaryAge != nil {
		in.BeneficiaryAge = props.BeneficiaryAge
	}
	return in
}
