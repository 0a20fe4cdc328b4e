package calculations

import "pension-estimator/internal/model"

type electOptionProps struct {
	Option         model.Option `json:"option"`
	BeneficiaryAge *int         `json:"beneficiary_age"`
}

type ElectOptionHandler struct{}

func (h *ElectOptionHandler) Validate(state *model.Situation, step *model.Step) []model.CalculationMessage {
	if state.Member == nil {
		return memberNotFound()
	}

	var props electOptionProps
	if msgs := decodeProps(step, &props); msgs != nil {
		return msgs
	}

	opt := props.Option.Normalize()
	if !opt.Valid() {
		return []model.CalculationMessage{critical(model.CodeInvalidOption, "Unknown retirement option %q", props.Option)}
	}
	if opt == model.OptionC && props.BeneficiaryAge == nil {
		return []model.CalculationMessage{critical(model.CodeMissingBeneficiaryAge, "Option C requires a beneficiary age")}
	}
	if props.BeneficiaryAge != nil && (*props.BeneficiaryAge < 0 || *props.BeneficiaryAge > 120) {
		return []model.CalculationMessage{critical(model.CodeInvalidBeneficiaryAge, "Beneficiary age %d is not plausible", *props.BeneficiaryAge)}
	}

	var msgs []model.CalculationMessage
	if state.Election != nil {
		msgs = append(msgs, warning("ELECTION_REPLACED", "Option %s election replaced by option %s", state.Election.Option, opt))
	}
	return msgs
}

func (h *ElectOptionHandler) Apply(state *model.Situation, step *model.Step) []model.CalculationMessage {
	var props electOptionProps
	_ = decodeProps(step, &props)

	state.Election = &model.Election{
		Option:         props.Option.Normalize(),
		BeneficiaryAge: props.BeneficiaryAge,
	}
	clearEstimates(state)

	return nil
}
