package calculations

import (
	"pension-estimator/internal/estimator"
	"pension-estimator/internal/model"
)

type projectRetirementAgesProps struct {
	FromAge int `json:"from_age"`
	ToAge   int `json:"to_age"`
}

type ProjectRetirementAgesHandler struct {
	calc *estimator.Calculator
}

func (h *ProjectRetirementAgesHandler) Validate(state *model.Situation, step *model.Step) []model.CalculationMessage {
	if state.Member == nil {
		return memberNotFound()
	}

	var props projectRetirementAgesProps
	if msgs := decodeProps(step, &props); msgs != nil {
		return msgs
	}
	from, to := projectionRange(state, props)

	projections, err := h.calc.Project(state.Input(), from, to)
	if err != nil {
		return []model.CalculationMessage{fromError(err)}
	}

	for _, p := range projections {
		if p.Result != nil {
			return nil
		}
	}
	return []model.CalculationMessage{warning("NO_ELIGIBLE_AGES", "Member is not eligible to retire at any age from %d to %d", from, to)}
}

func (h *ProjectRetirementAgesHandler) Apply(state *model.Situation, step *model.Step) []model.CalculationMessage {
	var props projectRetirementAgesProps
	_ = decodeProps(step, &props)
	from, to := projectionRange(state, props)

	projections, err := h.calc.Project(state.Input(), from, to)
	if err != nil {
		return []model.CalculationMessage{fromError(err)}
	}
	state.Projections = projections

	return nil
}

// projectionRange defaults the start to the member's current age and the
// end to ten years later.
func projectionRange(state *model.Situation, props projectRetirementAgesProps) (int, int) {
	from, to := props.FromAge, props.ToAge
	if from == 0 {
		from = state.Member.MemberAge
	}
	if to == 0 {
		to = from + 10
	}
	return from, to
}
