package calculations

import "pension-estimator/internal/model"

// StepHandler defines the contract for all calculation steps.
// Each step validates its preconditions and then applies its change to the
// situation. A CRITICAL message from Validate stops processing before Apply.
type StepHandler interface {
	Validate(state *model.Situation, step *model.Step) []model.CalculationMessage
	Apply(state *model.Situation, step *model.Step) []model.CalculationMessage
}
