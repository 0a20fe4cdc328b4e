package calculations

import "pension-estimator/internal/estimator"

type Registry struct {
	handlers map[string]StepHandler
}

func NewRegistry(calc *estimator.Calculator) *Registry {
	return &Registry{handlers: map[string]StepHandler{
		"create_member":           &CreateMemberHandler{},
		"apply_salary_increase":   &ApplySalaryIncreaseHandler{},
		"elect_option":            &ElectOptionHandler{},
		"calculate_benefit":       &CalculateBenefitHandler{calc: calc},
		"compare_options":         &CompareOptionsHandler{calc: calc},
		"project_retirement_ages": &ProjectRetirementAgesHandler{calc: calc},
	}}
}

func (r *Registry) Get(name string) (StepHandler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}
