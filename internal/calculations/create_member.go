package calculations

import (
	"strings"

	"github.com/shopspring/decimal"

	"pension-estimator/internal/benefit"
	"pension-estimator/internal/model"
)

type createMemberProps struct {
	MemberID       string          `json:"member_id"`
	Name           string          `json:"name"`
	AverageSalary  decimal.Decimal `json:"average_salary"`
	YearsOfService decimal.Decimal `json:"years_of_service"`
	MemberAge      int             `json:"member_age"`
	Group          model.Group     `json:"group"`
	Tier           model.Tier      `json:"tier"`
}

type CreateMemberHandler struct{}

// Validate checks the member's record only. Retirement eligibility depends on
// the age at retirement and is checked by the calculating steps.
func (h *CreateMemberHandler) Validate(state *model.Situation, step *model.Step) []model.CalculationMessage {
	if state.Member != nil {
		return []model.CalculationMessage{critical("MEMBER_ALREADY_EXISTS", "A member already exists")}
	}

	var props createMemberProps
	if msgs := decodeProps(step, &props); msgs != nil {
		return msgs
	}

	if strings.TrimSpace(props.Name) == "" {
		return []model.CalculationMessage{critical("INVALID_NAME", "Name is empty or blank")}
	}
	if !props.AverageSalary.IsPositive() {
		return []model.CalculationMessage{critical(model.CodeInvalidSalary, "Average salary must be positive")}
	}
	if props.YearsOfService.IsNegative() || props.YearsOfService.GreaterThan(decimal.NewFromInt(benefit.MaxYearsOfService)) {
		return []model.CalculationMessage{critical(model.CodeInvalidService, "Years of service must be between 0 and %d", benefit.MaxYearsOfService)}
	}
	if props.MemberAge <= 0 || props.MemberAge > benefit.MaxMemberAge {
		return []model.CalculationMessage{critical(model.CodeInvalidAge, "Member age %d is not plausible", props.MemberAge)}
	}
	if !props.Group.Valid() {
		return []model.CalculationMessage{critical(model.CodeInvalidGroup, "Unknown retirement group %d", props.Group)}
	}
	switch benefit.NormalizeTier(props.Tier) {
	case model.TierPre2012, model.TierPost2012:
	default:
		return []model.CalculationMessage{critical(model.CodeInvalidTier, "Unknown tier %q", props.Tier)}
	}

	return nil
}

func (h *CreateMemberHandler) Apply(state *model.Situation, step *model.Step) []model.CalculationMessage {
	var props createMemberProps
	_ = decodeProps(step, &props)

	state.Member = &model.Member{
		MemberID:       props.MemberID,
		Name:           strings.TrimSpace(props.Name),
		AverageSalary:  props.AverageSalary,
		YearsOfService: props.YearsOfService,
		MemberAge:      props.MemberAge,
		Group:          props.Group,
		Tier:           benefit.NormalizeTier(props.Tier),
	}

	return nil
}
