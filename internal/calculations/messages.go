package calculations

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"pension-estimator/internal/model"
)

func critical(code, format string, args ...any) model.CalculationMessage {
	return model.CalculationMessage{
		Level:   model.LevelCritical,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func warning(code, format string, args ...any) model.CalculationMessage {
	return model.CalculationMessage{
		Level:   model.LevelWarning,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// fromError turns an estimator failure into a CRITICAL message, keeping the
// validation code when there is one.
func fromError(err error) model.CalculationMessage {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return critical(verr.Code, "%s", verr.Error())
	}
	return critical("CALCULATION_FAILED", "%s", err.Error())
}

func memberNotFound() []model.CalculationMessage {
	return []model.CalculationMessage{critical("MEMBER_NOT_FOUND", "No member exists")}
}

// decodeProps unmarshals the step properties into v. Missing properties
// leave v at its zero value.
func decodeProps(step *model.Step, v any) []model.CalculationMessage {
	if len(step.StepProperties) == 0 {
		return nil
	}
	if err := json.Unmarshal(step.StepProperties, v); err != nil {
		return []model.CalculationMessage{critical("INVALID_PROPERTIES", "Step properties could not be decoded: %v", err)}
	}
	return nil
}
