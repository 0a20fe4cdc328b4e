package model

import "fmt"

const (
	CodeInvalidGroup          = "INVALID_GROUP"
	CodeInvalidOption         = "INVALID_OPTION"
	CodeInvalidTier           = "INVALID_TIER"
	CodeInvalidSalary         = "INVALID_SALARY"
	CodeInvalidService        = "INVALID_SERVICE"
	CodeInvalidAge            = "INVALID_AGE"
	CodeInvalidBeneficiaryAge = "INVALID_BENEFICIARY_AGE"
	CodeMissingBeneficiaryAge = "MISSING_BENEFICIARY_AGE"
	CodeAgeBelowMinimum       = "AGE_BELOW_MINIMUM"
	CodeAgeOutOfRange         = "AGE_OUT_OF_RANGE"
	CodeInsufficientService   = "INSUFFICIENT_SERVICE"
	CodeInvalidAmount         = "INVALID_AMOUNT"
)

// ValidationError reports an input the estimator refuses to evaluate.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError with a formatted message.
func Invalid(code, field, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}
