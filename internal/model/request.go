package model

import (
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

type CalculationRequest struct {
	TenantID                string                  `json:"tenant_id"`
	CalculationInstructions CalculationInstructions `json:"calculation_instructions"`
}

type CalculationInstructions struct {
	Steps []Step `json:"steps"`
}

type Step struct {
	StepID         string          `json:"step_id"`
	StepName       string          `json:"step_name"`
	ActualAt       string          `json:"actual_at"`
	StepProperties json.RawMessage `json:"step_properties"`
}

// ReconcileRequest accepts amounts as JSON numbers or quoted strings.
type ReconcileRequest struct {
	OptionA          decimal.Decimal `json:"option_a"`
	PublishedOptionC decimal.Decimal `json:"published_option_c"`
}
