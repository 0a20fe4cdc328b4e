package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pension-estimator/internal/calculations"
	"pension-estimator/internal/model"
)

type Engine struct {
	registry *calculations.Registry
	logger   *zap.Logger
	now      func() time.Time
}

func New(registry *calculations.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{registry: registry, logger: logger, now: time.Now}
}

// messageLog numbers messages in the order they are raised.
type messageLog struct {
	messages []model.CalculationMessage
}

// add appends msgs and returns their indexes, reporting whether any of them
// is CRITICAL.
func (l *messageLog) add(msgs ...model.CalculationMessage) (indexes []int, critical bool) {
	for _, m := range msgs {
		m.ID = len(l.messages)
		l.messages = append(l.messages, m)
		indexes = append(indexes, m.ID)
		critical = critical || m.Level == model.LevelCritical
	}
	return indexes, critical
}

// Process replays the request's steps against an empty situation. Processing
// stops at the first CRITICAL message; end_situation then reflects the last
// step that was applied successfully.
func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := e.now()
	steps := req.CalculationInstructions.Steps

	state := &model.Situation{}
	var messages messageLog
	var processedSteps []model.ProcessedStep

	var firstActualAt string
	if len(steps) == 0 {
		messages.add(model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "NO_STEPS",
			Message: "At least one step is required",
		})
	} else {
		firstActualAt = steps[0].ActualAt
	}

	endSituation := model.SituationEnvelope{ActualAt: firstActualAt}
	if len(steps) > 0 {
		endSituation.StepID = steps[0].StepID
	}
	applied := false

	for i, step := range steps {
		indexes, critical := e.runStep(state, &step, &messages)
		processedSteps = append(processedSteps, model.ProcessedStep{
			Step:                      step,
			CalculationMessageIndexes: indexes,
		})
		if critical {
			break
		}
		endSituation.StepID = step.StepID
		endSituation.StepIndex = i
		endSituation.ActualAt = step.ActualAt
		applied = true
	}

	// Without a successful step the end situation is the initial one.
	if applied {
		endSituation.Situation = *state
	}

	outcome := model.OutcomeSuccess
	for _, m := range messages.messages {
		if m.Level == model.LevelCritical {
			outcome = model.OutcomeFailure
			break
		}
	}
	allMessages := messages.messages

	now := e.now().UTC()
	elapsed := now.Sub(start.UTC())

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}
	if processedSteps == nil {
		processedSteps = []model.ProcessedStep{}
	}

	calculationID := uuid.New().String()
	e.logger.Info("calculation processed",
		zap.String("calculation_id", calculationID),
		zap.String("tenant_id", req.TenantID),
		zap.String("outcome", outcome),
		zap.Int("steps", len(processedSteps)),
		zap.Int("messages", len(allMessages)),
		zap.Duration("duration", elapsed),
	)

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          calculationID,
			TenantID:               req.TenantID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Steps:        processedSteps,
			EndSituation: endSituation,
			InitialSituation: model.InitialSituation{
				ActualAt:  firstActualAt,
				Situation: model.Situation{},
			},
		},
	}
}

// runStep validates and then applies one step. Apply is skipped when
// validation raised a CRITICAL message.
func (e *Engine) runStep(state *model.Situation, step *model.Step, messages *messageLog) ([]int, bool) {
	handler, ok := e.registry.Get(step.StepName)
	if !ok {
		return messages.add(model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "UNKNOWN_STEP",
			Message: fmt.Sprintf("Unknown step: %s", step.StepName),
		})
	}

	indexes, critical := messages.add(handler.Validate(state, step)...)
	if critical {
		return indexes, true
	}
	applyIndexes, critical := messages.add(handler.Apply(state, step)...)
	return append(indexes, applyIndexes...), critical
}
