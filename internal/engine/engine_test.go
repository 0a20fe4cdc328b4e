package engine

import (
	"testing"

	json "github.com/goccy/go-json"

	"pension-estimator/internal/benefit"
	"pension-estimator/internal/calculations"
	"pension-estimator/internal/estimator"
	"pension-estimator/internal/factortable"
	"pension-estimator/internal/model"
	"pension-estimator/internal/options"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	table, err := factortable.Default()
	if err != nil {
		t.Fatalf("load factor table: %v", err)
	}
	calc := estimator.New(benefit.NewEvaluator(), options.NewLookup(table))
	return New(calculations.NewRegistry(calc), nil)
}

func createMemberStep() model.Step {
	return model.Step{
		StepID:   "a1111111-1111-1111-1111-111111111111",
		StepName: "create_member",
		ActualAt: "2024-01-01",
		StepProperties: json.RawMessage(`{
			"member_id": "m3333333-3333-3333-3333-333333333333",
			"name": "Jane Doe",
			"average_salary": 70000,
			"years_of_service": 30,
			"member_age": 60,
			"group": 1
		}`),
	}
}

func request(steps ...model.Step) *model.CalculationRequest {
	return &model.CalculationRequest{
		TenantID:                "test-tenant",
		CalculationInstructions: model.CalculationInstructions{Steps: steps},
	}
}

func TestCreateMember(t *testing.T) {
	resp := newEngine(t).Process(request(createMemberStep()))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationMetadata.TenantID != "test-tenant" {
		t.Fatalf("expected tenant_id test-tenant, got %s", resp.CalculationMetadata.TenantID)
	}
	if resp.CalculationMetadata.CalculationID == "" {
		t.Fatal("expected calculation_id")
	}
	if len(resp.CalculationResult.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(resp.CalculationResult.Messages))
	}
	if len(resp.CalculationResult.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(resp.CalculationResult.Steps))
	}

	sit := resp.CalculationResult.EndSituation.Situation
	if sit.Member == nil {
		t.Fatal("expected member to be created")
	}
	if sit.Member.Name != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %s", sit.Member.Name)
	}
	if sit.Member.Tier != model.TierPre2012 {
		t.Fatalf("expected default tier pre_2012, got %s", sit.Member.Tier)
	}
	if sit.Estimate != nil {
		t.Fatal("expected no estimate before calculate_benefit")
	}

	if resp.CalculationResult.InitialSituation.Situation.Member != nil {
		t.Fatal("expected initial situation member to be null")
	}
	if resp.CalculationResult.InitialSituation.ActualAt != "2024-01-01" {
		t.Fatalf("expected initial actual_at 2024-01-01, got %s", resp.CalculationResult.InitialSituation.ActualAt)
	}
	if resp.CalculationResult.EndSituation.StepID != "a1111111-1111-1111-1111-111111111111" {
		t.Fatalf("unexpected end_situation step_id")
	}
}

func TestCreateMemberAlreadyExists(t *testing.T) {
	second := createMemberStep()
	second.StepID = "b4444444-4444-4444-4444-444444444444"
	second.ActualAt = "2024-01-02"

	resp := newEngine(t).Process(request(createMemberStep(), second))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.CalculationResult.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(resp.CalculationResult.Messages))
	}
	if resp.CalculationResult.Messages[0].Code != "MEMBER_ALREADY_EXISTS" {
		t.Fatalf("expected MEMBER_ALREADY_EXISTS, got %s", resp.CalculationResult.Messages[0].Code)
	}

	// Should include both steps (first succeeded, second failed)
	if len(resp.CalculationResult.Steps) != 2 {
		t.Fatalf("expected 2 processed steps, got %d", len(resp.CalculationResult.Steps))
	}
	if resp.CalculationResult.EndSituation.Situation.Member == nil {
		t.Fatal("expected member from first step in end_situation")
	}
	if resp.CalculationResult.EndSituation.StepID != "a1111111-1111-1111-1111-111111111111" {
		t.Fatalf("end_situation should reference last successful step")
	}
}

func TestCalculateOptionCBenefit(t *testing.T) {
	resp := newEngine(t).Process(request(
		createMemberStep(),
		model.Step{
			StepID:         "s2",
			StepName:       "elect_option",
			ActualAt:       "2024-01-01",
			StepProperties: json.RawMessage(`{"option": "C", "beneficiary_age": 62}`),
		},
		model.Step{StepID: "s3", StepName: "calculate_benefit", ActualAt: "2024-01-01"},
	))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s: %+v", resp.CalculationMetadata.CalculationOutcome, resp.CalculationResult.Messages)
	}

	est := resp.CalculationResult.EndSituation.Situation.Estimate
	if est == nil {
		t.Fatal("expected estimate")
	}
	if est.ReducedAnnual.String() != "38850" {
		t.Fatalf("expected reduced annual 38850, got %s", est.ReducedAnnual)
	}
	if est.SurvivorAnnual.String() != "25900" {
		t.Fatalf("expected survivor annual 25900, got %s", est.SurvivorAnnual)
	}
	if resp.CalculationResult.EndSituation.StepIndex != 2 {
		t.Fatalf("expected step_index 2, got %d", resp.CalculationResult.EndSituation.StepIndex)
	}
}

func TestCalculateWithoutElectionWarns(t *testing.T) {
	resp := newEngine(t).Process(request(
		createMemberStep(),
		model.Step{StepID: "s2", StepName: "calculate_benefit", ActualAt: "2024-01-01"},
	))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.CalculationResult.Messages) != 1 || resp.CalculationResult.Messages[0].Code != "NO_OPTION_ELECTED" {
		t.Fatalf("expected NO_OPTION_ELECTED warning, got %+v", resp.CalculationResult.Messages)
	}
	idx := resp.CalculationResult.Steps[1].CalculationMessageIndexes
	if len(idx) != 1 || idx[0] != 0 {
		t.Fatalf("expected step 1 to reference message 0, got %v", idx)
	}
	est := resp.CalculationResult.EndSituation.Situation.Estimate
	if est == nil || est.Option != model.OptionA {
		t.Fatalf("expected option A estimate, got %+v", est)
	}
}

func TestCalculateIneligibleMember(t *testing.T) {
	young := createMemberStep()
	young.StepProperties = json.RawMessage(`{"name": "Sam Young", "average_salary": 50000, "years_of_service": 5, "member_age": 40, "group": 1}`)

	resp := newEngine(t).Process(request(
		young,
		model.Step{StepID: "s2", StepName: "calculate_benefit", ActualAt: "2024-01-01"},
	))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Messages[0].Code != model.CodeAgeBelowMinimum {
		t.Fatalf("expected %s, got %s", model.CodeAgeBelowMinimum, resp.CalculationResult.Messages[0].Code)
	}
	if resp.CalculationResult.EndSituation.Situation.Estimate != nil {
		t.Fatal("expected no estimate after failed step")
	}
}

func TestSalaryIncreaseThenCompare(t *testing.T) {
	resp := newEngine(t).Process(request(
		createMemberStep(),
		model.Step{
			StepID:         "s2",
			StepName:       "apply_salary_increase",
			ActualAt:       "2024-07-01",
			StepProperties: json.RawMessage(`{"percentage": 0.1}`),
		},
		model.Step{
			StepID:         "s3",
			StepName:       "compare_options",
			ActualAt:       "2024-07-01",
			StepProperties: json.RawMessage(`{"beneficiary_age": 58}`),
		},
	))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s: %+v", resp.CalculationMetadata.CalculationOutcome, resp.CalculationResult.Messages)
	}

	sit := resp.CalculationResult.EndSituation.Situation
	if sit.Member.AverageSalary.String() != "77000" {
		t.Fatalf("expected salary 77000, got %s", sit.Member.AverageSalary)
	}
	if len(sit.Comparison) != 3 {
		t.Fatalf("expected 3 compared options, got %d", len(sit.Comparison))
	}
	if sit.Comparison[0].BaseAnnual.String() != "46200" {
		t.Fatalf("expected base 46200, got %s", sit.Comparison[0].BaseAnnual)
	}
}

func TestNegativeSalaryClamped(t *testing.T) {
	resp := newEngine(t).Process(request(
		createMemberStep(),
		model.Step{
			StepID:         "s2",
			StepName:       "apply_salary_increase",
			ActualAt:       "2024-07-01",
			StepProperties: json.RawMessage(`{"percentage": -1.5}`),
		},
	))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.CalculationResult.Messages) != 1 || resp.CalculationResult.Messages[0].Code != "NEGATIVE_SALARY_CLAMPED" {
		t.Fatalf("expected NEGATIVE_SALARY_CLAMPED warning, got %+v", resp.CalculationResult.Messages)
	}
	if !resp.CalculationResult.EndSituation.Situation.Member.AverageSalary.IsZero() {
		t.Fatal("expected salary clamped to zero")
	}
}

func TestProjectRetirementAges(t *testing.T) {
	member := createMemberStep()
	member.StepProperties = json.RawMessage(`{"name": "Pat", "average_salary": 60000, "years_of_service": 8, "member_age": 53, "group": 1}`)

	resp := newEngine(t).Process(request(
		member,
		model.Step{
			StepID:         "s2",
			StepName:       "project_retirement_ages",
			ActualAt:       "2024-01-01",
			StepProperties: json.RawMessage(`{"to_age": 58}`),
		},
	))

	if resp.CalculationMetadata.CalculationOutcome != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %s: %+v", resp.CalculationMetadata.CalculationOutcome, resp.CalculationResult.Messages)
	}
	projections := resp.CalculationResult.EndSituation.Situation.Projections
	if len(projections) != 6 {
		t.Fatalf("expected 6 projections, got %d", len(projections))
	}
	if projections[0].RetirementAge != 53 || projections[0].Result != nil {
		t.Fatalf("expected ineligible projection at 53, got %+v", projections[0])
	}
	if projections[2].Result == nil {
		t.Fatal("expected eligible projection at 55")
	}
}

func TestUnknownStep(t *testing.T) {
	resp := newEngine(t).Process(request(model.Step{StepID: "x", StepName: "delete_everything", ActualAt: "2024-01-01"}))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Messages[0].Code != "UNKNOWN_STEP" {
		t.Fatalf("expected UNKNOWN_STEP, got %s", resp.CalculationResult.Messages[0].Code)
	}
	if resp.CalculationResult.EndSituation.Situation.Member != nil {
		t.Fatal("expected empty end situation")
	}
}

func TestMemberRequired(t *testing.T) {
	resp := newEngine(t).Process(request(model.Step{StepID: "x", StepName: "calculate_benefit", ActualAt: "2024-01-01"}))

	if resp.CalculationResult.Messages[0].Code != "MEMBER_NOT_FOUND" {
		t.Fatalf("expected MEMBER_NOT_FOUND, got %s", resp.CalculationResult.Messages[0].Code)
	}
}

func TestInvalidProperties(t *testing.T) {
	bad := createMemberStep()
	bad.StepProperties = json.RawMessage(`{"name": 12}`)

	resp := newEngine(t).Process(request(bad))

	if resp.CalculationResult.Messages[0].Code != "INVALID_PROPERTIES" {
		t.Fatalf("expected INVALID_PROPERTIES, got %s", resp.CalculationResult.Messages[0].Code)
	}
}

func TestNoSteps(t *testing.T) {
	resp := newEngine(t).Process(request())

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Messages[0].Code != "NO_STEPS" {
		t.Fatalf("expected NO_STEPS, got %s", resp.CalculationResult.Messages[0].Code)
	}
}

func TestMessageIndexesAcrossSteps(t *testing.T) {
	resp := newEngine(t).Process(request(
		createMemberStep(),
		model.Step{StepID: "s2", StepName: "elect_option", ActualAt: "2024-01-01", StepProperties: json.RawMessage(`{"option": "A"}`)},
		model.Step{StepID: "s3", StepName: "elect_option", ActualAt: "2024-01-02", StepProperties: json.RawMessage(`{"option": "C", "beneficiary_age": 60}`)},
		model.Step{StepID: "s4", StepName: "retire_early", ActualAt: "2024-01-03"},
	))

	if resp.CalculationMetadata.CalculationOutcome != "FAILURE" {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	msgs := resp.CalculationResult.Messages
	if len(msgs) != 2 || msgs[0].Code != "ELECTION_REPLACED" || msgs[1].Code != "UNKNOWN_STEP" {
		t.Fatalf("expected ELECTION_REPLACED then UNKNOWN_STEP, got %+v", msgs)
	}
	for i, m := range msgs {
		if m.ID != i {
			t.Fatalf("message %d has id %d", i, m.ID)
		}
	}

	steps := resp.CalculationResult.Steps
	if len(steps) != 4 {
		t.Fatalf("expected 4 processed steps, got %d", len(steps))
	}
	if idx := steps[2].CalculationMessageIndexes; len(idx) != 1 || idx[0] != 0 {
		t.Fatalf("expected step 2 to reference message 0, got %v", idx)
	}
	if idx := steps[3].CalculationMessageIndexes; len(idx) != 1 || idx[0] != 1 {
		t.Fatalf("expected step 3 to reference message 1, got %v", idx)
	}

	end := resp.CalculationResult.EndSituation
	if end.StepID != "s3" || end.StepIndex != 2 || end.ActualAt != "2024-01-02" {
		t.Fatalf("end_situation should reference s3, got %s/%d/%s", end.StepID, end.StepIndex, end.ActualAt)
	}
	if end.Situation.Election == nil || end.Situation.Election.Option != model.OptionC {
		t.Fatalf("expected option C election in end_situation, got %+v", end.Situation.Election)
	}
}
