package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
	"github.com/aturs3001/ai-math-tutor/internal/llm"
)

func newTestService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewService(mock, Config{MaxTokens: 1024, Temperature: 0.3}), mock
}

func TestSolvePipeline(t *testing.T) {
	// Fenced response exercises the repair pass.
	raw := "```json\n" + validSolution + "\n```"
	svc, mock := newTestService(llm.MockResponse{Content: json.RawMessage(raw)})

	sol, err := svc.Solve(context.Background(), "2x + 3 = 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.FinalAnswer != "x = 2" {
		t.Errorf("final answer = %q", sol.FinalAnswer)
	}
	if sol.ExtractedProblem != "" {
		t.Errorf("extracted problem should be empty for text solves, got %q", sol.ExtractedProblem)
	}

	call := mock.LastCall()
	if call.Schema != SolutionSchema {
		t.Error("request did not carry the solution schema")
	}
	if !strings.Contains(call.Messages[0].Content, "2x + 3 = 7") {
		t.Error("user message does not carry the problem")
	}
}

func TestSolveDocumentTruncatesExtractedProblem(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Content: json.RawMessage(validSolution)})

	doc := strings.Repeat("a", 600)
	sol, err := svc.SolveDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sol.ExtractedProblem) != 503 {
		t.Errorf("extracted problem length = %d, want 503", len(sol.ExtractedProblem))
	}
	if !strings.HasSuffix(sol.ExtractedProblem, "...") {
		t.Error("truncated text should end with ellipsis")
	}
}

func TestSolveMapsProviderErrors(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")},
	})

	_, err := svc.Solve(context.Background(), "x")
	if !fault.Is(err, fault.KindUpstreamError) {
		t.Fatalf("expected upstream fault, got %v", err)
	}
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Error("fault should wrap the provider error")
	}
}

func TestSolveMapsInvalidResponseToSchemaViolation(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(`{"problem_type": 7}`),
			Err:     errors.New("jsonschema validation failed"),
		},
	})

	_, err := svc.Solve(context.Background(), "x")
	if !fault.Is(err, fault.KindSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}
}

func TestSolveRejectsUnrepairableText(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{
		Content: json.RawMessage("I cannot help with that."),
	})

	_, err := svc.Solve(context.Background(), "x")
	if !fault.Is(err, fault.KindMalformedResponse) {
		t.Fatalf("expected malformed fault, got %v", err)
	}
}

func TestGenerateQuizClampsCount(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		difficulty string
		wantCount  int
		wantDiff   string
	}{
		{"zero defaults", 0, "", 3, "mixed"},
		{"negative clamps to min", -5, "easy", 1, "easy"},
		{"over max clamps", 50, "hard", 10, "hard"},
		{"in range passes through", 5, "medium", 5, "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newTestService(llm.MockResponse{Content: json.RawMessage(validQuiz)})
			if _, err := svc.GenerateQuiz(context.Background(), "fractions", tt.count, tt.difficulty); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			user := mock.LastCall().Messages[0].Content
			wantSystem, wantUser := QuizPrompt("fractions", tt.wantCount, tt.wantDiff)
			if user != wantUser {
				t.Errorf("user message = %q, want %q", user, wantUser)
			}
			if mock.LastCall().System != wantSystem {
				t.Error("system prompt mismatch")
			}
		})
	}
}

func TestEvaluateAnswerPipeline(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{
		Content: json.RawMessage(`{"is_correct": false, "feedback": "Close, check the sign", "explanation": "The product of two negatives is positive"}`),
	})

	ev, err := svc.EvaluateAnswer(context.Background(), "(-2)*(-3) = ?", "6", "-6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Correct {
		t.Error("expected incorrect")
	}
	user := mock.LastCall().Messages[0].Content
	for _, want := range []string{"(-2)*(-3) = ?", "Correct Answer: 6", "Student's Answer: -6"} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q", want)
		}
	}
}

func TestStepHintCarriesLevel(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{
		Content: json.RawMessage(`{"hint": "Think about the denominator"}`),
	})

	hint, err := svc.StepHint(context.Background(), "1/2 + 1/4", "Find a common denominator", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hint.Level != 2 {
		t.Errorf("level = %d, want 2", hint.Level)
	}
	if !strings.Contains(mock.LastCall().Messages[0].Content, "Hint level: 2 of 3") {
		t.Error("user message missing hint level")
	}
}

func TestPlanStepsPipeline(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{
		Content: json.RawMessage(`{"steps": [
			{"step_number": 1, "objective": "Identify the equation type"},
			{"step_number": 2, "objective": "Isolate the variable term"},
			{"step_number": 3, "objective": "Solve and verify"}
		]}`),
	})

	plan, err := svc.PlanSteps(context.Background(), "2x + 3 = 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(plan.Steps))
	}
	if plan.Steps[2].Objective != "Solve and verify" {
		t.Errorf("objective = %q", plan.Steps[2].Objective)
	}
}

func TestRevealStepPipeline(t *testing.T) {
	svc, mock := newTestService(llm.MockResponse{
		Content: json.RawMessage(`{"solution": "2x = 4", "explanation": "Subtract 3 from both sides"}`),
	})

	s, err := svc.RevealStep(context.Background(), "2x + 3 = 7", "Isolate the variable term")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Solution != "2x = 4" {
		t.Errorf("solution = %q", s.Solution)
	}
	if mock.LastCall().Schema != StepSolutionSchema {
		t.Error("request did not carry the step solution schema")
	}
}

func TestPromptsAreDeterministic(t *testing.T) {
	s1, u1 := SolvePrompt("2x + 3 = 7")
	s2, u2 := SolvePrompt("2x + 3 = 7")
	if s1 != s2 || u1 != u2 {
		t.Error("solve prompt is not deterministic")
	}

	h1s, h1u := HintPrompt("p", "o", 1)
	h2s, h2u := HintPrompt("p", "o", 1)
	if h1s != h2s || h1u != h2u {
		t.Error("hint prompt is not deterministic")
	}
	_, h3u := HintPrompt("p", "o", 3)
	if h1u == h3u {
		t.Error("hint level must change the user message")
	}
}
