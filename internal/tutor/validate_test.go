package tutor

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
)

const validSolution = `{
	"problem_type": "algebra",
	"concepts": ["linear equations"],
	"steps": [
		{"step_number": 1, "action": "Subtract 3", "explanation": "Isolate the x term", "result": "2x = 4"},
		{"step_number": 2, "action": "Divide by 2", "explanation": "Solve for x", "result": "x = 2"}
	],
	"final_answer": "x = 2",
	"verification": "Substitute x = 2 back in"
}`

func TestValidateSolution(t *testing.T) {
	sol, err := ValidateSolution(validSolution)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.ProblemType != "algebra" {
		t.Errorf("problem type = %q, want algebra", sol.ProblemType)
	}
	if len(sol.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(sol.Steps))
	}
	if sol.Steps[1].Number != 2 {
		t.Errorf("step 2 number = %d", sol.Steps[1].Number)
	}
	if sol.FinalAnswer != "x = 2" {
		t.Errorf("final answer = %q", sol.FinalAnswer)
	}
}

func TestValidateSolutionRejects(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kind  fault.Kind
		field string
	}{
		{
			name:  "missing final answer",
			text:  `{"problem_type": "algebra", "concepts": ["x"], "steps": [{"step_number": 1, "action": "a", "explanation": "b", "result": "c"}]}`,
			kind:  fault.KindSchemaViolation,
			field: "final_answer",
		},
		{
			name:  "empty steps",
			text:  `{"problem_type": "algebra", "concepts": ["x"], "steps": [], "final_answer": "1"}`,
			kind:  fault.KindSchemaViolation,
			field: "steps",
		},
		{
			name:  "step number gap",
			text:  `{"problem_type": "algebra", "concepts": ["x"], "final_answer": "1", "steps": [{"step_number": 1, "action": "a", "explanation": "b", "result": "c"}, {"step_number": 3, "action": "a", "explanation": "b", "result": "c"}]}`,
			kind:  fault.KindSchemaViolation,
			field: "steps[1].step_number",
		},
		{
			name:  "step number not starting at 1",
			text:  `{"problem_type": "algebra", "concepts": ["x"], "final_answer": "1", "steps": [{"step_number": 2, "action": "a", "explanation": "b", "result": "c"}]}`,
			kind:  fault.KindSchemaViolation,
			field: "steps[0].step_number",
		},
		{
			name:  "wrong type for concepts",
			text:  `{"problem_type": "algebra", "concepts": "linear", "final_answer": "1", "steps": [{"step_number": 1, "action": "a", "explanation": "b", "result": "c"}]}`,
			kind:  fault.KindSchemaViolation,
			field: "concepts",
		},
		{
			name: "not an object",
			text: `[1, 2, 3]`,
			kind: fault.KindMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSolution(tt.text)
			if err == nil {
				t.Fatal("expected error")
			}
			if !fault.Is(err, tt.kind) {
				t.Fatalf("kind = %v, want %v (err: %v)", fault.KindOf(err), tt.kind, err)
			}
			if tt.field != "" && !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %q", err, tt.field)
			}
		})
	}
}

func TestValidateSolutionCoercesNumericStrings(t *testing.T) {
	text := `{"problem_type": "algebra", "concepts": ["x"], "final_answer": "1", "steps": [{"step_number": "1", "action": "a", "explanation": "b", "result": "c"}]}`
	sol, err := ValidateSolution(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Steps[0].Number != 1 {
		t.Errorf("step number = %d, want 1", sol.Steps[0].Number)
	}
}

func TestValidateSolutionIgnoresUnknownFields(t *testing.T) {
	text := `{"problem_type": "algebra", "concepts": ["x"], "final_answer": "1", "bonus": true, "steps": [{"step_number": 1, "action": "a", "explanation": "b", "result": "c", "extra": 9}]}`
	if _, err := ValidateSolution(text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

const validQuiz = `{
	"quiz_topic": "fractions",
	"questions": [
		{"question_number": 1, "question": "1/2 + 1/4 = ?", "difficulty": "easy", "hint": "Common denominator", "correct_answer": "3/4", "solution_steps": ["Convert to quarters", "Add"]},
		{"question_number": 2, "question": "2/3 * 3/4 = ?", "difficulty": "medium", "hint": "Multiply across", "correct_answer": "1/2", "solution_steps": ["Multiply numerators and denominators", "Reduce"]}
	]
}`

func TestValidateQuiz(t *testing.T) {
	quiz, err := ValidateQuiz(validQuiz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.Topic != "fractions" {
		t.Errorf("topic = %q", quiz.Topic)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(quiz.Questions))
	}
	if quiz.Questions[1].Difficulty != "medium" {
		t.Errorf("difficulty = %q", quiz.Questions[1].Difficulty)
	}
}

func TestValidateQuizRejects(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
	}{
		{
			name:  "bad difficulty",
			text:  `{"quiz_topic": "t", "questions": [{"question_number": 1, "question": "q", "difficulty": "impossible", "hint": "h", "correct_answer": "a"}]}`,
			field: "questions[0].difficulty",
		},
		{
			name:  "question number gap",
			text:  `{"quiz_topic": "t", "questions": [{"question_number": 1, "question": "q", "difficulty": "easy", "hint": "h", "correct_answer": "a"}, {"question_number": 5, "question": "q", "difficulty": "easy", "hint": "h", "correct_answer": "a"}]}`,
			field: "questions[1].question_number",
		},
		{
			name:  "missing answer key",
			text:  `{"quiz_topic": "t", "questions": [{"question_number": 1, "question": "q", "difficulty": "easy", "hint": "h"}]}`,
			field: "questions[0].correct_answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateQuiz(tt.text)
			if !fault.Is(err, fault.KindSchemaViolation) {
				t.Fatalf("expected schema violation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %q", err, tt.field)
			}
		})
	}
}

func TestValidateEvaluation(t *testing.T) {
	ev, err := ValidateEvaluation(`{"is_correct": true, "feedback": "Nice work", "explanation": "Both forms reduce to 3/4"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.Correct {
		t.Error("expected correct")
	}
	if ev.Feedback != "Nice work" {
		t.Errorf("feedback = %q", ev.Feedback)
	}
}

func TestValidateEvaluationRequiresRealBool(t *testing.T) {
	// "true" as a string is not accepted; only booleans carry judgement.
	_, err := ValidateEvaluation(`{"is_correct": "true", "feedback": "ok"}`)
	if !fault.Is(err, fault.KindSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}
	if !strings.Contains(err.Error(), "is_correct") {
		t.Errorf("error %q does not name is_correct", err)
	}
}

func TestValidatePlanBounds(t *testing.T) {
	step := func(n int) string {
		return `{"step_number": ` + strconv.Itoa(n) + `, "objective": "do the thing"}`
	}
	build := func(n int) string {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = step(i + 1)
		}
		return `{"steps": [` + strings.Join(parts, ",") + `]}`
	}

	for _, n := range []int{3, 4, 6} {
		plan, err := ValidatePlan(build(n))
		if err != nil {
			t.Fatalf("%d steps: unexpected error: %v", n, err)
		}
		if len(plan.Steps) != n {
			t.Errorf("%d steps: got %d", n, len(plan.Steps))
		}
	}
	for _, n := range []int{1, 2, 7} {
		if _, err := ValidatePlan(build(n)); !fault.Is(err, fault.KindSchemaViolation) {
			t.Errorf("%d steps: expected schema violation, got %v", n, err)
		}
	}
}

func TestValidateHint(t *testing.T) {
	h, err := ValidateHint(`{"hint": "Try a common denominator"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Text != "Try a common denominator" {
		t.Errorf("hint = %q", h.Text)
	}

	if _, err := ValidateHint(`{"hint": ""}`); !fault.Is(err, fault.KindSchemaViolation) {
		t.Errorf("empty hint: expected schema violation, got %v", err)
	}
}

func TestValidateStepSolution(t *testing.T) {
	s, err := ValidateStepSolution(`{"solution": "2x = 4", "explanation": "Subtract 3 from both sides"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Solution != "2x = 4" {
		t.Errorf("solution = %q", s.Solution)
	}

	// Explanation is optional.
	if _, err := ValidateStepSolution(`{"solution": "2x = 4"}`); err != nil {
		t.Errorf("unexpected error without explanation: %v", err)
	}
}

func TestMalformedCarriesRawExcerpt(t *testing.T) {
	raw := strings.Repeat("x", 400)
	_, err := ValidateSolution(raw)
	var f *fault.Fault
	if !errors.As(err, &f) {
		t.Fatalf("expected fault, got %v", err)
	}
	if f.Kind != fault.KindMalformedResponse {
		t.Fatalf("kind = %v", f.Kind)
	}
	if len(f.Raw) > 203 {
		t.Errorf("raw excerpt too long: %d", len(f.Raw))
	}
}
