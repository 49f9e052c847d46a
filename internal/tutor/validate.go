package tutor

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/aturs3001/ai-math-tutor/internal/fault"
)

// Validators parse repaired text into a generic tree and enforce the
// per-shape contract: required fields, primitive types, contiguous step
// numbering from 1, and non-empty invariants. Unknown fields are
// ignored. Numeric fields accept numbers or numeric strings and are
// coerced; nothing else is coerced. The first offending field is named
// in the returned SchemaViolation.

// ValidateSolution checks a solve response.
func ValidateSolution(text string) (*Solution, error) {
	obj, err := parseObject(text)
	if err != nil {
		return nil, err
	}

	out := &Solution{}
	if out.ProblemType, err = requireString(obj, "problem_type"); err != nil {
		return nil, err
	}
	if out.Concepts, err = requireStringList(obj, "concepts"); err != nil {
		return nil, err
	}
	if out.FinalAnswer, err = requireString(obj, "final_answer"); err != nil {
		return nil, err
	}
	if out.Verification, err = optionalString(obj, "verification"); err != nil {
		return nil, err
	}

	steps, err := requireList(obj, "steps")
	if err != nil {
		return nil, err
	}
	for i, raw := range steps {
		path := fmt.Sprintf("steps[%d]", i)
		step, err := asObject(raw, path)
		if err != nil {
			return nil, err
		}
		var s SolutionStep
		if s.Number, err = requireInt(step, path+".step_number", "step_number"); err != nil {
			return nil, err
		}
		if s.Number != i+1 {
			return nil, fault.SchemaViolation(path+".step_number",
				fmt.Sprintf("expected %d, got %d (step numbers must be contiguous from 1)", i+1, s.Number))
		}
		if s.Action, err = requireStringAt(step, path+".action", "action"); err != nil {
			return nil, err
		}
		if s.Explanation, err = requireStringAt(step, path+".explanation", "explanation"); err != nil {
			return nil, err
		}
		if s.Result, err = requireStringAt(step, path+".result", "result"); err != nil {
			return nil, err
		}
		out.Steps = append(out.Steps, s)
	}

	return out, nil
}

// ValidateQuiz checks a quiz-generation response.
func ValidateQuiz(text string) (*Quiz, error) {
	obj, err := parseObject(text)
	if err != nil {
		return nil, err
	}

	out := &Quiz{}
	if out.Topic, err = requireString(obj, "quiz_topic"); err != nil {
		return nil, err
	}

	questions, err := requireList(obj, "questions")
	if err != nil {
		return nil, err
	}
	for i, raw := range questions {
		path := fmt.Sprintf("questions[%d]", i)
		qObj, err := asObject(raw, path)
		if err != nil {
			return nil, err
		}
		var q QuizQuestion
		if q.Number, err = requireInt(qObj, path+".question_number", "question_number"); err != nil {
			return nil, err
		}
		if q.Number != i+1 {
			return nil, fault.SchemaViolation(path+".question_number",
				fmt.Sprintf("expected %d, got %d (question numbers must be contiguous from 1)", i+1, q.Number))
		}
		if q.Question, err = requireStringAt(qObj, path+".question", "question"); err != nil {
			return nil, err
		}
		if q.Difficulty, err = requireStringAt(qObj, path+".difficulty", "difficulty"); err != nil {
			return nil, err
		}
		switch q.Difficulty {
		case "easy", "medium", "hard":
		default:
			return nil, fault.SchemaViolation(path+".difficulty",
				fmt.Sprintf("must be easy, medium, or hard, got %q", q.Difficulty))
		}
		if q.Hint, err = requireStringAt(qObj, path+".hint", "hint"); err != nil {
			return nil, err
		}
		if q.CorrectAnswer, err = requireStringAt(qObj, path+".correct_answer", "correct_answer"); err != nil {
			return nil, err
		}
		if raw, ok := qObj["solution_steps"]; ok {
			list, ok := raw.([]any)
			if !ok {
				return nil, fault.SchemaViolation(path+".solution_steps", "must be a list")
			}
			for j, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, fault.SchemaViolation(fmt.Sprintf("%s.solution_steps[%d]", path, j), "must be a string")
				}
				q.SolutionSteps = append(q.SolutionSteps, s)
			}
		}
		out.Questions = append(out.Questions, q)
	}

	return out, nil
}

// ValidateEvaluation checks an answer-evaluation response.
func ValidateEvaluation(text string) (*Evaluation, error) {
	obj, err := parseObject(text)
	if err != nil {
		return nil, err
	}

	out := &Evaluation{}
	correct, ok := obj["is_correct"]
	if !ok {
		return nil, fault.SchemaViolation("is_correct", "missing required field")
	}
	b, ok := correct.(bool)
	if !ok {
		return nil, fault.SchemaViolation("is_correct", "must be a boolean")
	}
	out.Correct = b

	if out.Feedback, err = requireString(obj, "feedback"); err != nil {
		return nil, err
	}
	if out.Explanation, err = optionalString(obj, "explanation"); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidatePlan checks a study-plan decomposition response. Plans must
// carry between 3 and 6 contiguously numbered steps.
func ValidatePlan(text string) (*StudyPlan, error) {
	obj, err := parseObject(text)
	if err != nil {
		return nil, err
	}

	steps, err := requireList(obj, "steps")
	if err != nil {
		return nil, err
	}
	if len(steps) < MinPlanSteps || len(steps) > MaxPlanSteps {
		return nil, fault.SchemaViolation("steps",
			fmt.Sprintf("must contain %d-%d steps, got %d", MinPlanSteps, MaxPlanSteps, len(steps)))
	}

	out := &StudyPlan{}
	for i, raw := range steps {
		path := fmt.Sprintf("steps[%d]", i)
		step, err := asObject(raw, path)
		if err != nil {
			return nil, err
		}
		var s PlanStep
		if s.Number, err = requireInt(step, path+".step_number", "step_number"); err != nil {
			return nil, err
		}
		if s.Number != i+1 {
			return nil, fault.SchemaViolation(path+".step_number",
				fmt.Sprintf("expected %d, got %d (step numbers must be contiguous from 1)", i+1, s.Number))
		}
		if s.Objective, err = requireStringAt(step, path+".objective", "objective"); err != nil {
			return nil, err
		}
		out.Steps = append(out.Steps, s)
	}

	return out, nil
}

// ValidateHint checks a hint response.
func ValidateHint(text string) (*Hint, error) {
	obj, err := parseObject(text)
	if err != nil {
		return nil, err
	}
	h, err := requireString(obj, "hint")
	if err != nil {
		return nil, err
	}
	return &Hint{Text: h}, nil
}

// ValidateStepSolution checks a reveal response.
func ValidateStepSolution(text string) (*StepSolution, error) {
	obj, err := parseObject(text)
	if err != nil {
		return nil, err
	}
	out := &StepSolution{}
	if out.Solution, err = requireString(obj, "solution"); err != nil {
		return nil, err
	}
	if out.Explanation, err = optionalString(obj, "explanation"); err != nil {
		return nil, err
	}
	return out, nil
}

func parseObject(text string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fault.Malformed("response is not a JSON object", text)
	}
	return obj, nil
}

func asObject(v any, path string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fault.SchemaViolation(path, "must be an object")
	}
	return obj, nil
}

func requireString(obj map[string]any, field string) (string, error) {
	return requireStringAt(obj, field, field)
}

func requireStringAt(obj map[string]any, path, field string) (string, error) {
	v, ok := obj[field]
	if !ok {
		return "", fault.SchemaViolation(path, "missing required field")
	}
	s, ok := v.(string)
	if !ok {
		return "", fault.SchemaViolation(path, "must be a string")
	}
	if s == "" {
		return "", fault.SchemaViolation(path, "must not be empty")
	}
	return s, nil
}

func optionalString(obj map[string]any, field string) (string, error) {
	v, ok := obj[field]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fault.SchemaViolation(field, "must be a string")
	}
	return s, nil
}

func requireList(obj map[string]any, field string) ([]any, error) {
	v, ok := obj[field]
	if !ok {
		return nil, fault.SchemaViolation(field, "missing required field")
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fault.SchemaViolation(field, "must be a list")
	}
	if len(list) == 0 {
		return nil, fault.SchemaViolation(field, "must not be empty")
	}
	return list, nil
}

func requireStringList(obj map[string]any, field string) ([]string, error) {
	list, err := requireList(obj, field)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok || s == "" {
			return nil, fault.SchemaViolation(fmt.Sprintf("%s[%d]", field, i), "must be a non-empty string")
		}
		out = append(out, s)
	}
	return out, nil
}

// requireInt reads a numeric field, accepting JSON numbers and numeric
// strings. Fractional values are rejected.
func requireInt(obj map[string]any, path, field string) (int, error) {
	v, ok := obj[field]
	if !ok {
		return 0, fault.SchemaViolation(path, "missing required field")
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fault.SchemaViolation(path, "must be an integer")
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fault.SchemaViolation(path, "must be a number")
		}
		return i, nil
	default:
		return 0, fault.SchemaViolation(path, "must be a number")
	}
}
