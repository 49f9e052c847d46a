package tutor

import "github.com/aturs3001/ai-math-tutor/internal/llm"

// JSON schemas sent to providers with native structured output. They
// describe the same shapes the validators in validate.go enforce; the
// validators remain the source of truth because not every provider
// honors a schema.

// SolutionSchema describes a step-by-step solution.
var SolutionSchema = &llm.Schema{
	Name:        "math-solution",
	Description: "A step-by-step solution to a math problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_type": map[string]any{
				"type":        "string",
				"description": "The category of math problem",
			},
			"concepts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Mathematical concepts used",
			},
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"step_number": map[string]any{"type": "integer"},
						"action":      map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string"},
						"result":      map[string]any{"type": "string"},
					},
					"required": []any{"step_number", "action", "explanation", "result"},
				},
			},
			"final_answer": map[string]any{"type": "string"},
			"verification": map[string]any{"type": "string"},
		},
		"required": []any{"problem_type", "concepts", "steps", "final_answer"},
	},
}

// QuizSchema describes a generated quiz.
var QuizSchema = &llm.Schema{
	Name:        "math-quiz",
	Description: "A set of practice questions on a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz_topic": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_number": map[string]any{"type": "integer"},
						"question":        map[string]any{"type": "string"},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"hint":           map[string]any{"type": "string"},
						"correct_answer": map[string]any{"type": "string"},
						"solution_steps": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required": []any{"question_number", "question", "difficulty", "hint", "correct_answer", "solution_steps"},
				},
			},
		},
		"required": []any{"quiz_topic", "questions"},
	},
}

// EvaluationSchema describes an answer evaluation.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Judgement of a student's answer with feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct":  map[string]any{"type": "boolean"},
			"feedback":    map[string]any{"type": "string"},
			"explanation": map[string]any{"type": "string"},
		},
		"required": []any{"is_correct", "feedback"},
	},
}

// PlanSchema describes a study session decomposition.
var PlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "Ordered learning steps for a guided study session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"step_number": map[string]any{"type": "integer"},
						"objective":   map[string]any{"type": "string"},
					},
					"required": []any{"step_number", "objective"},
				},
			},
		},
		"required": []any{"steps"},
	},
}

// HintSchema describes a single progressive hint.
var HintSchema = &llm.Schema{
	Name:        "study-hint",
	Description: "A single hint for the current study step",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{"type": "string"},
		},
		"required": []any{"hint"},
	},
}

// StepSolutionSchema describes a revealed step solution.
var StepSolutionSchema = &llm.Schema{
	Name:        "step-solution",
	Description: "The worked solution for the current study step",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"solution":    map[string]any{"type": "string"},
			"explanation": map[string]any{"type": "string"},
		},
		"required": []any{"solution"},
	},
}
